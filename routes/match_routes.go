package routes

import (
	"ember_server/controllers"
	"ember_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match operations under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("/user/{userId}", controller.HandleGetMatches).Methods("GET")
	matchRouter.HandleFunc("/unmatch", controller.HandleUnmatch).Methods("POST")
}
