package routes

import (
	"ember_server/controllers"
	"ember_server/services"

	"github.com/gorilla/mux"
)

// RegisterDeviceRoutes sets up routes for push device registration
func RegisterDeviceRoutes(r *mux.Router, devices services.DeviceStore) {
	controller := controllers.NewDeviceController(devices)

	deviceRouter := r.PathPrefix("/api/devices").Subrouter()
	deviceRouter.HandleFunc("", controller.HandleRegisterDevice).Methods("POST")
}
