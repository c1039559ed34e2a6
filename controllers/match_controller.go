package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ember_server/services"

	"github.com/gorilla/mux"
)

// MatchController struct
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController initializes the controller
func NewMatchController(service *services.MatchService) *MatchController {
	return &MatchController{MatchService: service}
}

// HandleGetMatches - list a user's matches with display info
func (c *MatchController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	matches, err := c.MatchService.GetMatchesForUser(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to fetch matches for %s: %v", userID, err)
		http.Error(w, `{"error": "Failed to fetch matches"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, matches)
}

// HandleUnmatch - removes a match and closes its conversation
func (c *MatchController) HandleUnmatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID       string `json:"userId"`
		TargetUserID string `json:"targetUserId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.TargetUserID == "" {
		http.Error(w, `{"error": "Missing required fields: userId, targetUserId"}`, http.StatusBadRequest)
		return
	}

	if err := c.MatchService.Unmatch(r.Context(), request.UserID, request.TargetUserID); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfInteraction):
			http.Error(w, `{"error": "Cannot unmatch yourself"}`, http.StatusBadRequest)
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, `{"error": "No match found for this pair"}`, http.StatusNotFound)
		default:
			log.Printf("❌ Failed to unmatch: %v", err)
			http.Error(w, `{"error": "Failed to unmatch"}`, http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Unmatched"})
}
