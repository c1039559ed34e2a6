package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ember_server/services"
)

// SwipeController struct
type SwipeController struct {
	SwipeService *services.SwipeService
}

// NewSwipeController initializes the controller
func NewSwipeController(service *services.SwipeService) *SwipeController {
	return &SwipeController{SwipeService: service}
}

// HandleRecordSwipe - records a swipe and reports whether it closed a match
func (c *SwipeController) HandleRecordSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FromUserID   string `json:"fromUserId"`
		TargetUserID string `json:"targetUserId"`
		Direction    string `json:"direction"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.FromUserID == "" || request.TargetUserID == "" || request.Direction == "" {
		http.Error(w, `{"error": "Missing required fields: fromUserId, targetUserId, direction"}`, http.StatusBadRequest)
		return
	}

	swipe, match, err := c.SwipeService.RecordSwipe(r.Context(), request.FromUserID, request.TargetUserID, request.Direction)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfInteraction), errors.Is(err, services.ErrInvalidDirection):
			http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		case errors.Is(err, services.ErrUnknownUser):
			http.Error(w, `{"error": "Target user does not exist"}`, http.StatusNotFound)
		case errors.Is(err, services.ErrDuplicateSwipe):
			http.Error(w, `{"error": "You already swiped on this user"}`, http.StatusConflict)
		default:
			log.Printf("❌ Failed to record swipe: %v", err)
			http.Error(w, `{"error": "Failed to record swipe"}`, http.StatusInternalServerError)
		}
		return
	}

	response := map[string]interface{}{
		"isMatch": match != nil,
		"swipe":   swipe,
	}
	if match != nil {
		response["match"] = match
	}
	writeJSON(w, http.StatusCreated, response)
}
