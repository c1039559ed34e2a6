package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ember_server/models"
	"ember_server/services"
)

// DeviceController registers push endpoints for users.
type DeviceController struct {
	Devices services.DeviceStore
}

// NewDeviceController initializes the controller
func NewDeviceController(devices services.DeviceStore) *DeviceController {
	return &DeviceController{Devices: devices}
}

// HandleRegisterDevice - upserts a user's push endpoint
func (c *DeviceController) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      string `json:"userId"`
		EndpointARN string `json:"endpointArn"`
		Platform    string `json:"platform"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.EndpointARN == "" {
		http.Error(w, `{"error": "Missing required fields: userId, endpointArn"}`, http.StatusBadRequest)
		return
	}

	device := models.Device{
		UserID:      request.UserID,
		EndpointARN: request.EndpointARN,
		Platform:    request.Platform,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := c.Devices.Put(r.Context(), device); err != nil {
		log.Printf("❌ Failed to register device for %s: %v", request.UserID, err)
		http.Error(w, `{"error": "Failed to register device"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
