package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"ember_server/services"
)

// MediaController issues presigned URLs for media referenced from messages.
type MediaController struct {
	MediaService *services.MediaService
}

// NewMediaController initializes the controller
func NewMediaController(service *services.MediaService) *MediaController {
	return &MediaController{MediaService: service}
}

// HandleGenerateUploadURL generates a presigned URL for uploads
func (c *MediaController) HandleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}
	if payload.FileName == "" || payload.FileType == "" {
		http.Error(w, `{"error": "Missing required fields: fileName, fileType"}`, http.StatusBadRequest)
		return
	}

	url, key, err := c.MediaService.GenerateUploadURL(r.Context(), payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("❌ Failed to generate upload URL: %v", err)
		http.Error(w, `{"error": "Failed to generate upload URL"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// HandleGenerateReadURL generates a presigned URL for reading an object
func (c *MediaController) HandleGenerateReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}

	url, err := c.MediaService.GenerateReadURL(r.Context(), payload.Key)
	if err != nil {
		log.Printf("❌ Failed to generate read URL: %v", err)
		http.Error(w, `{"error": "Failed to generate read URL"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
