package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"ember_server/services"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleSendMessage - persists a message and triggers realtime/push delivery
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConversationID string `json:"conversationId"`
		SenderID       string `json:"senderId"`
		Text           string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.ConversationID == "" || request.SenderID == "" {
		http.Error(w, `{"error": "Missing required fields: conversationId, senderId"}`, http.StatusBadRequest)
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), request.ConversationID, request.SenderID, request.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage), errors.Is(err, services.ErrMessageTooLong):
			http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, `{"error": "Conversation not found"}`, http.StatusNotFound)
		case errors.Is(err, services.ErrNotParticipant):
			http.Error(w, `{"error": "You are not part of this conversation"}`, http.StatusForbidden)
		case errors.Is(err, services.ErrConversationClosed):
			http.Error(w, `{"error": "This conversation is closed"}`, http.StatusConflict)
		case errors.Is(err, services.ErrRateLimited):
			w.Header().Set("Retry-After", strconv.Itoa(int(c.ChatService.ChatSendWindow.Seconds())))
			http.Error(w, `{"error": "Too many messages, slow down"}`, http.StatusTooManyRequests)
		default:
			log.Printf("❌ Failed to send message: %v", err)
			http.Error(w, `{"error": "Failed to send message"}`, http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, message)
}

// HandleGetMessages - fetch messages for a conversation
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := r.URL.Query().Get("conversationId")
	requesterID := r.URL.Query().Get("userId")
	limitStr := r.URL.Query().Get("limit")

	if conversationID == "" || requesterID == "" {
		http.Error(w, `{"error": "conversationId and userId are required"}`, http.StatusBadRequest)
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50
	}

	messages, err := c.ChatService.GetMessages(r.Context(), conversationID, requesterID, limit)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, `{"error": "Conversation not found"}`, http.StatusNotFound)
		case errors.Is(err, services.ErrNotParticipant):
			http.Error(w, `{"error": "You are not part of this conversation"}`, http.StatusForbidden)
		default:
			log.Printf("❌ Failed to fetch messages: %v", err)
			http.Error(w, `{"error": "Failed to fetch messages"}`, http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// HandleMarkMessagesAsRead - mark messages received by the user as read
func (c *ChatController) HandleMarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConversationID string `json:"conversationId"`
		UserID         string `json:"userId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.ConversationID == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: conversationId, userId"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.MarkMessagesAsRead(r.Context(), request.ConversationID, request.UserID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, `{"error": "Conversation not found"}`, http.StatusNotFound)
		case errors.Is(err, services.ErrNotParticipant):
			http.Error(w, `{"error": "You are not part of this conversation"}`, http.StatusForbidden)
		default:
			log.Printf("❌ Failed to mark messages as read: %v", err)
			http.Error(w, `{"error": "Failed to mark messages as read"}`, http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
