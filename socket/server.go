package socket

import (
	"context"
	"log"
	"time"

	"ember_server/services"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer wires the realtime channel. Clients join one room per
// conversation; joining (and every heartbeat) refreshes the user's presence
// TTL, disconnecting clears it best-effort. The chat service broadcasts
// newMessage events into conversation rooms through the returned server.
func NewSocketServer(presence services.PresenceStore) *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	// join attaches the connection to a conversation room and marks the user
	// online.
	server.OnEvent("/", "join", func(c socketio.Conn, data map[string]string) {
		conversationID := data["conversationId"]
		userID := data["userId"]
		if conversationID == "" || userID == "" {
			log.Println("❌ Invalid join request: missing conversationId or userId")
			return
		}

		c.Join(conversationID)
		c.SetContext(userID)

		if err := markOnline(presence, userID); err != nil {
			log.Printf("❌ Failed to mark %s online: %v", userID, err)
		}
		log.Printf("👥 User %s joined conversation %s", userID, conversationID)
	})

	// heartbeat refreshes the presence TTL for an open connection.
	server.OnEvent("/", "heartbeat", func(c socketio.Conn, data map[string]string) {
		userID := data["userId"]
		if userID == "" {
			if ctxUser, ok := c.Context().(string); ok {
				userID = ctxUser
			}
		}
		if userID == "" {
			return
		}
		if err := markOnline(presence, userID); err != nil {
			log.Printf("❌ Heartbeat presence refresh failed for %s: %v", userID, err)
		}
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)

		// Best-effort: TTL expiry covers the crash case.
		if userID, ok := c.Context().(string); ok && userID != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := presence.MarkOffline(ctx, userID); err != nil {
				log.Printf("⚠️ Failed to mark %s offline: %v", userID, err)
			}
		}
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Printf("❌ Socket error: %v", err)
	})

	return server
}

func markOnline(presence services.PresenceStore, userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return presence.MarkOnline(ctx, userID)
}
