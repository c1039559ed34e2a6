package services

import (
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"ember_server/models"

	"github.com/google/uuid"
)

// Broadcaster is the realtime fan-out channel, satisfied by the socket.io
// server: one event to every connection joined to the conversation's room.
type Broadcaster interface {
	BroadcastToRoom(namespace, room, event string, args ...interface{}) bool
}

// ChatService is the conversation delivery pipeline: throttle, encrypt,
// persist, fan out to present participants, push to absent ones. The
// persistence step is the commit line; everything after it is best-effort
// and isolated per recipient.
type ChatService struct {
	Messages      MessageStore
	Conversations ConversationStore
	Presence      PresenceStore
	Limiter       RateLimiter
	Cipher        *MessageCipher
	Realtime      Broadcaster
	Push          Notifier
	Events        *EventBus

	MaxMessageLength int
	ChatSendLimit    int
	ChatSendWindow   time.Duration
}

// SendMessage runs the full pipeline. Validation, authorization and the
// throttle check all happen before any durable write; a throttled send has no
// side effects at all.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, senderID, text string) (*models.DecryptedMessage, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > s.MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	conversation, err := s.Conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conversation == nil {
		return nil, ErrNotFound
	}
	if !conversation.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}
	if !conversation.Active {
		return nil, ErrConversationClosed
	}

	allowed, err := s.Limiter.Allow(ctx, models.ActionChatSend+":"+senderID, s.ChatSendLimit, s.ChatSendWindow)
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	if !allowed {
		log.Printf("🛑 Send throttled for %s in %s", senderID, conversationID)
		return nil, ErrRateLimited
	}

	message := models.Message{
		ConversationID: conversationID,
		MessageID:      uuid.NewString(),
		SenderID:       senderID,
		CipherText:     s.Cipher.Encrypt(text),
		SentAt:         time.Now().UTC().Format(time.RFC3339Nano),
		IsRead:         false,
	}

	if err := s.Messages.Insert(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	// Commit line crossed: the message happened. Fan-out and push are
	// best-effort from here on.
	delivered := models.DecryptedMessage{
		ConversationID: message.ConversationID,
		MessageID:      message.MessageID,
		SenderID:       message.SenderID,
		Text:           text,
		SentAt:         message.SentAt,
		IsRead:         false,
	}
	s.deliver(ctx, conversation, senderID, delivered)

	s.Events.PublishMessageSent(models.MessageSentEvent{
		MessageID:      message.MessageID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		SentAt:         message.SentAt,
	})

	return &delivered, nil
}

// deliver samples presence once per recipient: present recipients get the
// realtime event, absent ones get a push referencing the conversation.
// Failures are logged per recipient and never affect the others.
func (s *ChatService) deliver(ctx context.Context, conversation *models.Conversation, senderID string, message models.DecryptedMessage) {
	for _, participant := range conversation.Participants() {
		if participant == senderID {
			continue
		}

		online, err := s.Presence.IsOnline(ctx, participant)
		if err != nil {
			log.Printf("❌ Presence check failed for %s, falling back to push: %v", participant, err)
			online = false
		}

		if online {
			s.Realtime.BroadcastToRoom("/", conversation.ConversationID, "newMessage", message)
			log.Printf("📨 Realtime delivery to %s in %s", participant, conversation.ConversationID)
			continue
		}

		s.Push.Notify(participant, models.PushKindNewMessage, conversation.ConversationID)
	}
}

// GetMessages returns up to limit messages of a conversation, oldest first,
// decrypted for the caller. A message that fails to decrypt is logged and
// skipped rather than failing the whole page.
func (s *ChatService) GetMessages(ctx context.Context, conversationID, requesterID string, limit int) ([]models.DecryptedMessage, error) {
	conversation, err := s.Conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conversation == nil {
		return nil, ErrNotFound
	}
	if !conversation.HasParticipant(requesterID) {
		return nil, ErrNotParticipant
	}

	messages, err := s.Messages.ListByConversation(ctx, conversationID, limit)
	if err != nil {
		return nil, err
	}

	decrypted := make([]models.DecryptedMessage, 0, len(messages))
	for _, message := range messages {
		text, err := s.Cipher.Decrypt(message.CipherText)
		if err != nil {
			log.Printf("❌ Failed to decrypt message %s: %v", message.MessageID, err)
			continue
		}
		decrypted = append(decrypted, models.DecryptedMessage{
			ConversationID: message.ConversationID,
			MessageID:      message.MessageID,
			SenderID:       message.SenderID,
			Text:           text,
			SentAt:         message.SentAt,
			IsRead:         message.IsRead,
		})
	}

	return decrypted, nil
}

// MarkMessagesAsRead marks messages the reader received as read.
func (s *ChatService) MarkMessagesAsRead(ctx context.Context, conversationID, readerID string) error {
	conversation, err := s.Conversations.Get(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}
	if conversation == nil {
		return ErrNotFound
	}
	if !conversation.HasParticipant(readerID) {
		return ErrNotParticipant
	}

	return s.Messages.MarkRead(ctx, conversationID, readerID)
}
