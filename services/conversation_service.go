package services

import (
	"context"
	"log"
	"time"

	"ember_server/models"

	"github.com/google/uuid"
)

// ConversationService creates conversations for new matches and serves
// lookups. It subscribes to match-created events, so a conversation exists by
// the time the match response reaches either client.
type ConversationService struct {
	Conversations ConversationStore
	Push          Notifier
}

// HandleMatchCreated is the match-created subscriber.
func (s *ConversationService) HandleMatchCreated(event models.MatchCreatedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conversation := models.Conversation{
		ConversationID: uuid.NewString(),
		MatchID:        event.MatchID,
		UserAID:        event.UserAID,
		UserBID:        event.UserBID,
		Active:         true,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := s.Conversations.Create(ctx, conversation); err != nil {
		log.Printf("❌ Failed to create conversation for match %s: %v", event.MatchID, err)
		return
	}
	log.Printf("💬 Conversation %s created for match %s", conversation.ConversationID, event.MatchID)

	// Both sides get a match notification; the one looking at the app sees
	// the match screen anyway, for the other this is the announcement.
	if s.Push != nil {
		s.Push.Notify(event.UserAID, models.PushKindNewMatch, event.MatchID)
		s.Push.Notify(event.UserBID, models.PushKindNewMatch, event.MatchID)
	}
}

// GetConversation fetches a conversation by id; ErrNotFound when absent.
func (s *ConversationService) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	conversation, err := s.Conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrNotFound
	}
	return conversation, nil
}
