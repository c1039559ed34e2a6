package services

import (
	"context"
	"fmt"
	"log"

	"ember_server/models"
)

// MatchService serves match listings and handles unmatching.
type MatchService struct {
	Matches       MatchStore
	Conversations ConversationStore
	Users         UserLookup
}

// GetMatchesForUser lists a user's matches enriched with the other side's
// display info. A match whose counterpart profile cannot be fetched is
// skipped rather than failing the list.
func (s *MatchService) GetMatchesForUser(ctx context.Context, userID string) ([]models.MatchWithProfile, error) {
	matches, err := s.Matches.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.MatchWithProfile, 0, len(matches))
	for _, match := range matches {
		otherID := match.OtherUser(userID)

		info, err := s.Users.DisplayInfo(ctx, otherID)
		if err != nil {
			log.Printf("⚠️ Skipping match %s, profile lookup for %s failed: %v", match.MatchID, otherID, err)
			continue
		}

		entry := models.MatchWithProfile{
			MatchID:      match.MatchID,
			UserID:       otherID,
			Name:         info.Name,
			MainPhotoURL: info.MainPhotoURL,
			MatchedAt:    match.CreatedAt,
		}
		if conversation, err := s.Conversations.GetByMatch(ctx, match.MatchID); err == nil && conversation != nil {
			entry.ConversationID = conversation.ConversationID
		}

		enriched = append(enriched, entry)
	}

	return enriched, nil
}

// Unmatch deletes the match between two users and closes its conversation
// for new messages. Swipe history is retained.
func (s *MatchService) Unmatch(ctx context.Context, userID, otherUserID string) error {
	if userID == otherUserID {
		return ErrSelfInteraction
	}

	match, err := s.Matches.GetByPair(ctx, userID, otherUserID)
	if err != nil {
		return fmt.Errorf("failed to load match: %w", err)
	}
	if match == nil {
		return ErrNotFound
	}

	// Close the conversation before deleting the match. Close is idempotent,
	// so a retry after a failure walks the same path; the reverse order would
	// strand an open conversation once the match row is gone and GetByPair
	// starts reporting not-found.
	conversation, err := s.Conversations.GetByMatch(ctx, match.MatchID)
	if err != nil {
		return fmt.Errorf("failed to find conversation for match: %w", err)
	}
	if conversation != nil {
		if err := s.Conversations.Close(ctx, conversation.ConversationID); err != nil {
			return fmt.Errorf("failed to close conversation: %w", err)
		}
	}

	if err := s.Matches.Delete(ctx, match.UserAID, match.UserBID); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	log.Printf("💔 Unmatched %s and %s (%s)", match.UserAID, match.UserBID, match.MatchID)

	return nil
}
