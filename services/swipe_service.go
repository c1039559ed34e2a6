package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"ember_server/models"
	"ember_server/utils"

	"github.com/google/uuid"
)

// SwipeService is the swipe-to-match engine: it records directional swipes
// and turns mutual likes into exactly one match.
type SwipeService struct {
	Swipes  SwipeStore
	Matches MatchStore
	Users   UserLookup
	Events  *EventBus
}

// RecordSwipe validates and stores a swipe, then checks the reverse
// direction for a mutual like. On a mutual like it creates the match (keyed
// by the canonical pair, so creation is idempotent under retries) and emits a
// match-created event. The returned match is nil when no match resulted.
func (s *SwipeService) RecordSwipe(ctx context.Context, fromUserID, toUserID, direction string) (*models.Swipe, *models.Match, error) {
	if !models.ValidDirection(direction) {
		return nil, nil, ErrInvalidDirection
	}
	if fromUserID == toUserID {
		return nil, nil, ErrSelfInteraction
	}

	for _, userID := range []string{fromUserID, toUserID} {
		exists, err := s.Users.Exists(ctx, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up user %s: %w", userID, err)
		}
		if !exists {
			return nil, nil, ErrUnknownUser
		}
	}

	swipe := models.Swipe{
		PK:         models.SwipePK(fromUserID),
		SK:         models.SwipeSK(toUserID),
		SwipeID:    uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Direction:  direction,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := s.Swipes.Insert(ctx, swipe); err != nil {
		return nil, nil, err
	}
	log.Printf("👆 Swipe recorded: %s -> %s (%s)", fromUserID, toUserID, direction)

	if !models.IsLikeDirection(direction) {
		return &swipe, nil, nil
	}

	reverse, err := s.Swipes.Get(ctx, toUserID, fromUserID)
	if err != nil {
		// The swipe is already durable; surface the mutual-like check failure
		// so the caller can retry the match step.
		return &swipe, nil, fmt.Errorf("failed to check reverse swipe: %w", err)
	}
	if reverse == nil || !models.IsLikeDirection(reverse.Direction) {
		return &swipe, nil, nil
	}

	match, err := s.createMatch(ctx, fromUserID, toUserID)
	if err != nil {
		return &swipe, nil, err
	}
	return &swipe, match, nil
}

func (s *SwipeService) createMatch(ctx context.Context, fromUserID, toUserID string) (*models.Match, error) {
	userA, userB := utils.CanonicalPair(fromUserID, toUserID)
	match := models.Match{
		PairKey:   utils.PairKey(fromUserID, toUserID),
		MatchID:   uuid.NewString(),
		UserAID:   userA,
		UserBID:   userB,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	created, err := s.Matches.Create(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	log.Printf("💖 It's a match: %s + %s (%s)", created.UserAID, created.UserBID, created.MatchID)

	s.Events.PublishMatchCreated(models.MatchCreatedEvent{
		MatchID:   created.MatchID,
		UserAID:   created.UserAID,
		UserBID:   created.UserBID,
		CreatedAt: created.CreatedAt,
	})

	return &created, nil
}
