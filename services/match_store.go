package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ember_server/models"
	"ember_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchStore persists matches keyed by the canonical pair. Create is
// idempotent: if a match for the pair already exists, the existing match is
// returned instead of an error, so a retried closing swipe cannot produce a
// second row.
type MatchStore interface {
	Create(ctx context.Context, match models.Match) (models.Match, error)
	GetByPair(ctx context.Context, userA, userB string) (*models.Match, error)
	Delete(ctx context.Context, userA, userB string) error
	ListForUser(ctx context.Context, userID string) ([]models.Match, error)
}

type DynamoMatchStore struct {
	Dynamo *DynamoService
}

func (s *DynamoMatchStore) Create(ctx context.Context, match models.Match) (models.Match, error) {
	err := s.Dynamo.PutItemIfAbsent(ctx, models.MatchesTable, match, "pairKey")
	if errors.Is(err, ErrConditionFailed) {
		// Lost the race against the other side's closing swipe. The pair's
		// match already exists, return it as-is.
		existing, getErr := s.GetByPair(ctx, match.UserAID, match.UserBID)
		if getErr != nil {
			return models.Match{}, getErr
		}
		if existing == nil {
			return models.Match{}, fmt.Errorf("match for pair %s vanished after conditional failure", match.PairKey)
		}
		log.Printf("ℹ️ Match already exists for pair %s, reusing %s", match.PairKey, existing.MatchID)
		return *existing, nil
	}
	if err != nil {
		return models.Match{}, err
	}
	return match, nil
}

func (s *DynamoMatchStore) GetByPair(ctx context.Context, userA, userB string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: utils.PairKey(userA, userB)},
	}

	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *DynamoMatchStore) Delete(ctx context.Context, userA, userB string) error {
	key := map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: utils.PairKey(userA, userB)},
	}
	return s.Dynamo.DeleteItem(ctx, models.MatchesTable, key)
}

// ListForUser queries both pair-side GSIs; a user can sit on either side of
// the canonical ordering.
func (s *DynamoMatchStore) ListForUser(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match

	queries := []struct {
		index     string
		attribute string
	}{
		{models.MatchUserAIndex, "userAId"},
		{models.MatchUserBIndex, "userBId"},
	}

	for _, q := range queries {
		keyCondition := fmt.Sprintf("%s = :user", q.attribute)
		expressionValues := map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: userID},
		}

		items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, q.index, keyCondition, expressionValues, nil, 100)
		if err != nil {
			return nil, fmt.Errorf("failed to list matches for %s: %w", userID, err)
		}

		var page []models.Match
		if err := attributevalue.UnmarshalListOfMaps(items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
		}
		matches = append(matches, page...)
	}

	return matches, nil
}
