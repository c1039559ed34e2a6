package services

import (
	"context"
	"errors"
	"log"

	"ember_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SwipeStore persists swipes. Insert must enforce at most one swipe per
// ordered (from, to) pair at the storage level and report ErrDuplicateSwipe
// when the pair already exists.
type SwipeStore interface {
	Insert(ctx context.Context, swipe models.Swipe) error
	Get(ctx context.Context, fromUserID, toUserID string) (*models.Swipe, error)
}

// DynamoSwipeStore keeps swipes in the Swipes table keyed by the ordered
// pair, with a conditional put as the uniqueness constraint.
type DynamoSwipeStore struct {
	Dynamo *DynamoService
}

func (s *DynamoSwipeStore) Insert(ctx context.Context, swipe models.Swipe) error {
	err := s.Dynamo.PutItemIfAbsent(ctx, models.SwipesTable, swipe, "PK")
	if errors.Is(err, ErrConditionFailed) {
		log.Printf("⚠️ Duplicate swipe rejected: %s -> %s", swipe.FromUserID, swipe.ToUserID)
		return ErrDuplicateSwipe
	}
	return err
}

func (s *DynamoSwipeStore) Get(ctx context.Context, fromUserID, toUserID string) (*models.Swipe, error) {
	key := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: models.SwipePK(fromUserID)},
		"SK": &types.AttributeValueMemberS{Value: models.SwipeSK(toUserID)},
	}

	item, err := s.Dynamo.GetItem(ctx, models.SwipesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var swipe models.Swipe
	if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
		return nil, err
	}
	return &swipe, nil
}
