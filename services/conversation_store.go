package services

import (
	"context"
	"fmt"

	"ember_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ConversationStore persists conversations. Close marks a conversation
// inactive so no new messages can enter it; history stays readable.
type ConversationStore interface {
	Create(ctx context.Context, conversation models.Conversation) error
	Get(ctx context.Context, conversationID string) (*models.Conversation, error)
	GetByMatch(ctx context.Context, matchID string) (*models.Conversation, error)
	Close(ctx context.Context, conversationID string) error
}

type DynamoConversationStore struct {
	Dynamo *DynamoService
}

func (s *DynamoConversationStore) Create(ctx context.Context, conversation models.Conversation) error {
	return s.Dynamo.PutItem(ctx, models.ConversationsTable, conversation)
}

func (s *DynamoConversationStore) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	key := map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.ConversationsTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var conversation models.Conversation
	if err := attributevalue.UnmarshalMap(item, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (s *DynamoConversationStore) GetByMatch(ctx context.Context, matchID string) (*models.Conversation, error) {
	keyCondition := "matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberS{Value: matchID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.ConversationsTable, models.ConversationMatchIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to find conversation for match %s: %w", matchID, err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var conversation models.Conversation
	if err := attributevalue.UnmarshalMap(items[0], &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (s *DynamoConversationStore) Close(ctx context.Context, conversationID string) error {
	key := map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}
	updateExpression := "SET active = :false"
	expressionValues := map[string]types.AttributeValue{
		":false": &types.AttributeValueMemberBOOL{Value: false},
	}

	_, err := s.Dynamo.UpdateItem(ctx, models.ConversationsTable, updateExpression, key, expressionValues, nil)
	return err
}
