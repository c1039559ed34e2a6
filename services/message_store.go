package services

import (
	"context"
	"fmt"
	"log"

	"ember_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MessageStore persists messages. Ordering within a conversation follows
// SentAt; IsRead is the only field MarkRead may touch.
type MessageStore interface {
	Insert(ctx context.Context, message models.Message) error
	ListByConversation(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID string) error
}

type DynamoMessageStore struct {
	Dynamo *DynamoService
}

func (s *DynamoMessageStore) Insert(ctx context.Context, message models.Message) error {
	return s.Dynamo.PutItem(ctx, models.MessagesTable, message)
}

// ListByConversation queries the sentAt index, so DynamoDB itself returns
// messages oldest first and the limit takes the oldest page.
func (s *DynamoMessageStore) ListByConversation(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	keyCondition := "conversationId = :conversationId"
	expressionValues := map[string]types.AttributeValue{
		":conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MessagesTable, models.MessageSentAtIndex, keyCondition, expressionValues, nil, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	return messages, nil
}

// MarkRead flips isRead on every message in the conversation that the reader
// did not send, paging through the whole conversation. Per-message update
// failures are logged and skipped so one bad row cannot block the rest.
func (s *DynamoMessageStore) MarkRead(ctx context.Context, conversationID, readerID string) error {
	keyCondition := "conversationId = :conversationId"
	expressionValues := map[string]types.AttributeValue{
		":conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}

	items, err := s.Dynamo.QueryAllItemsWithIndex(ctx, models.MessagesTable, models.MessageSentAtIndex, keyCondition, expressionValues, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return fmt.Errorf("failed to parse messages: %w", err)
	}

	for _, message := range messages {
		if message.SenderID == readerID || message.IsRead {
			continue
		}

		key := map[string]types.AttributeValue{
			"conversationId": &types.AttributeValueMemberS{Value: conversationID},
			"messageId":      &types.AttributeValueMemberS{Value: message.MessageID},
		}
		updateExpression := "SET isRead = :true"
		expressionValues := map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
		}

		if _, err := s.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression, key, expressionValues, nil); err != nil {
			log.Printf("❌ Failed to mark message %s as read: %v", message.MessageID, err)
		}
	}

	return nil
}
