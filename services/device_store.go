package services

import (
	"context"

	"ember_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DeviceStore keeps push endpoint registrations, one per user.
type DeviceStore interface {
	Put(ctx context.Context, device models.Device) error
	Get(ctx context.Context, userID string) (*models.Device, error)
}

type DynamoDeviceStore struct {
	Dynamo *DynamoService
}

func (s *DynamoDeviceStore) Put(ctx context.Context, device models.Device) error {
	return s.Dynamo.PutItem(ctx, models.DevicesTable, device)
}

func (s *DynamoDeviceStore) Get(ctx context.Context, userID string) (*models.Device, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.DevicesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var device models.Device
	if err := attributevalue.UnmarshalMap(item, &device); err != nil {
		return nil, err
	}
	return &device, nil
}
