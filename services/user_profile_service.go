package services

import (
	"context"

	"ember_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserLookup is the external user capability this core consumes: existence
// checks and display info for match and notification payloads.
type UserLookup interface {
	Exists(ctx context.Context, userID string) (bool, error)
	DisplayInfo(ctx context.Context, userID string) (*models.DisplayInfo, error)
}

// UserProfileService reads the UserProfiles table owned by the profile
// service. This core never writes it.
type UserProfileService struct {
	Dynamo *DynamoService
}

func (s *UserProfileService) getProfile(ctx context.Context, userID string) (map[string]types.AttributeValue, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	return s.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
}

func (s *UserProfileService) Exists(ctx context.Context, userID string) (bool, error) {
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile != nil, nil
}

func (s *UserProfileService) DisplayInfo(ctx context.Context, userID string) (*models.DisplayInfo, error) {
	item, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, err
	}

	return &models.DisplayInfo{
		UserID:       userID,
		Name:         profile.Name,
		MainPhotoURL: profile.FirstPhoto(),
	}, nil
}
