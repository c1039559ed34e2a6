package models

// UserProfile is the slice of the profile record this service reads. Profile
// CRUD lives in another service; the core only needs existence checks and
// display info for match and notification payloads.
type UserProfile struct {
	UserID string   `dynamodbav:"userId" json:"userId"`
	Name   string   `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Photos []string `dynamodbav:"photos,omitempty" json:"photos,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"

// FirstPhoto returns the profile's main photo URL, empty when none uploaded.
func (p UserProfile) FirstPhoto() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0]
}

// DisplayInfo is the public projection used in match lists and payloads.
type DisplayInfo struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	MainPhotoURL string `json:"mainPhotoUrl"`
}
