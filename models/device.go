package models

// Device maps a user to their push endpoint. One endpoint per user; a new
// registration overwrites the previous one.
type Device struct {
	UserID      string `dynamodbav:"userId" json:"userId"`
	EndpointARN string `dynamodbav:"endpointArn" json:"endpointArn"`
	Platform    string `dynamodbav:"platform" json:"platform"` // "ios", "android"
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// DevicesTable is the DynamoDB table name for push device registrations
const DevicesTable = "Devices"
