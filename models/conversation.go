package models

// Conversation is the 1:1 chat created for a match. Active flips to false on
// unmatch, which blocks new sends but keeps history readable.
type Conversation struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"`
	MatchID        string `dynamodbav:"matchId" json:"matchId"`
	UserAID        string `dynamodbav:"userAId" json:"userAId"`
	UserBID        string `dynamodbav:"userBId" json:"userBId"`
	Active         bool   `dynamodbav:"active" json:"active"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// ConversationsTable is the DynamoDB table name for conversations
const ConversationsTable = "Conversations"

// ConversationMatchIndex is the GSI keyed by matchId, used on unmatch.
const ConversationMatchIndex = "matchId-index"

// HasParticipant reports whether userID belongs to the conversation.
func (c Conversation) HasParticipant(userID string) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// Participants returns both members of the conversation.
func (c Conversation) Participants() []string {
	return []string{c.UserAID, c.UserBID}
}
