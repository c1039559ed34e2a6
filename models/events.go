package models

// MatchCreatedEvent is emitted exactly once per match, at the moment the
// closing like is recorded.
type MatchCreatedEvent struct {
	MatchID   string `json:"matchId"`
	UserAID   string `json:"userAId"`
	UserBID   string `json:"userBId"`
	CreatedAt string `json:"createdAt"`
}

// MessageSentEvent is emitted after a message has been persisted. Delivery
// side effects may still be in flight when subscribers see it.
type MessageSentEvent struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	SentAt         string `json:"sentAt"`
}

// MatchWithProfile is a match enriched with the other user's display info.
type MatchWithProfile struct {
	MatchID        string `json:"matchId"`
	ConversationID string `json:"conversationId,omitempty"`
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	MainPhotoURL   string `json:"mainPhotoUrl"`
	MatchedAt      string `json:"matchedAt"`
}
