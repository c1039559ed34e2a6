package models

// Message is a persisted chat message. CipherText is the encrypted body;
// plaintext is never written to storage. IsRead is the only mutable field.
type Message struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"`
	MessageID      string `dynamodbav:"messageId" json:"messageId"`
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	CipherText     string `dynamodbav:"cipherText" json:"-"`
	SentAt         string `dynamodbav:"sentAt" json:"sentAt"`
	IsRead         bool   `dynamodbav:"isRead" json:"isRead"`
}

// MessagesTable is the DynamoDB table name for messages
const MessagesTable = "Messages"

// MessageSentAtIndex is the local secondary index keyed by sentAt, so
// conversation queries come back in send order rather than message-id order.
const MessageSentAtIndex = "sentAt-index"

// DecryptedMessage is the API/realtime projection of a Message: same record
// with the body decrypted for delivery.
type DecryptedMessage struct {
	ConversationID string `json:"conversationId"`
	MessageID      string `json:"messageId"`
	SenderID       string `json:"senderId"`
	Text           string `json:"text"`
	SentAt         string `json:"sentAt"`
	IsRead         bool   `json:"isRead"`
}
