package services

import "errors"

// Validation and authorization errors are returned before any durable write.
var (
	ErrSelfInteraction    = errors.New("cannot swipe on yourself")
	ErrUnknownUser        = errors.New("user does not exist")
	ErrInvalidDirection   = errors.New("unsupported swipe direction")
	ErrDuplicateSwipe     = errors.New("swipe already recorded for this pair")
	ErrNotParticipant     = errors.New("sender is not a participant of this conversation")
	ErrEmptyMessage       = errors.New("message text is empty")
	ErrMessageTooLong     = errors.New("message text exceeds the maximum length")
	ErrRateLimited        = errors.New("message rate limit exceeded")
	ErrConversationClosed = errors.New("conversation is closed")
	ErrNotFound           = errors.New("item not found")
)
