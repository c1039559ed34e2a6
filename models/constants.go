package models

// Swipe directions
const (
	DirectionLike      = "like"
	DirectionSuperLike = "superlike"
	DirectionDislike   = "dislike"
)

// IsLikeDirection reports whether a direction counts toward a mutual match.
func IsLikeDirection(direction string) bool {
	return direction == DirectionLike || direction == DirectionSuperLike
}

// ValidDirection reports whether a direction is one of the known swipe kinds.
func ValidDirection(direction string) bool {
	return direction == DirectionLike || direction == DirectionSuperLike || direction == DirectionDislike
}

// Throttled action kinds
const (
	ActionChatSend = "chat-send"
)

// Push notification kinds. Payloads carry a reference id, never message content.
const (
	PushKindNewMessage = "new_message"
	PushKindNewMatch   = "new_match"
)
