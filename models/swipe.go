package models

// Swipe is one directional expression of interest. The PK/SK pair is the
// storage-level uniqueness constraint: a second swipe for the same ordered
// pair fails the conditional insert instead of overwriting history.
type Swipe struct {
	PK         string `dynamodbav:"PK" json:"-"` // "USER#<fromUserId>"
	SK         string `dynamodbav:"SK" json:"-"` // "SWIPE#<toUserId>"
	SwipeID    string `dynamodbav:"swipeId" json:"swipeId"`
	FromUserID string `dynamodbav:"fromUserId" json:"fromUserId"`
	ToUserID   string `dynamodbav:"toUserId" json:"toUserId"`
	Direction  string `dynamodbav:"direction" json:"direction"` // like, superlike, dislike
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipesTable is the DynamoDB table name for swipes
const SwipesTable = "Swipes"

// SwipePK builds the partition key for a swiping user.
func SwipePK(fromUserID string) string { return "USER#" + fromUserID }

// SwipeSK builds the sort key for a swipe target.
func SwipeSK(toUserID string) string { return "SWIPE#" + toUserID }
