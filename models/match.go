package models

// Match records that a mutual like occurred. PairKey is the canonically
// ordered "<userA>#<userB>" (userA < userB) and is the partition key, so the
// same pair can never produce two match rows no matter which side closed the
// loop.
type Match struct {
	PairKey   string `dynamodbav:"pairKey" json:"-"`
	MatchID   string `dynamodbav:"matchId" json:"matchId"`
	UserAID   string `dynamodbav:"userAId" json:"userAId"`
	UserBID   string `dynamodbav:"userBId" json:"userBId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// GSIs for listing a user's matches from either side of the pair.
const (
	MatchUserAIndex = "userAId-index"
	MatchUserBIndex = "userBId-index"
)

// OtherUser returns the counterpart of userID in the match.
func (m Match) OtherUser(userID string) string {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}
