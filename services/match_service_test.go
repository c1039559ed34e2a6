package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"ember_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchServiceForTest(t *testing.T) (*MatchService, *memMatchStore, *memConversationStore) {
	t.Helper()

	matches := newMemMatchStore()
	conversations := newMemConversationStore()
	service := &MatchService{
		Matches:       matches,
		Conversations: conversations,
		Users:         newFakeUserLookup("alice", "bob", "carol"),
	}
	return service, matches, conversations
}

func seedMatch(t *testing.T, matches *memMatchStore, matchID, userA, userB string) {
	t.Helper()
	_, err := matches.Create(context.Background(), models.Match{
		PairKey:   userA + "#" + userB,
		MatchID:   matchID,
		UserAID:   userA,
		UserBID:   userB,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	require.NoError(t, err)
}

func TestGetMatchesForUser_EnrichesWithProfileAndConversation(t *testing.T) {
	service, matches, conversations := newMatchServiceForTest(t)
	seedMatch(t, matches, "m-1", "alice", "bob")
	require.NoError(t, conversations.Create(context.Background(), models.Conversation{
		ConversationID: "conv-1",
		MatchID:        "m-1",
		UserAID:        "alice",
		UserBID:        "bob",
		Active:         true,
	}))

	listed, err := service.GetMatchesForUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	entry := listed[0]
	assert.Equal(t, "m-1", entry.MatchID)
	assert.Equal(t, "bob", entry.UserID)
	assert.Equal(t, "User bob", entry.Name)
	assert.Equal(t, "https://photos.example.com/bob.jpg", entry.MainPhotoURL)
	assert.Equal(t, "conv-1", entry.ConversationID)
}

func TestGetMatchesForUser_SkipsMatchWithMissingProfile(t *testing.T) {
	service, matches, _ := newMatchServiceForTest(t)
	seedMatch(t, matches, "m-1", "alice", "bob")
	seedMatch(t, matches, "m-2", "alice", "deleted-user")

	listed, err := service.GetMatchesForUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "m-1", listed[0].MatchID)
}

func TestGetMatchesForUser_EmptyForUnmatchedUser(t *testing.T) {
	service, _, _ := newMatchServiceForTest(t)

	listed, err := service.GetMatchesForUser(context.Background(), "carol")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestUnmatch_DeletesMatchAndClosesConversation(t *testing.T) {
	service, matches, conversations := newMatchServiceForTest(t)
	seedMatch(t, matches, "m-1", "alice", "bob")
	require.NoError(t, conversations.Create(context.Background(), models.Conversation{
		ConversationID: "conv-1",
		MatchID:        "m-1",
		UserAID:        "alice",
		UserBID:        "bob",
		Active:         true,
	}))

	// Order of the pair should not matter.
	require.NoError(t, service.Unmatch(context.Background(), "bob", "alice"))

	assert.Equal(t, 0, matches.count())

	conversation, err := conversations.Get(context.Background(), "conv-1")
	require.NoError(t, err)
	require.NotNil(t, conversation)
	assert.False(t, conversation.Active, "history stays readable but the conversation is closed")
}

// flakyCloseStore fails Close a configured number of times before
// delegating, to exercise partial-failure retries.
type flakyCloseStore struct {
	*memConversationStore
	closeFailures int
}

func (s *flakyCloseStore) Close(ctx context.Context, conversationID string) error {
	if s.closeFailures > 0 {
		s.closeFailures--
		return errors.New("transient storage error")
	}
	return s.memConversationStore.Close(ctx, conversationID)
}

func TestUnmatch_RetrySucceedsAfterCloseFailure(t *testing.T) {
	matches := newMemMatchStore()
	conversations := &flakyCloseStore{memConversationStore: newMemConversationStore(), closeFailures: 1}
	service := &MatchService{
		Matches:       matches,
		Conversations: conversations,
		Users:         newFakeUserLookup("alice", "bob"),
	}

	seedMatch(t, matches, "m-1", "alice", "bob")
	require.NoError(t, conversations.Create(context.Background(), models.Conversation{
		ConversationID: "conv-1",
		MatchID:        "m-1",
		UserAID:        "alice",
		UserBID:        "bob",
		Active:         true,
	}))

	// First attempt fails at the close step; the match must survive so a
	// retry can reach the conversation again.
	require.Error(t, service.Unmatch(context.Background(), "alice", "bob"))
	assert.Equal(t, 1, matches.count())

	require.NoError(t, service.Unmatch(context.Background(), "alice", "bob"))
	assert.Equal(t, 0, matches.count())

	conversation, err := conversations.Get(context.Background(), "conv-1")
	require.NoError(t, err)
	require.NotNil(t, conversation)
	assert.False(t, conversation.Active, "conversation must not accept new sends after unmatch")
}

func TestUnmatch_Errors(t *testing.T) {
	service, _, _ := newMatchServiceForTest(t)

	assert.ErrorIs(t, service.Unmatch(context.Background(), "alice", "alice"), ErrSelfInteraction)
	assert.ErrorIs(t, service.Unmatch(context.Background(), "alice", "bob"), ErrNotFound)
}
