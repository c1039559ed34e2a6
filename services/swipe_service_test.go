package services

import (
	"context"
	"sync"
	"testing"

	"ember_server/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSwipeServiceForTest(userIDs ...string) (*SwipeService, *memSwipeStore, *memMatchStore, *EventBus) {
	swipes := newMemSwipeStore()
	matches := newMemMatchStore()
	bus := NewEventBus()
	service := &SwipeService{
		Swipes:  swipes,
		Matches: matches,
		Users:   newFakeUserLookup(userIDs...),
		Events:  bus,
	}
	return service, swipes, matches, bus
}

func TestRecordSwipe_SelfSwipeRejected(t *testing.T) {
	service, swipes, matches, _ := newSwipeServiceForTest("alice")

	_, _, err := service.RecordSwipe(context.Background(), "alice", "alice", models.DirectionLike)

	assert.ErrorIs(t, err, ErrSelfInteraction)
	assert.Equal(t, 0, swipes.count())
	assert.Equal(t, 0, matches.count())
}

func TestRecordSwipe_UnknownUserRejected(t *testing.T) {
	service, swipes, _, _ := newSwipeServiceForTest("alice")

	_, _, err := service.RecordSwipe(context.Background(), "alice", "ghost", models.DirectionLike)

	assert.ErrorIs(t, err, ErrUnknownUser)
	assert.Equal(t, 0, swipes.count())
}

func TestRecordSwipe_InvalidDirectionRejected(t *testing.T) {
	service, swipes, _, _ := newSwipeServiceForTest("alice", "bob")

	_, _, err := service.RecordSwipe(context.Background(), "alice", "bob", "wink")

	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Equal(t, 0, swipes.count())
}

func TestRecordSwipe_DuplicatePairRejected(t *testing.T) {
	service, swipes, _, _ := newSwipeServiceForTest("alice", "bob")

	_, _, err := service.RecordSwipe(context.Background(), "alice", "bob", models.DirectionLike)
	require.NoError(t, err)

	// A second swipe on the same ordered pair is rejected, even with a
	// different direction. History is never overwritten.
	_, _, err = service.RecordSwipe(context.Background(), "alice", "bob", models.DirectionDislike)
	assert.ErrorIs(t, err, ErrDuplicateSwipe)
	assert.Equal(t, 1, swipes.count())
}

func TestRecordSwipe_FirstLikeDoesNotMatch(t *testing.T) {
	service, _, matches, _ := newSwipeServiceForTest("alice", "bob")

	swipe, match, err := service.RecordSwipe(context.Background(), "alice", "bob", models.DirectionLike)

	require.NoError(t, err)
	require.NotNil(t, swipe)
	assert.Nil(t, match)
	assert.Equal(t, 0, matches.count())
}

func TestRecordSwipe_MutualLikeCreatesOneMatch(t *testing.T) {
	cases := []struct {
		name            string
		first, second   string
		firstDirection  string
		secondDirection string
	}{
		{"like then like", "alice", "bob", models.DirectionLike, models.DirectionLike},
		{"superlike counts", "alice", "bob", models.DirectionSuperLike, models.DirectionLike},
		{"reverse closing order", "bob", "alice", models.DirectionLike, models.DirectionSuperLike},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, _, matches, _ := newSwipeServiceForTest("alice", "bob")

			_, match, err := service.RecordSwipe(context.Background(), tc.first, tc.second, tc.firstDirection)
			require.NoError(t, err)
			require.Nil(t, match)

			_, match, err = service.RecordSwipe(context.Background(), tc.second, tc.first, tc.secondDirection)
			require.NoError(t, err)
			require.NotNil(t, match)

			// Canonical ordering holds no matter which side closed the loop.
			assert.Equal(t, "alice", match.UserAID)
			assert.Equal(t, "bob", match.UserBID)
			assert.Equal(t, 1, matches.count())

			stored, err := matches.GetByPair(context.Background(), "bob", "alice")
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, match.MatchID, stored.MatchID)
		})
	}
}

func TestRecordSwipe_DislikeNeverMatches(t *testing.T) {
	t.Run("dislike after like from other side", func(t *testing.T) {
		service, _, matches, _ := newSwipeServiceForTest("alice", "bob")

		_, _, err := service.RecordSwipe(context.Background(), "bob", "alice", models.DirectionLike)
		require.NoError(t, err)

		_, match, err := service.RecordSwipe(context.Background(), "alice", "bob", models.DirectionDislike)
		require.NoError(t, err)
		assert.Nil(t, match)
		assert.Equal(t, 0, matches.count())
	})

	t.Run("like after dislike from other side", func(t *testing.T) {
		service, _, matches, _ := newSwipeServiceForTest("alice", "bob")

		_, _, err := service.RecordSwipe(context.Background(), "bob", "alice", models.DirectionDislike)
		require.NoError(t, err)

		_, match, err := service.RecordSwipe(context.Background(), "alice", "bob", models.DirectionLike)
		require.NoError(t, err)
		assert.Nil(t, match)
		assert.Equal(t, 0, matches.count())
	})
}

func TestRecordSwipe_EmitsMatchCreatedEvent(t *testing.T) {
	service, _, _, bus := newSwipeServiceForTest("alice", "bob")

	var events []models.MatchCreatedEvent
	bus.SubscribeMatchCreated(func(event models.MatchCreatedEvent) {
		events = append(events, event)
	})

	_, _, err := service.RecordSwipe(context.Background(), "alice", "bob", models.DirectionLike)
	require.NoError(t, err)
	assert.Empty(t, events)

	_, match, err := service.RecordSwipe(context.Background(), "bob", "alice", models.DirectionLike)
	require.NoError(t, err)
	require.NotNil(t, match)

	require.Len(t, events, 1)
	assert.Equal(t, match.MatchID, events[0].MatchID)
	assert.Equal(t, "alice", events[0].UserAID)
	assert.Equal(t, "bob", events[0].UserBID)
}

func TestRecordSwipe_ConcurrentDuplicates(t *testing.T) {
	service, swipes, _, _ := newSwipeServiceForTest("alice", "bob")

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = service.RecordSwipe(context.Background(), "alice", "bob", models.DirectionLike)
		}(i)
	}
	wg.Wait()

	successes, duplicates := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case err == ErrDuplicateSwipe:
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, duplicates)
	assert.Equal(t, 1, swipes.count())
}

func TestMatchStore_CreateIsIdempotent(t *testing.T) {
	matches := newMemMatchStore()

	first := models.Match{
		PairKey: "alice#bob",
		MatchID: uuid.NewString(),
		UserAID: "alice",
		UserBID: "bob",
	}
	retry := first
	retry.MatchID = uuid.NewString()

	created, err := matches.Create(context.Background(), first)
	require.NoError(t, err)

	// A retried creation for the same pair must return the existing match,
	// not a second row.
	again, err := matches.Create(context.Background(), retry)
	require.NoError(t, err)

	assert.Equal(t, created.MatchID, again.MatchID)
	assert.Equal(t, 1, matches.count())
	assert.Equal(t, 1, matches.inserts)
}
