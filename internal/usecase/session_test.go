package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stylemate/internal/domain/entity"
)

func TestStartSeedsEmptyState(t *testing.T) {
	repo := newFakeStateRepo()
	sm := NewSessionManager(repo, time.Hour)

	session := startSession(t, sm, "user-a", "Alice")

	snapshot := session.Snapshot()
	assert.Empty(t, snapshot.Closet)
	assert.Empty(t, snapshot.Matches)
	assert.NotNil(t, repo.stored("user-a"))
}

func TestStartPullsExistingState(t *testing.T) {
	repo := newFakeStateRepo()
	seeded := entity.NewUserAppState()
	seeded.AddClosetItem(entity.ClothingItem{ID: "item-1", UserID: "user-a"})
	seeded.MarkSeen("seen-1")
	repo.seed("user-a", seeded)

	sm := NewSessionManager(repo, time.Hour)
	session := startSession(t, sm, "user-a", "Alice")

	snapshot := session.Snapshot()
	assert.Len(t, snapshot.Closet, 1)
	assert.True(t, snapshot.HasSeen("seen-1"))
}

func TestDebouncedFlushCoalescesMutations(t *testing.T) {
	repo := newFakeStateRepo()
	sm := NewSessionManager(repo, 30*time.Millisecond)
	session := startSession(t, sm, "user-a", "Alice")

	for i := 0; i < 5; i++ {
		session.mutate(func(state *entity.UserAppState) {
			state.MarkSeen(string(rune('a' + i)))
		})
	}

	// Nothing lands before the quiet period elapses.
	assert.Empty(t, repo.stored("user-a").SeenItemIDs)

	assert.Eventually(t, func() bool {
		return len(repo.stored("user-a").SeenItemIDs) == 5
	}, time.Second, 10*time.Millisecond)
}

func TestEndFlushesAndCancels(t *testing.T) {
	repo := newFakeStateRepo()
	sm := NewSessionManager(repo, time.Hour)
	session := startSession(t, sm, "user-a", "Alice")

	session.mutate(func(state *entity.UserAppState) {
		state.MarkSeen("item-1")
	})

	saves := repo.saveCount["user-a"]
	assert.NoError(t, sm.End(context.Background(), "user-a"))

	assert.True(t, repo.stored("user-a").HasSeen("item-1"))
	assert.Equal(t, saves+1, repo.saveCount["user-a"])

	// The session is gone after teardown.
	_, err := sm.Get("user-a")
	assert.Error(t, err)
}

func TestStartFallsBackOnReadFailure(t *testing.T) {
	repo := newFakeStateRepo()
	repo.failOn("Get", assert.AnError)

	sm := NewSessionManager(repo, time.Hour)
	session := startSession(t, sm, "user-a", "Alice")

	assert.Empty(t, session.Snapshot().Closet)
}

func TestStartRehydratesLiveSession(t *testing.T) {
	repo := newFakeStateRepo()
	sm := NewSessionManager(repo, time.Hour)
	session := startSession(t, sm, "user-a", "Alice")

	// A counterparty lands a match straight in the stored document while
	// the session is live.
	match := entity.Match{
		ID:           "match-1",
		User1:        entity.MatchSide{UserID: "user-b", ClothingItem: entity.ClothingItem{ID: "item-b1"}},
		User2:        entity.MatchSide{UserID: "user-a", ClothingItem: entity.ClothingItem{ID: "item-a1"}},
		Participants: []string{"user-a", "user-b"},
		Status:       entity.MatchActive,
		MatchedAt:    time.Now(),
	}
	assert.NoError(t, repo.AppendMatch(context.Background(), "user-a", match))

	assert.Empty(t, session.Snapshot().Matches)

	// Logging in again on the live session pulls the mirror writes in.
	again := startSession(t, sm, "user-a", "Alice")
	matches := again.Snapshot().Matches
	assert.Len(t, matches, 1)
	assert.Equal(t, "match-1", matches[0].ID)
}

func TestStartIsIdempotentPerUser(t *testing.T) {
	repo := newFakeStateRepo()
	sm := NewSessionManager(repo, time.Hour)

	first := startSession(t, sm, "user-a", "Alice")
	first.mutate(func(state *entity.UserAppState) {
		state.MarkSeen("item-1")
	})

	second := startSession(t, sm, "user-a", "Alice B")

	// Same live session, refreshed profile.
	assert.True(t, second.Snapshot().HasSeen("item-1"))
	assert.Equal(t, "Alice B", second.User().Name)
}
