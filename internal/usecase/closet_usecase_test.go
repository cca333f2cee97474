package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stylemate/internal/domain/entity"
	"stylemate/pkg/errors"
)

func newClosetFixture(t *testing.T) (*fakeStateRepo, *fakeUploader, *SessionManager, *ClosetUseCase) {
	repo := newFakeStateRepo()
	uploader := &fakeUploader{}
	sm := NewSessionManager(repo, time.Hour)
	uc := NewClosetUseCase(sm, uploader)

	startSession(t, sm, "user-a", "Alice")
	return repo, uploader, sm, uc
}

func TestAddItemDenormalizesOwner(t *testing.T) {
	_, _, _, uc := newClosetFixture(t)

	item, err := uc.AddItem(context.Background(), "user-a", ItemInput{
		ImageURLs:      []string{"https://example.com/jacket.jpg"},
		Category:       "jacket",
		Color:          "navy",
		StyleTags:      []string{"vintage", "denim"},
		EstimatedPrice: 450,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "user-a", item.UserID)
	assert.Equal(t, "Alice", item.UserName)
	assert.NotEmpty(t, item.UserAvatar)

	items, err := uc.ListCloset("user-a")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddItemUploadsDataURLs(t *testing.T) {
	_, uploader, _, uc := newClosetFixture(t)

	item, err := uc.AddItem(context.Background(), "user-a", ItemInput{
		ImageURLs: []string{"data:image/jpeg;base64,aGVsbG8="},
		Category:  "dress",
		Color:     "red",
	})
	assert.NoError(t, err)
	assert.Len(t, uploader.uploaded, 1)
	assert.Equal(t, uploader.uploaded[0], item.ImageURLs[0])
}

func TestUpdateItemRefreshesMatchSnapshots(t *testing.T) {
	_, _, sm, uc := newClosetFixture(t)

	item, err := uc.AddItem(context.Background(), "user-a", ItemInput{
		ImageURLs: []string{"https://example.com/jacket.jpg"},
		Category:  "jacket",
		Color:     "navy",
	})
	assert.NoError(t, err)

	session, _ := sm.Get("user-a")
	session.mutate(func(state *entity.UserAppState) {
		state.AddMatch(entity.Match{
			ID:           "match-1",
			User1:        entity.MatchSide{UserID: "user-a", ClothingItem: *item},
			User2:        entity.MatchSide{UserID: "user-b"},
			Participants: []string{"user-a", "user-b"},
			Status:       entity.MatchActive,
		})
	})

	updated, err := uc.UpdateItem(context.Background(), "user-a", item.ID, ItemInput{
		ImageURLs: item.ImageURLs,
		Category:  "jacket",
		Color:     "forest green",
	})
	assert.NoError(t, err)
	assert.Equal(t, "forest green", updated.Color)

	m, _ := session.Snapshot().MatchByID("match-1")
	assert.Equal(t, "forest green", m.User1.ClothingItem.Color)
}

func TestDeleteItemRemovesStoredImages(t *testing.T) {
	_, uploader, _, uc := newClosetFixture(t)

	item, err := uc.AddItem(context.Background(), "user-a", ItemInput{
		ImageURLs: []string{"data:image/png;base64,aGVsbG8="},
		Category:  "shirt",
		Color:     "white",
	})
	assert.NoError(t, err)

	assert.NoError(t, uc.DeleteItem(context.Background(), "user-a", item.ID))
	assert.Equal(t, uploader.uploaded, uploader.deleted)

	items, _ := uc.ListCloset("user-a")
	assert.Empty(t, items)
}

func TestUpdateUnknownItem(t *testing.T) {
	_, _, _, uc := newClosetFixture(t)

	_, err := uc.UpdateItem(context.Background(), "user-a", "missing", ItemInput{
		ImageURLs: []string{"https://example.com/x.jpg"},
		Category:  "shirt",
		Color:     "white",
	})
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	err = uc.DeleteItem(context.Background(), "user-a", "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
