package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newAuthFixture() (*fakeUserRepo, *fakeStateRepo, *AuthUseCase) {
	userRepo := newFakeUserRepo()
	stateRepo := newFakeStateRepo()
	sm := NewSessionManager(stateRepo, time.Hour)
	return userRepo, stateRepo, NewAuthUseCase(userRepo, sm, &fakeUploader{})
}

func TestStartSessionSeedsProfileFromEmail(t *testing.T) {
	userRepo, stateRepo, uc := newAuthFixture()

	user, err := uc.StartSession(context.Background(), Identity{
		UID:   "uid-1",
		Email: "mei.lin@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, "mei.lin", user.Name)
	assert.True(t, strings.HasPrefix(user.Username, "@"))
	assert.Contains(t, user.Avatar, "ui-avatars.com")
	assert.NotEmpty(t, user.JoinDate)

	// Profile and state documents both exist now.
	stored, err := userRepo.GetByID(context.Background(), "uid-1")
	assert.NoError(t, err)
	assert.Equal(t, user.Name, stored.Name)
	assert.NotNil(t, stateRepo.stored("uid-1"))
}

func TestStartSessionReusesExistingProfile(t *testing.T) {
	userRepo, _, uc := newAuthFixture()

	first, err := uc.StartSession(context.Background(), Identity{UID: "uid-1", Name: "Mei"})
	assert.NoError(t, err)

	second, err := uc.StartSession(context.Background(), Identity{UID: "uid-1", Name: "Renamed"})
	assert.NoError(t, err)
	assert.Equal(t, first.Username, second.Username)

	users, _ := userRepo.List(context.Background(), 10)
	assert.Len(t, users, 1)
}

func TestUpdateProfileUploadsAvatar(t *testing.T) {
	_, _, uc := newAuthFixture()

	_, err := uc.StartSession(context.Background(), Identity{UID: "uid-1", Name: "Mei"})
	assert.NoError(t, err)

	updated, err := uc.UpdateProfile(context.Background(), "uid-1", UpdateProfileInput{
		Avatar:      "data:image/png;base64,aGVsbG8=",
		PhoneNumber: "0912345678",
	})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.Avatar, "https://"))
	assert.Equal(t, "0912345678", updated.PhoneNumber)
	// Untouched fields survive the partial update.
	assert.Equal(t, "Mei", updated.Name)

	profile, err := uc.GetProfile(context.Background(), "uid-1")
	assert.NoError(t, err)
	assert.Equal(t, updated.Avatar, profile.Avatar)
}

func TestGetProfileWithoutSession(t *testing.T) {
	userRepo, _, uc := newAuthFixture()

	_, err := uc.StartSession(context.Background(), Identity{UID: "uid-1", Name: "Mei"})
	assert.NoError(t, err)
	assert.NoError(t, uc.EndSession(context.Background(), "uid-1"))

	// Falls back to the profile document once the session is gone.
	profile, err := uc.GetProfile(context.Background(), "uid-1")
	assert.NoError(t, err)
	assert.Equal(t, "Mei", profile.Name)

	_, err = userRepo.GetByID(context.Background(), "uid-1")
	assert.NoError(t, err)
}
