package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"stylemate/internal/domain/entity"
	"stylemate/internal/domain/repository"
	"stylemate/pkg/errors"
	"stylemate/pkg/logger"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions *SessionManager
	uploader ImageUploader
}

func NewAuthUseCase(userRepo repository.UserRepository, sessions *SessionManager, uploader ImageUploader) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		sessions: sessions,
		uploader: uploader,
	}
}

// Identity is the verified identity supplied by the authentication
// collaborator on session start.
type Identity struct {
	UID         string
	Name        string
	Email       string
	Avatar      string
	PhoneNumber string
}

// StartSession locates or creates the user's profile document and starts a
// live session, pulling the state document (or seeding an empty one).
func (uc *AuthUseCase) StartSession(ctx context.Context, identity Identity) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, identity.UID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		user = uc.defaultProfile(identity)
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		logger.Info("Created profile for new user %s", user.ID)
	}

	if _, err := uc.sessions.Start(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *AuthUseCase) defaultProfile(identity Identity) *entity.User {
	name := identity.Name
	if name == "" {
		if at := strings.Index(identity.Email, "@"); at > 0 {
			name = identity.Email[:at]
		} else {
			name = "Style Seeker"
		}
	}

	username := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if len(username) > 15 {
		username = username[:15]
	}

	avatar := identity.Avatar
	if avatar == "" {
		avatar = fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(name))
	}

	return &entity.User{
		ID:          identity.UID,
		FirebaseUID: identity.UID,
		Name:        name,
		Username:    "@" + username,
		Avatar:      avatar,
		Email:       identity.Email,
		PhoneNumber: identity.PhoneNumber,
		JoinDate:    time.Now().Format("2006-01-02"),
	}
}

func (uc *AuthUseCase) EndSession(ctx context.Context, userID string) error {
	return uc.sessions.End(ctx, userID)
}

type UpdateProfileInput struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar"`
	PhoneNumber string `json:"phone_number"`
}

// UpdateProfile merges the partial profile into users/{uid}. A data-URL
// avatar is uploaded to storage first and replaced by its public URL.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(input.Avatar, "data:image") {
		uploaded, err := uc.uploader.UploadDataURL(ctx, input.Avatar, "avatars")
		if err != nil {
			return nil, errors.Internal("Failed to upload avatar", err)
		}
		input.Avatar = uploaded
	}

	user := session.User()
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	session.SetUser(user)

	return user, nil
}

func (uc *AuthUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		// Profile reads still work without a live session.
		return uc.userRepo.GetByID(ctx, userID)
	}
	return session.User(), nil
}
