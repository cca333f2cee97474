package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"stylemate/internal/domain/entity"
	"stylemate/pkg/errors"
	"stylemate/pkg/logger"
)

type ClosetUseCase struct {
	sessions *SessionManager
	uploader ImageUploader
}

func NewClosetUseCase(sessions *SessionManager, uploader ImageUploader) *ClosetUseCase {
	return &ClosetUseCase{
		sessions: sessions,
		uploader: uploader,
	}
}

type ItemInput struct {
	ImageURLs      []string `json:"image_urls" validate:"required,min=1"`
	Category       string   `json:"category" validate:"required"`
	Color          string   `json:"color" validate:"required"`
	StyleTags      []string `json:"style_tags"`
	Description    string   `json:"description"`
	EstimatedPrice int      `json:"estimated_price" validate:"min=0"`
}

// AddItem creates a closet item owned by userID, denormalizing the owner's
// name and avatar for display. Data-URL images are uploaded first.
func (uc *ClosetUseCase) AddItem(ctx context.Context, userID string, input ItemInput) (*entity.ClothingItem, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	imageURLs, err := uc.resolveImages(ctx, input.ImageURLs)
	if err != nil {
		return nil, err
	}

	user := session.User()
	item := entity.ClothingItem{
		ID:             uuid.New().String(),
		UserID:         userID,
		UserName:       user.Name,
		UserAvatar:     user.Avatar,
		ImageURLs:      imageURLs,
		Category:       input.Category,
		Color:          input.Color,
		StyleTags:      input.StyleTags,
		Description:    input.Description,
		EstimatedPrice: input.EstimatedPrice,
	}

	session.mutate(func(state *entity.UserAppState) {
		state.AddClosetItem(item)
	})

	return &item, nil
}

// UpdateItem edits an owned item. The owning user id is always threaded in;
// ownership is never resolved by scanning other users' documents.
func (uc *ClosetUseCase) UpdateItem(ctx context.Context, userID, itemID string, input ItemInput) (*entity.ClothingItem, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	imageURLs, err := uc.resolveImages(ctx, input.ImageURLs)
	if err != nil {
		return nil, err
	}

	var updated entity.ClothingItem
	err = session.mutateErr(func(state *entity.UserAppState) error {
		item, ok := state.ClosetItem(itemID)
		if !ok {
			return errors.NotFound("Clothing item", nil)
		}
		item.ImageURLs = imageURLs
		item.Category = input.Category
		item.Color = input.Color
		item.StyleTags = input.StyleTags
		item.Description = input.Description
		item.EstimatedPrice = input.EstimatedPrice
		updated = *item

		// Refresh snapshots embedded in this user's own match copies. The
		// counterparty's copies go stale until the reconciliation sweep.
		state.RefreshMatchItem(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteItem removes the item from the owner's closet and deletes its stored
// images best effort.
func (uc *ClosetUseCase) DeleteItem(ctx context.Context, userID, itemID string) error {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return err
	}

	var removed entity.ClothingItem
	err = session.mutateErr(func(state *entity.UserAppState) error {
		item, ok := state.RemoveClosetItem(itemID)
		if !ok {
			return errors.NotFound("Clothing item", nil)
		}
		removed = item
		return nil
	})
	if err != nil {
		return err
	}

	for _, imageURL := range removed.ImageURLs {
		if err := uc.uploader.DeleteFile(ctx, imageURL); err != nil {
			logger.Warn("Failed to delete image %s for item %s: %v", imageURL, itemID, err)
		}
	}

	return nil
}

func (uc *ClosetUseCase) ListCloset(userID string) ([]entity.ClothingItem, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}
	return session.Snapshot().Closet, nil
}

func (uc *ClosetUseCase) resolveImages(ctx context.Context, images []string) ([]string, error) {
	resolved := make([]string, 0, len(images))
	for _, img := range images {
		if strings.HasPrefix(img, "data:image") {
			uploaded, err := uc.uploader.UploadDataURL(ctx, img, "items")
			if err != nil {
				return nil, errors.Internal("Failed to upload item image", err)
			}
			resolved = append(resolved, uploaded)
			continue
		}
		resolved = append(resolved, img)
	}
	return resolved, nil
}
