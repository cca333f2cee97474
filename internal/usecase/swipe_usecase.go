package usecase

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"stylemate/internal/domain/entity"
	"stylemate/internal/domain/repository"
	"stylemate/pkg/errors"
	"stylemate/pkg/logger"
)

type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
)

// SwipeUseCase consumes swipe decisions. Every swipe grows the seen set and
// advances the cursor; a right swipe additionally records a pending like and
// mirror-writes a request into the item owner's document at decision time,
// bypassing the debounced save.
type SwipeUseCase struct {
	sessions  *SessionManager
	stateRepo repository.StateRepository
}

func NewSwipeUseCase(sessions *SessionManager, stateRepo repository.StateRepository) *SwipeUseCase {
	return &SwipeUseCase{
		sessions:  sessions,
		stateRepo: stateRepo,
	}
}

type SwipeResult struct {
	Direction SwipeDirection      `json:"direction"`
	Item      entity.ClothingItem `json:"item"`
	Liked     *entity.LikedItem   `json:"liked,omitempty"`
	Cursor    int                 `json:"cursor"`
	Length    int                 `json:"length"`
	Exhausted bool                `json:"exhausted"`
}

func (uc *SwipeUseCase) Swipe(ctx context.Context, userID string, direction SwipeDirection) (*SwipeResult, error) {
	if direction != SwipeLeft && direction != SwipeRight {
		return nil, errors.Validation("direction must be left or right", nil)
	}

	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if !session.deckBuilt {
		session.mu.Unlock()
		return nil, errors.BadRequest("Deck has not been built", nil)
	}
	if len(session.deck) == 0 {
		session.mu.Unlock()
		return nil, errors.New("DECK_EMPTY", "No items to swipe", http.StatusConflict, nil)
	}
	if session.cursor >= len(session.deck) {
		session.mu.Unlock()
		return nil, errors.New("DECK_EXHAUSTED", "No more cards in deck", http.StatusConflict, nil)
	}

	card := session.deck[session.cursor]
	session.cursor++

	session.state.MarkSeen(card.ID)

	result := &SwipeResult{
		Direction: direction,
		Item:      card,
		Cursor:    session.cursor,
		Length:    len(session.deck),
		Exhausted: session.cursor >= len(session.deck),
	}

	var request entity.Request
	if direction == SwipeRight {
		like := entity.LikedItem{
			ID:     uuid.New().String(),
			Item:   card,
			Status: entity.LikedPending,
			UserID: userID,
		}
		session.state.AddLikedItem(like)
		result.Liked = &like

		closet := make([]entity.ClothingItem, len(session.state.Closet))
		copy(closet, session.state.Closet)
		request = entity.Request{
			ID: uuid.New().String(),
			Requester: entity.Requester{
				ID:     userID,
				Name:   session.user.Name,
				Avatar: session.user.Avatar,
				Closet: closet,
			},
			ItemOfInterest: card,
		}
	}
	session.mu.Unlock()
	session.saver.Trigger()

	// Immediate seen-set mirror: set semantics make this idempotent, and it
	// keeps a crash from reshowing already-swiped cards before the debounce
	// fires.
	if err := uc.stateRepo.AppendSeenItem(ctx, userID, card.ID); err != nil {
		logger.Warn("Failed to mirror seen item %s for user %s: %v", card.ID, userID, err)
	}

	if direction == SwipeRight {
		// Decision-time write into the owner's inbound queue. A failure here
		// leaves the local like without its mirrored request.
		if err := uc.stateRepo.AppendRequest(ctx, card.UserID, request); err != nil {
			logger.LogReplicationError(card.UserID, "append-request", err)
		}
	}

	return result, nil
}

func (uc *SwipeUseCase) ListLikedItems(userID string) ([]entity.LikedItem, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}
	return session.Snapshot().LikedItems, nil
}

// RemoveLikedItem deletes an owned like once it is no longer pending.
func (uc *SwipeUseCase) RemoveLikedItem(userID, likedItemID string) error {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return err
	}

	return session.mutateErr(func(state *entity.UserAppState) error {
		like, ok := state.LikedItemByID(likedItemID)
		if !ok {
			return errors.NotFound("Liked item", nil)
		}
		if like.Status == entity.LikedPending {
			return errors.BadRequest("Cannot remove a pending like", nil)
		}
		state.RemoveLikedItem(likedItemID)
		return nil
	})
}
