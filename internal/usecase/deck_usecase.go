package usecase

import (
	"context"

	"stylemate/internal/domain/entity"
	"stylemate/internal/domain/repository"
)

// DeckUseCase builds the swipeable candidate list from a bounded sample of
// other users' closets. The sample cap bounds cost per build; it is not a
// guarantee of full corpus coverage.
type DeckUseCase struct {
	sessions    *SessionManager
	stateRepo   repository.StateRepository
	sampleLimit int
}

func NewDeckUseCase(sessions *SessionManager, stateRepo repository.StateRepository, sampleLimit int) *DeckUseCase {
	return &DeckUseCase{
		sessions:    sessions,
		stateRepo:   stateRepo,
		sampleLimit: sampleLimit,
	}
}

// DeckView distinguishes "swiped past the last card" from "no items ever
// existed": both render the same upsell but are different states.
type DeckView struct {
	Items     []entity.ClothingItem `json:"items"`
	Cursor    int                   `json:"cursor"`
	Length    int                   `json:"length"`
	Empty     bool                  `json:"empty"`
	Exhausted bool                  `json:"exhausted"`
}

// BuildDeck samples up to sampleLimit user state documents in store order,
// flattens their closets, and filters out the caller's own items and
// anything already in the seen set. Ordering is sample order and is not
// stable across rebuilds.
func (uc *DeckUseCase) BuildDeck(ctx context.Context, userID string) (*DeckView, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	states, err := uc.stateRepo.List(ctx, uc.sampleLimit)
	if err != nil {
		return nil, err
	}

	snapshot := session.Snapshot()
	seen := make(map[string]bool, len(snapshot.SeenItemIDs))
	for _, id := range snapshot.SeenItemIDs {
		seen[id] = true
	}

	var deck []entity.ClothingItem
	for ownerID, state := range states {
		if ownerID == userID {
			continue
		}
		for _, item := range state.Closet {
			if item.UserID == userID || seen[item.ID] {
				continue
			}
			deck = append(deck, item)
		}
	}

	session.setDeck(deck)
	return uc.DeckState(userID)
}

// DeckState reports the current cursor position without rebuilding.
func (uc *DeckUseCase) DeckState(userID string) (*DeckView, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}
	return session.deckView(), nil
}

func (s *Session) setDeck(deck []entity.ClothingItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = deck
	s.cursor = 0
	s.deckBuilt = true
}

func (s *Session) deckView() *DeckView {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entity.ClothingItem, len(s.deck))
	copy(items, s.deck)

	return &DeckView{
		Items:     items,
		Cursor:    s.cursor,
		Length:    len(s.deck),
		Empty:     len(s.deck) == 0,
		Exhausted: len(s.deck) > 0 && s.cursor >= len(s.deck),
	}
}
