package repository

import (
	"context"

	"stylemate/internal/domain/entity"
)

// StateRepository reads and writes userAppStates/{uid} documents.
//
// Save is the whole-snapshot path used by the debounced sync driver and only
// ever targets the caller's own document. The per-collection operations below
// are the cross-user mirror path: they bypass the debounce and touch exactly
// one embedded collection of the target document, so a decision-time write
// into a counterparty's state never clobbers unrelated fields.
type StateRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserAppState, error)
	Save(ctx context.Context, userID string, state *entity.UserAppState) error

	// List returns up to limit state documents paired with their owner IDs,
	// in arbitrary store order. Serves the deck builder's bounded sample.
	List(ctx context.Context, limit int) (map[string]*entity.UserAppState, error)

	AppendSeenItem(ctx context.Context, userID, itemID string) error
	AppendRequest(ctx context.Context, userID string, req entity.Request) error
	RemoveRequest(ctx context.Context, userID, requestID string) error
	AppendMatch(ctx context.Context, userID string, match entity.Match) error
	UpdateMatchStatus(ctx context.Context, userID, matchID string, status entity.MatchStatus) error
	SetLikedItemStatus(ctx context.Context, userID, itemID string, status entity.LikedItemStatus) error
	RemoveLikedItemByItem(ctx context.Context, userID, itemID string) error
	UpsertTransaction(ctx context.Context, userID string, txn entity.Transaction) error
}
