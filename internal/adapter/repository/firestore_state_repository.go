package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"stylemate/internal/domain/entity"
	"stylemate/internal/domain/repository"
	"stylemate/pkg/errors"
)

const stateCollection = "userAppStates"

type firestoreStateRepository struct {
	client *firestore.Client
}

func NewFirestoreStateRepository(client *firestore.Client) repository.StateRepository {
	return &firestoreStateRepository{
		client: client,
	}
}

func (r *firestoreStateRepository) doc(userID string) *firestore.DocumentRef {
	return r.client.Collection(stateCollection).Doc(userID)
}

func (r *firestoreStateRepository) Get(ctx context.Context, userID string) (*entity.UserAppState, error) {
	doc, err := r.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User state", err)
		}
		return nil, errors.Internal("Failed to get user state", err)
	}

	var state entity.UserAppState
	if err := doc.DataTo(&state); err != nil {
		return nil, errors.Internal("Failed to parse user state", err)
	}
	normalize(&state)

	return &state, nil
}

// normalize replaces nil collections with empty ones so callers never branch
// on missing fields of a sparse document.
func normalize(state *entity.UserAppState) {
	if state.Closet == nil {
		state.Closet = []entity.ClothingItem{}
	}
	if state.Matches == nil {
		state.Matches = []entity.Match{}
	}
	if state.LikedItems == nil {
		state.LikedItems = []entity.LikedItem{}
	}
	if state.Requests == nil {
		state.Requests = []entity.Request{}
	}
	if state.Transactions == nil {
		state.Transactions = []entity.Transaction{}
	}
	if state.SeenItemIDs == nil {
		state.SeenItemIDs = []string{}
	}
}

func (r *firestoreStateRepository) Save(ctx context.Context, userID string, state *entity.UserAppState) error {
	payload := map[string]interface{}{
		"myCloset":     state.Closet,
		"matches":      state.Matches,
		"likedItems":   state.LikedItems,
		"requests":     state.Requests,
		"transactions": state.Transactions,
		"seenItemIds":  state.SeenItemIDs,
		"updatedAt":    firestore.ServerTimestamp,
	}

	// Merge write: creates the document on first save, preserves any field
	// not in the payload.
	_, err := r.doc(userID).Set(ctx, payload, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to save user state", err)
	}
	return nil
}

func (r *firestoreStateRepository) List(ctx context.Context, limit int) (map[string]*entity.UserAppState, error) {
	query := r.client.Collection(stateCollection).Query
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	states := make(map[string]*entity.UserAppState)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate user states", err)
		}

		var state entity.UserAppState
		if err := doc.DataTo(&state); err != nil {
			continue // Skip malformed documents
		}
		normalize(&state)
		states[doc.Ref.ID] = &state
	}

	return states, nil
}

func (r *firestoreStateRepository) AppendSeenItem(ctx context.Context, userID, itemID string) error {
	_, err := r.doc(userID).Set(ctx, map[string]interface{}{
		"seenItemIds": firestore.ArrayUnion(itemID),
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to append seen item", err)
	}
	return nil
}

func (r *firestoreStateRepository) AppendRequest(ctx context.Context, userID string, req entity.Request) error {
	_, err := r.doc(userID).Set(ctx, map[string]interface{}{
		"requests": firestore.ArrayUnion(req),
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to append request", err)
	}
	return nil
}

func (r *firestoreStateRepository) RemoveRequest(ctx context.Context, userID, requestID string) error {
	state, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !state.RemoveRequest(requestID) {
		return errors.NotFound("Request", nil)
	}

	_, err = r.doc(userID).Set(ctx, map[string]interface{}{
		"requests": state.Requests,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to remove request", err)
	}
	return nil
}

func (r *firestoreStateRepository) AppendMatch(ctx context.Context, userID string, match entity.Match) error {
	_, err := r.doc(userID).Set(ctx, map[string]interface{}{
		"matches": firestore.ArrayUnion(match),
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to append match", err)
	}
	return nil
}

func (r *firestoreStateRepository) UpdateMatchStatus(ctx context.Context, userID, matchID string, matchStatus entity.MatchStatus) error {
	state, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !state.SetMatchStatus(matchID, matchStatus, time.Now()) {
		return errors.NotFound("Match", nil)
	}

	_, err = r.doc(userID).Set(ctx, map[string]interface{}{
		"matches": state.Matches,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update match status", err)
	}
	return nil
}

func (r *firestoreStateRepository) SetLikedItemStatus(ctx context.Context, userID, itemID string, likedStatus entity.LikedItemStatus) error {
	state, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !state.SetLikedStatusByItem(itemID, likedStatus) {
		return errors.NotFound("Liked item", nil)
	}

	_, err = r.doc(userID).Set(ctx, map[string]interface{}{
		"likedItems": state.LikedItems,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update liked item status", err)
	}
	return nil
}

func (r *firestoreStateRepository) RemoveLikedItemByItem(ctx context.Context, userID, itemID string) error {
	state, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !state.RemoveLikedItemByItem(itemID) {
		return errors.NotFound("Liked item", nil)
	}

	_, err = r.doc(userID).Set(ctx, map[string]interface{}{
		"likedItems": state.LikedItems,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to remove liked item", err)
	}
	return nil
}

func (r *firestoreStateRepository) UpsertTransaction(ctx context.Context, userID string, txn entity.Transaction) error {
	state, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	state.UpsertTransaction(txn)

	_, err = r.doc(userID).Set(ctx, map[string]interface{}{
		"transactions": state.Transactions,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to upsert transaction", err)
	}
	return nil
}
