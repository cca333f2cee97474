package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stylemate/internal/domain/entity"
	"stylemate/internal/domain/repository"
	"stylemate/pkg/errors"
	"stylemate/pkg/logger"
)

// RequestUseCase resolves inbound interest requests: pairing a counter-item
// into a proposal, confirming it into a bidirectional match, or rejecting.
type RequestUseCase struct {
	sessions  *SessionManager
	stateRepo repository.StateRepository
}

func NewRequestUseCase(sessions *SessionManager, stateRepo repository.StateRepository) *RequestUseCase {
	return &RequestUseCase{
		sessions:  sessions,
		stateRepo: stateRepo,
	}
}

// SwapProposal pairs the recipient's liked item with the requester's chosen
// closet item. Nothing is persisted until confirmation.
type SwapProposal struct {
	RecipientID   string              `json:"recipient_id"`
	RequestID     string              `json:"request_id"`
	RequesterID   string              `json:"requester_id"`
	RecipientItem entity.ClothingItem `json:"recipient_item"`
	RequesterItem entity.ClothingItem `json:"requester_item"`
}

func (uc *RequestUseCase) ListRequests(userID string) ([]entity.Request, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}
	return session.Snapshot().Requests, nil
}

// ProposeSwap pairs the request's item of interest with one of the
// requester's closet items.
func (uc *RequestUseCase) ProposeSwap(userID, requestID, requesterItemID string) (*SwapProposal, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	var proposal *SwapProposal
	var propErr error
	session.read(func(state *entity.UserAppState) {
		request, ok := state.RequestByID(requestID)
		if !ok {
			propErr = errors.NotFound("Request", nil)
			return
		}

		var requesterItem *entity.ClothingItem
		for i := range request.Requester.Closet {
			if request.Requester.Closet[i].ID == requesterItemID {
				requesterItem = &request.Requester.Closet[i]
				break
			}
		}
		if requesterItem == nil {
			propErr = errors.NotFound("Requester item", nil)
			return
		}

		proposal = &SwapProposal{
			RecipientID:   userID,
			RequestID:     requestID,
			RequesterID:   request.Requester.ID,
			RecipientItem: request.ItemOfInterest,
			RequesterItem: *requesterItem,
		}
	})
	if propErr != nil {
		return nil, propErr
	}

	return proposal, nil
}

// ConfirmProposal creates the match in both participants' documents, removes
// the originating request, and clears the requester's pending like. Fails
// with NOT_FOUND when the request was resolved concurrently; callers treat
// that as stale and refresh.
func (uc *RequestUseCase) ConfirmProposal(ctx context.Context, userID string, proposal *SwapProposal) (*entity.Match, error) {
	if proposal.RecipientID != userID {
		return nil, errors.Forbidden("Proposal belongs to another user", nil)
	}

	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	match := entity.Match{
		ID:           uuid.New().String(),
		User1:        entity.MatchSide{UserID: userID, ClothingItem: proposal.RecipientItem},
		User2:        entity.MatchSide{UserID: proposal.RequesterID, ClothingItem: proposal.RequesterItem},
		Participants: []string{userID, proposal.RequesterID},
		Status:       entity.MatchActive,
		MatchedAt:    time.Now(),
	}

	err = session.mutateErr(func(state *entity.UserAppState) error {
		if !state.RemoveRequest(proposal.RequestID) {
			return errors.NotFound("Request", nil)
		}
		state.AddMatch(match)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Counterparty side: append their match copy and resolve their pending
	// like. Independent best-effort writes, no rollback; the reconciliation
	// sweep repairs a missing copy.
	if err := uc.stateRepo.AppendMatch(ctx, proposal.RequesterID, match); err != nil {
		logger.LogReplicationError(proposal.RequesterID, "append-match", err)
		return &match, errors.PartialReplication("Match was not delivered to the counterparty", err)
	}
	if err := uc.stateRepo.RemoveLikedItemByItem(ctx, proposal.RequesterID, proposal.RecipientItem.ID); err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			logger.LogReplicationError(proposal.RequesterID, "clear-liked-item", err)
		}
	}

	return &match, nil
}

// RejectRequest deletes the request from the recipient's queue and
// transitions the requester's dangling like to rejected so it does not stay
// pending forever.
func (uc *RequestUseCase) RejectRequest(ctx context.Context, userID, requestID string) error {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return err
	}

	var rejected entity.Request
	err = session.mutateErr(func(state *entity.UserAppState) error {
		request, ok := state.RequestByID(requestID)
		if !ok {
			return errors.NotFound("Request", nil)
		}
		rejected = *request
		state.RemoveRequest(requestID)
		return nil
	})
	if err != nil {
		return err
	}

	if err := uc.stateRepo.SetLikedItemStatus(ctx, rejected.Requester.ID, rejected.ItemOfInterest.ID, entity.LikedRejected); err != nil {
		// The requester may have removed the like already; stale, ignore.
		if !errors.Is(err, "NOT_FOUND") {
			logger.LogReplicationError(rejected.Requester.ID, "reject-liked-item", err)
		}
	}

	return nil
}
