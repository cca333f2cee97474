package usecase

import (
	"context"
	"time"

	"stylemate/internal/domain/entity"
	"stylemate/internal/domain/repository"
	"stylemate/pkg/errors"
	"stylemate/pkg/logger"
)

type MatchUseCase struct {
	sessions  *SessionManager
	stateRepo repository.StateRepository
}

func NewMatchUseCase(sessions *SessionManager, stateRepo repository.StateRepository) *MatchUseCase {
	return &MatchUseCase{
		sessions:  sessions,
		stateRepo: stateRepo,
	}
}

// ListMatches returns the caller's match copies, optionally filtered by
// status.
func (uc *MatchUseCase) ListMatches(userID string, status entity.MatchStatus) ([]entity.Match, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	matches := session.Snapshot().Matches
	if status == "" {
		return matches, nil
	}

	filtered := make([]entity.Match, 0, len(matches))
	for _, m := range matches {
		if m.Status == status {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

func (uc *MatchUseCase) GetMatch(userID, matchID string) (*entity.Match, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	var match *entity.Match
	session.read(func(state *entity.UserAppState) {
		if m, ok := state.MatchByID(matchID); ok {
			copied := *m
			match = &copied
		}
	})
	if match == nil {
		return nil, errors.NotFound("Match", nil)
	}
	return match, nil
}

// CancelMatch transitions both copies to cancelled. Matches are never hard
// deleted.
func (uc *MatchUseCase) CancelMatch(ctx context.Context, userID, matchID string) error {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return err
	}

	var counterparty string
	err = session.mutateErr(func(state *entity.UserAppState) error {
		match, ok := state.MatchByID(matchID)
		if !ok {
			return errors.NotFound("Match", nil)
		}
		if !match.Involves(userID) {
			return errors.Forbidden("Not a participant of this match", nil)
		}
		if match.Status == entity.MatchCompleted {
			return errors.BadRequest("Completed matches cannot be cancelled", nil)
		}
		counterparty, _ = match.Counterparty(userID)
		state.SetMatchStatus(matchID, entity.MatchCancelled, time.Now())
		return nil
	})
	if err != nil {
		return err
	}

	if err := uc.stateRepo.UpdateMatchStatus(ctx, counterparty, matchID, entity.MatchCancelled); err != nil {
		logger.LogReplicationError(counterparty, "cancel-match", err)
		return errors.PartialReplication("Match cancellation was not delivered to the counterparty", err)
	}

	return nil
}
