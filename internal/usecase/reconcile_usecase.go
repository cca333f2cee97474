package usecase

import (
	"context"
	"log"
	"time"

	"stylemate/internal/domain/entity"
	"stylemate/internal/domain/repository"
	"stylemate/pkg/logger"
)

// ReconcileUseCase is the repair path for the duplicated-write model: match
// and transaction records are mirrored into two documents without a shared
// transaction, so one side can be missing or behind after a failed write.
// The sweep re-appends missing copies and aligns diverged match statuses by
// lifecycle precedence.
type ReconcileUseCase struct {
	stateRepo repository.StateRepository
	scanLimit int
}

func NewReconcileUseCase(stateRepo repository.StateRepository, scanLimit int) *ReconcileUseCase {
	return &ReconcileUseCase{
		stateRepo: stateRepo,
		scanLimit: scanLimit,
	}
}

// ReconcileUser diffs every match in userID's document against the
// counterparty's copy.
func (uc *ReconcileUseCase) ReconcileUser(ctx context.Context, userID string) error {
	state, err := uc.stateRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	return uc.reconcileState(ctx, userID, state, nil)
}

// ReconcileAll sweeps a bounded sample of state documents.
func (uc *ReconcileUseCase) ReconcileAll(ctx context.Context) error {
	states, err := uc.stateRepo.List(ctx, uc.scanLimit)
	if err != nil {
		return err
	}

	for userID, state := range states {
		if err := uc.reconcileState(ctx, userID, state, states); err != nil {
			logger.Warn("Reconciliation failed for user %s: %v", userID, err)
		}
	}
	return nil
}

func (uc *ReconcileUseCase) reconcileState(ctx context.Context, userID string, state *entity.UserAppState, known map[string]*entity.UserAppState) error {
	for i := range state.Matches {
		mine := state.Matches[i]
		counterparty, ok := mine.Counterparty(userID)
		if !ok {
			continue
		}

		theirs := known[counterparty]
		if theirs == nil {
			loaded, err := uc.stateRepo.Get(ctx, counterparty)
			if err != nil {
				logger.Warn("Reconciliation could not load state for user %s: %v", counterparty, err)
				continue
			}
			theirs = loaded
		}

		theirCopy, ok := theirs.MatchByID(mine.ID)
		if !ok {
			logger.Info("Reconciliation: re-appending match %s to user %s", mine.ID, counterparty)
			if err := uc.stateRepo.AppendMatch(ctx, counterparty, mine); err != nil {
				logger.LogReplicationError(counterparty, "reconcile-append-match", err)
			}
			uc.mirrorTransaction(ctx, userID, counterparty, state, theirs, mine.ID)
			continue
		}

		// Keep the further-progressed status when the copies diverge.
		if theirCopy.Status != mine.Status {
			if theirCopy.Status.StatusRank() > mine.Status.StatusRank() {
				if err := uc.stateRepo.UpdateMatchStatus(ctx, userID, mine.ID, theirCopy.Status); err != nil {
					logger.LogReplicationError(userID, "reconcile-match-status", err)
				}
			} else {
				if err := uc.stateRepo.UpdateMatchStatus(ctx, counterparty, mine.ID, mine.Status); err != nil {
					logger.LogReplicationError(counterparty, "reconcile-match-status", err)
				}
			}
		}

		uc.mirrorTransaction(ctx, userID, counterparty, state, theirs, mine.ID)
	}
	return nil
}

func (uc *ReconcileUseCase) mirrorTransaction(ctx context.Context, userID, counterparty string, mine, theirs *entity.UserAppState, matchID string) {
	myTxn, ok := mine.TransactionByMatch(matchID)
	if !ok {
		return
	}
	if _, ok := theirs.TransactionByMatch(matchID); ok {
		return
	}

	logger.Info("Reconciliation: mirroring transaction %s to user %s", myTxn.ID, counterparty)
	if err := uc.stateRepo.UpsertTransaction(ctx, counterparty, *myTxn); err != nil {
		logger.LogReplicationError(counterparty, "reconcile-transaction", err)
	}
}

// StartReconcileJob runs the sweep periodically in the background.
func (uc *ReconcileUseCase) StartReconcileJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := uc.ReconcileAll(ctx); err != nil {
					log.Printf("Reconcile job error: %v", err)
				}
			case <-ctx.Done():
				ticker.Stop()
				return
			}
		}
	}()

	log.Printf("Reconcile job started (checking every %s)", interval)
}
