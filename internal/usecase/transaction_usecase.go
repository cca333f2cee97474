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

// TransactionUseCase tracks handoff logistics per match. Each party writes
// only its own key in the parties map, so concurrently-submitted details
// never clobber each other. Match status changes are propagated to the
// counterparty's document by a second explicit write using the participant
// ids carried on the match; there is no server-side fan-out.
type TransactionUseCase struct {
	sessions  *SessionManager
	stateRepo repository.StateRepository
}

func NewTransactionUseCase(sessions *SessionManager, stateRepo repository.StateRepository) *TransactionUseCase {
	return &TransactionUseCase{
		sessions:  sessions,
		stateRepo: stateRepo,
	}
}

func (uc *TransactionUseCase) ListTransactions(userID string, status entity.TransactionStatus) ([]entity.Transaction, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	transactions := session.Snapshot().Transactions
	if status == "" {
		return transactions, nil
	}

	filtered := make([]entity.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func validateDetails(details entity.TransactionPartyDetails) error {
	if details.PhoneNumber == "" {
		return errors.Validation("phone_number is required", nil)
	}
	if !entity.ValidPickupMethod(details.PickupMethod) {
		return errors.Validation("pickup_method must be one of: 7-11, FamilyMart, OK Mart, Home Delivery, 面交", nil)
	}
	if details.PickupLocation == "" {
		return errors.Validation("pickup_location is required", nil)
	}
	return nil
}

// SubmitDetails is the implicit initiator: the first submission for a match
// creates the transaction, later submissions merge the caller's own party
// entry. The linked match moves to in-transaction in both copies.
func (uc *TransactionUseCase) SubmitDetails(ctx context.Context, userID, matchID string, details entity.TransactionPartyDetails) (*entity.Transaction, error) {
	if err := validateDetails(details); err != nil {
		return nil, err
	}

	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	var txn entity.Transaction
	var counterparty string
	err = session.mutateErr(func(state *entity.UserAppState) error {
		match, ok := state.MatchByID(matchID)
		if !ok {
			return errors.NotFound("Match", nil)
		}
		if !match.Involves(userID) {
			return errors.Forbidden("Not a participant of this match", nil)
		}
		if match.Status != entity.MatchActive && match.Status != entity.MatchInTransaction {
			return errors.BadRequest("Match is not open for a transaction", nil)
		}
		counterparty, _ = match.Counterparty(userID)

		updated := state.UpsertTransactionParty(uuid.New().String(), matchID, userID, details)
		txn = *updated
		txn.Parties = clonedParties(updated.Parties)

		state.SetMatchStatus(matchID, entity.MatchInTransaction, time.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Mirror the record and the match transition to the counterparty.
	if err := uc.stateRepo.UpsertTransaction(ctx, counterparty, txn); err != nil {
		logger.LogReplicationError(counterparty, "upsert-transaction", err)
	}
	if err := uc.stateRepo.UpdateMatchStatus(ctx, counterparty, matchID, entity.MatchInTransaction); err != nil {
		logger.LogReplicationError(counterparty, "match-in-transaction", err)
	}

	return &txn, nil
}

// Complete is idempotent in observable effect: a repeat call leaves the
// status completed and does not re-stamp the match's completedAt.
func (uc *TransactionUseCase) Complete(ctx context.Context, userID, transactionID string) (*entity.Transaction, error) {
	return uc.finish(ctx, userID, transactionID, entity.TransactionCompleted, entity.MatchCompleted)
}

// Cancel reverts the linked match to active so handoff negotiation can
// restart.
func (uc *TransactionUseCase) Cancel(ctx context.Context, userID, transactionID string) (*entity.Transaction, error) {
	return uc.finish(ctx, userID, transactionID, entity.TransactionCancelled, entity.MatchActive)
}

func (uc *TransactionUseCase) finish(ctx context.Context, userID, transactionID string, txnStatus entity.TransactionStatus, matchStatus entity.MatchStatus) (*entity.Transaction, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	var txn entity.Transaction
	var counterparty string
	alreadyDone := false
	err = session.mutateErr(func(state *entity.UserAppState) error {
		current, ok := state.TransactionByID(transactionID)
		if !ok {
			return errors.NotFound("Transaction", nil)
		}
		match, ok := state.MatchByID(current.MatchID)
		if !ok {
			return errors.NotFound("Match", nil)
		}
		if !match.Involves(userID) {
			return errors.Forbidden("Not a participant of this transaction", nil)
		}
		counterparty, _ = match.Counterparty(userID)

		if current.Status == txnStatus {
			alreadyDone = true
			txn = *current
			txn.Parties = clonedParties(current.Parties)
			return nil
		}

		state.SetTransactionStatus(transactionID, txnStatus)
		state.SetMatchStatus(current.MatchID, matchStatus, time.Now())
		txn = *current
		txn.Parties = clonedParties(current.Parties)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if alreadyDone {
		return &txn, nil
	}

	if err := uc.stateRepo.UpsertTransaction(ctx, counterparty, txn); err != nil {
		logger.LogReplicationError(counterparty, "upsert-transaction", err)
	}
	if err := uc.stateRepo.UpdateMatchStatus(ctx, counterparty, txn.MatchID, matchStatus); err != nil {
		logger.LogReplicationError(counterparty, "match-status", err)
	}

	return &txn, nil
}

func clonedParties(parties map[string]entity.TransactionPartyDetails) map[string]entity.TransactionPartyDetails {
	cloned := make(map[string]entity.TransactionPartyDetails, len(parties))
	for k, v := range parties {
		cloned[k] = v
	}
	return cloned
}
