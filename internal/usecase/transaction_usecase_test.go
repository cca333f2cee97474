package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"stylemate/internal/domain/entity"
	"stylemate/pkg/errors"
)

func newTransactionFixture(t *testing.T) (*matchFixture, *TransactionUseCase, *entity.Match) {
	f := newMatchFixture(t)
	txnUC := NewTransactionUseCase(f.sm, f.repo)

	proposal, err := f.requestUC.ProposeSwap("user-b", f.requestID, "item-a1")
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	match, err := f.requestUC.ConfirmProposal(context.Background(), "user-b", proposal)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	return f, txnUC, match
}

func TestSubmitDetailsOpensTransaction(t *testing.T) {
	f, txnUC, match := newTransactionFixture(t)

	txn, err := txnUC.SubmitDetails(context.Background(), "user-b", match.ID, entity.TransactionPartyDetails{
		PhoneNumber:    "0912345678",
		PickupMethod:   entity.PickupSevenEleven,
		PickupLocation: "台北南港門市",
	})
	assert.NoError(t, err)
	assert.Equal(t, entity.TransactionOngoing, txn.Status)
	assert.Equal(t, match.ID, txn.MatchID)
	assert.Equal(t, "0912345678", txn.Parties["user-b"].PhoneNumber)

	// The linked match moves to in-transaction in both copies.
	got, _ := f.matchUC.GetMatch("user-b", match.ID)
	assert.Equal(t, entity.MatchInTransaction, got.Status)
	mirrored, _ := f.repo.stored("user-a").MatchByID(match.ID)
	assert.Equal(t, entity.MatchInTransaction, mirrored.Status)

	// The transaction record itself is mirrored too.
	_, ok := f.repo.stored("user-a").TransactionByMatch(match.ID)
	assert.True(t, ok)
}

func TestSubmitDetailsValidation(t *testing.T) {
	_, txnUC, match := newTransactionFixture(t)

	cases := []entity.TransactionPartyDetails{
		{PickupMethod: entity.PickupSevenEleven, PickupLocation: "x"},
		{PhoneNumber: "0912345678", PickupMethod: "bike courier", PickupLocation: "x"},
		{PhoneNumber: "0912345678", PickupMethod: entity.PickupInPerson},
	}
	for _, details := range cases {
		_, err := txnUC.SubmitDetails(context.Background(), "user-b", match.ID, details)
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	}
}

func TestSubmitDetailsSecondPartyNeverClobbers(t *testing.T) {
	f, txnUC, match := newTransactionFixture(t)

	first, err := txnUC.SubmitDetails(context.Background(), "user-b", match.ID, entity.TransactionPartyDetails{
		PhoneNumber:    "0912345678",
		PickupMethod:   entity.PickupSevenEleven,
		PickupLocation: "台北南港門市",
	})
	assert.NoError(t, err)

	// Alice logs in, pulling the mirrored record, and submits her side.
	startSession(t, f.sm, "user-a", "Alice")
	second, err := txnUC.SubmitDetails(context.Background(), "user-a", match.ID, entity.TransactionPartyDetails{
		PhoneNumber:    "0987654321",
		PickupMethod:   entity.PickupInPerson,
		PickupLocation: "信義區",
	})
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "0912345678", second.Parties["user-b"].PhoneNumber)
	assert.Equal(t, "0987654321", second.Parties["user-a"].PhoneNumber)

	// Bella's mirrored copy carries both entries as well.
	mirrored, ok := f.repo.stored("user-b").TransactionByMatch(match.ID)
	assert.True(t, ok)
	assert.Len(t, mirrored.Parties, 2)
}

func TestSubmitDetailsRequiresOpenMatch(t *testing.T) {
	f, txnUC, match := newTransactionFixture(t)

	assert.NoError(t, f.matchUC.CancelMatch(context.Background(), "user-b", match.ID))

	_, err := txnUC.SubmitDetails(context.Background(), "user-b", match.ID, entity.TransactionPartyDetails{
		PhoneNumber:    "0912345678",
		PickupMethod:   entity.PickupSevenEleven,
		PickupLocation: "台北南港門市",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCompleteIsIdempotent(t *testing.T) {
	f, txnUC, match := newTransactionFixture(t)

	txn, err := txnUC.SubmitDetails(context.Background(), "user-b", match.ID, entity.TransactionPartyDetails{
		PhoneNumber:    "0912345678",
		PickupMethod:   entity.PickupSevenEleven,
		PickupLocation: "台北南港門市",
	})
	assert.NoError(t, err)

	done, err := txnUC.Complete(context.Background(), "user-b", txn.ID)
	assert.NoError(t, err)
	assert.Equal(t, entity.TransactionCompleted, done.Status)

	got, _ := f.matchUC.GetMatch("user-b", match.ID)
	assert.Equal(t, entity.MatchCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
	firstStamp := *got.CompletedAt

	// Repeat call: same observable state, no re-stamp.
	again, err := txnUC.Complete(context.Background(), "user-b", txn.ID)
	assert.NoError(t, err)
	assert.Equal(t, entity.TransactionCompleted, again.Status)

	got, _ = f.matchUC.GetMatch("user-b", match.ID)
	assert.Equal(t, firstStamp, *got.CompletedAt)
}

func TestCancelRevertsMatchToActive(t *testing.T) {
	f, txnUC, match := newTransactionFixture(t)

	txn, err := txnUC.SubmitDetails(context.Background(), "user-b", match.ID, entity.TransactionPartyDetails{
		PhoneNumber:    "0912345678",
		PickupMethod:   entity.PickupFamilyMart,
		PickupLocation: "中山店",
	})
	assert.NoError(t, err)

	cancelled, err := txnUC.Cancel(context.Background(), "user-b", txn.ID)
	assert.NoError(t, err)
	assert.Equal(t, entity.TransactionCancelled, cancelled.Status)

	// Handoff negotiation can restart.
	got, _ := f.matchUC.GetMatch("user-b", match.ID)
	assert.Equal(t, entity.MatchActive, got.Status)

	mirrored, _ := f.repo.stored("user-a").MatchByID(match.ID)
	assert.Equal(t, entity.MatchActive, mirrored.Status)
}

func TestListTransactionsFilter(t *testing.T) {
	_, txnUC, match := newTransactionFixture(t)

	txn, err := txnUC.SubmitDetails(context.Background(), "user-b", match.ID, entity.TransactionPartyDetails{
		PhoneNumber:    "0912345678",
		PickupMethod:   entity.PickupHomeDelivery,
		PickupLocation: "台北市",
	})
	assert.NoError(t, err)

	ongoing, err := txnUC.ListTransactions("user-b", entity.TransactionOngoing)
	assert.NoError(t, err)
	assert.Len(t, ongoing, 1)

	_, err = txnUC.Complete(context.Background(), "user-b", txn.ID)
	assert.NoError(t, err)

	ongoing, _ = txnUC.ListTransactions("user-b", entity.TransactionOngoing)
	assert.Empty(t, ongoing)
	completed, _ := txnUC.ListTransactions("user-b", entity.TransactionCompleted)
	assert.Len(t, completed, 1)
}

func TestFinishUnknownTransaction(t *testing.T) {
	_, txnUC, _ := newTransactionFixture(t)

	_, err := txnUC.Complete(context.Background(), "user-b", "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
