package handler

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/domain/entity"
	"stylemate/internal/usecase"
	"stylemate/pkg/errors"
	"stylemate/pkg/response"
)

type TransactionHandler struct {
	transactionUseCase *usecase.TransactionUseCase
}

func NewTransactionHandler(transactionUseCase *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
	}
}

func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	uid := c.Get("uid").(string)

	status := entity.TransactionStatus(c.QueryParam("status"))

	transactions, err := h.transactionUseCase.ListTransactions(uid, status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, transactions)
}

type submitDetailsRequest struct {
	PhoneNumber    string `json:"phone_number" validate:"required"`
	PickupMethod   string `json:"pickup_method" validate:"required"`
	PickupLocation string `json:"pickup_location" validate:"required"`
}

// SubmitDetails records the caller's logistics for a match. The first
// submission opens the transaction; the second side's entry never
// overwrites the first.
func (h *TransactionHandler) SubmitDetails(c echo.Context) error {
	matchID := c.Param("matchId")
	if matchID == "" {
		return response.Error(c, errors.BadRequest("Match ID is required", nil))
	}

	var req submitDetailsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	txn, err := h.transactionUseCase.SubmitDetails(c.Request().Context(), uid, matchID, entity.TransactionPartyDetails{
		PhoneNumber:    req.PhoneNumber,
		PickupMethod:   entity.PickupMethod(req.PickupMethod),
		PickupLocation: req.PickupLocation,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, txn)
}

func (h *TransactionHandler) Complete(c echo.Context) error {
	transactionID := c.Param("transactionId")
	if transactionID == "" {
		return response.Error(c, errors.BadRequest("Transaction ID is required", nil))
	}

	uid := c.Get("uid").(string)

	txn, err := h.transactionUseCase.Complete(c.Request().Context(), uid, transactionID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, txn)
}

func (h *TransactionHandler) Cancel(c echo.Context) error {
	transactionID := c.Param("transactionId")
	if transactionID == "" {
		return response.Error(c, errors.BadRequest("Transaction ID is required", nil))
	}

	uid := c.Get("uid").(string)

	txn, err := h.transactionUseCase.Cancel(c.Request().Context(), uid, transactionID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, txn)
}
