package handler

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/usecase"
	"stylemate/pkg/errors"
	"stylemate/pkg/response"
)

type RequestHandler struct {
	requestUseCase *usecase.RequestUseCase
}

func NewRequestHandler(requestUseCase *usecase.RequestUseCase) *RequestHandler {
	return &RequestHandler{
		requestUseCase: requestUseCase,
	}
}

func (h *RequestHandler) ListRequests(c echo.Context) error {
	uid := c.Get("uid").(string)

	requests, err := h.requestUseCase.ListRequests(uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, requests)
}

type proposalRequest struct {
	RequesterItemID string `json:"requester_item_id" validate:"required"`
}

// ProposeSwap previews a swap pairing without committing anything. The
// client shows the two items side by side before the recipient confirms.
func (h *RequestHandler) ProposeSwap(c echo.Context) error {
	requestID := c.Param("requestId")
	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	var req proposalRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	proposal, err := h.requestUseCase.ProposeSwap(uid, requestID, req.RequesterItemID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, proposal)
}

// ConfirmSwap commits the pairing: the request is consumed and a match is
// written to both participants.
func (h *RequestHandler) ConfirmSwap(c echo.Context) error {
	requestID := c.Param("requestId")
	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	var req proposalRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	proposal, err := h.requestUseCase.ProposeSwap(uid, requestID, req.RequesterItemID)
	if err != nil {
		return response.Error(c, err)
	}

	match, err := h.requestUseCase.ConfirmProposal(c.Request().Context(), uid, proposal)
	if err != nil {
		// A partial replication still produced a usable match for the
		// caller; surface it alongside the error code.
		if errors.Is(err, "PARTIAL_REPLICATION") && match != nil {
			return response.Created(c, map[string]interface{}{
				"match":   match,
				"warning": "PARTIAL_REPLICATION",
			})
		}
		return response.Error(c, err)
	}

	return response.Created(c, match)
}

func (h *RequestHandler) RejectRequest(c echo.Context) error {
	requestID := c.Param("requestId")
	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	uid := c.Get("uid").(string)

	if err := h.requestUseCase.RejectRequest(c.Request().Context(), uid, requestID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Request rejected",
	})
}
