package handler

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/usecase"
	"stylemate/pkg/errors"
	"stylemate/pkg/response"
)

type DeckHandler struct {
	deckUseCase  *usecase.DeckUseCase
	swipeUseCase *usecase.SwipeUseCase
}

func NewDeckHandler(deckUseCase *usecase.DeckUseCase, swipeUseCase *usecase.SwipeUseCase) *DeckHandler {
	return &DeckHandler{
		deckUseCase:  deckUseCase,
		swipeUseCase: swipeUseCase,
	}
}

func (h *DeckHandler) BuildDeck(c echo.Context) error {
	uid := c.Get("uid").(string)

	deck, err := h.deckUseCase.BuildDeck(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, deck)
}

func (h *DeckHandler) GetDeck(c echo.Context) error {
	uid := c.Get("uid").(string)

	deck, err := h.deckUseCase.DeckState(uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, deck)
}

type swipeRequest struct {
	Direction string `json:"direction" validate:"required,oneof=left right"`
}

func (h *DeckHandler) Swipe(c echo.Context) error {
	var req swipeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	result, err := h.swipeUseCase.Swipe(c.Request().Context(), uid, usecase.SwipeDirection(req.Direction))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *DeckHandler) ListLikedItems(c echo.Context) error {
	uid := c.Get("uid").(string)

	liked, err := h.swipeUseCase.ListLikedItems(uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, liked)
}

func (h *DeckHandler) RemoveLikedItem(c echo.Context) error {
	likedID := c.Param("likedId")
	if likedID == "" {
		return response.Error(c, errors.BadRequest("Liked item ID is required", nil))
	}

	uid := c.Get("uid").(string)

	if err := h.swipeUseCase.RemoveLikedItem(uid, likedID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Liked item removed",
	})
}
