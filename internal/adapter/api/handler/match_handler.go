package handler

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/domain/entity"
	"stylemate/internal/usecase"
	"stylemate/pkg/errors"
	"stylemate/pkg/response"
)

type MatchHandler struct {
	matchUseCase *usecase.MatchUseCase
}

func NewMatchHandler(matchUseCase *usecase.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

func (h *MatchHandler) ListMatches(c echo.Context) error {
	uid := c.Get("uid").(string)

	status := entity.MatchStatus(c.QueryParam("status"))
	if status != "" && !entity.ValidMatchStatus(status) {
		return response.Error(c, errors.BadRequest("Invalid match status", nil))
	}

	matches, err := h.matchUseCase.ListMatches(uid, status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, matches)
}

func (h *MatchHandler) GetMatch(c echo.Context) error {
	matchID := c.Param("matchId")
	if matchID == "" {
		return response.Error(c, errors.BadRequest("Match ID is required", nil))
	}

	uid := c.Get("uid").(string)

	match, err := h.matchUseCase.GetMatch(uid, matchID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, match)
}

func (h *MatchHandler) CancelMatch(c echo.Context) error {
	matchID := c.Param("matchId")
	if matchID == "" {
		return response.Error(c, errors.BadRequest("Match ID is required", nil))
	}

	uid := c.Get("uid").(string)

	if err := h.matchUseCase.CancelMatch(c.Request().Context(), uid, matchID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Match cancelled",
	})
}
