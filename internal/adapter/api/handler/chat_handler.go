package handler

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/usecase"
	"stylemate/pkg/errors"
	"stylemate/pkg/response"
	"stylemate/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	matchID := c.Param("matchId")
	if matchID == "" {
		return response.Error(c, errors.BadRequest("Match ID is required", nil))
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, matchID, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	matchID := c.Param("matchId")
	if matchID == "" {
		return response.Error(c, errors.BadRequest("Match ID is required", nil))
	}

	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), uid, matchID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}
