package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "stylemate/internal/infrastructure/websocket"
	"stylemate/internal/usecase"
	"stylemate/pkg/errors"
	"stylemate/pkg/response"
)

type WebSocketHandler struct {
	wsManager   *ws.Manager
	chatUseCase *usecase.ChatUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, chatUseCase *usecase.ChatUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		chatUseCase: chatUseCase,
	}
}

// HandleChatSocket upgrades the connection and subscribes it to the match's
// chat room. Messages are sent over the REST endpoint; the socket is a
// receive-only stream.
func (h *WebSocketHandler) HandleChatSocket(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	matchID := c.Param("matchId")
	if matchID == "" {
		return response.Error(c, errors.BadRequest("Match ID is required", nil))
	}

	if err := h.chatUseCase.VerifyAccess(userID, matchID); err != nil {
		return response.Error(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID:  userID,
		MatchID: matchID,
		Conn:    conn,
		Send:    make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
