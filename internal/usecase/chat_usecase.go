package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"stylemate/internal/domain/entity"
	"stylemate/internal/domain/repository"
	"stylemate/pkg/errors"
	"stylemate/pkg/logger"
)

// ChatBroadcaster pushes a chat event to every live connection in a match
// room.
type ChatBroadcaster interface {
	BroadcastToMatch(matchID string, message []byte)
}

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	sessions    *SessionManager
	broadcaster ChatBroadcaster
}

func NewChatUseCase(chatRepo repository.ChatRepository, sessions *SessionManager, broadcaster ChatBroadcaster) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		sessions:    sessions,
		broadcaster: broadcaster,
	}
}

// requireParticipant checks that userID holds a copy of the match. Cancelled
// and completed matches stay readable; SendMessage rejects them separately.
func (uc *ChatUseCase) requireParticipant(userID, matchID string) (*entity.Match, error) {
	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}

	match, ok := session.Snapshot().MatchByID(matchID)
	if !ok {
		return nil, errors.NotFound("Match", nil)
	}
	if !match.Involves(userID) {
		return nil, errors.Forbidden("You are not part of this match", nil)
	}
	return match, nil
}

// VerifyAccess reports whether userID may join the match's chat room.
func (uc *ChatUseCase) VerifyAccess(userID, matchID string) error {
	_, err := uc.requireParticipant(userID, matchID)
	return err
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, matchID, text string) (*entity.Message, error) {
	if text == "" {
		return nil, errors.Validation("Message text is required", nil)
	}

	match, err := uc.requireParticipant(userID, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == entity.MatchCancelled || match.Status == entity.MatchCompleted {
		return nil, errors.BadRequest("Chat is closed for this match", nil)
	}

	session, err := uc.sessions.Get(userID)
	if err != nil {
		return nil, err
	}
	sender := session.User()

	message := &entity.Message{
		ID:           uuid.New().String(),
		SenderID:     userID,
		Text:         text,
		SenderAvatar: sender.Avatar,
		Timestamp:    time.Now(),
	}

	if err := uc.chatRepo.CreateMessage(ctx, matchID, message); err != nil {
		return nil, err
	}

	if uc.broadcaster != nil {
		payload, err := json.Marshal(message)
		if err != nil {
			logger.Warn("Failed to encode chat message %s: %v", message.ID, err)
		} else {
			uc.broadcaster.BroadcastToMatch(matchID, payload)
		}
	}

	return message, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, matchID string, limit, offset int) ([]*entity.Message, int64, error) {
	if _, err := uc.requireParticipant(userID, matchID); err != nil {
		return nil, 0, err
	}
	return uc.chatRepo.ListMessages(ctx, matchID, limit, offset)
}
