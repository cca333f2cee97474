package repository

import (
	"context"

	"stylemate/internal/domain/entity"
)

type ChatRepository interface {
	CreateMessage(ctx context.Context, matchID string, message *entity.Message) error
	ListMessages(ctx context.Context, matchID string, limit, offset int) ([]*entity.Message, int64, error)
}
