package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"stylemate/internal/domain/entity"
	"stylemate/internal/domain/repository"
	"stylemate/pkg/errors"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) messages(matchID string) *firestore.CollectionRef {
	return r.client.Collection("chats").Doc(matchID).Collection("messages")
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, matchID string, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	_, err := r.messages(matchID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, matchID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.messages(matchID).OrderBy("timestamp", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while counting messages for match %s: %v", matchID, err)
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error parsing message data for match %s: %v", matchID, err)
			continue
		}

		messages = append(messages, &message)
	}

	return messages, total, nil
}
