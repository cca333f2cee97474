package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"stylemate/internal/domain/entity"
	"stylemate/internal/domain/repository"
	"stylemate/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	updateData := map[string]interface{}{
		"name":        user.Name,
		"username":    user.Username,
		"avatar":      user.Avatar,
		"email":       user.Email,
		"phoneNumber": user.PhoneNumber,
		"updatedAt":   time.Now(),
	}

	// Only include non-empty fields so a partial profile edit never wipes
	// existing data.
	cleanUpdateData := make(map[string]interface{})
	for key, value := range updateData {
		if strVal, ok := value.(string); ok && strVal == "" {
			continue
		}
		cleanUpdateData[key] = value
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, cleanUpdateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

func (r *firestoreUserRepository) List(ctx context.Context, limit int) ([]*entity.User, error) {
	query := r.client.Collection("users").Query
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var users []*entity.User

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate users", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			continue // Skip malformed documents
		}
		user.ID = doc.Ref.ID
		users = append(users, &user)
	}

	return users, nil
}
