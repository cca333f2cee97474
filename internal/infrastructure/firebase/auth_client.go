package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

// VerifyToken validates a Firebase ID token and returns the decoded token.
func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (*auth.Token, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetUser fetches the Firebase user record, used to seed a profile on first
// login.
func (f *FirebaseAuthClient) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	user, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	return user, nil
}
