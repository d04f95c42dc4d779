package notifications

import (
	"context"
	"fmt"

	"image_table_api/tools"
	"image_table_api/types"

	"cloud.google.com/go/firestore"
)

// TokenStore keeps the messaging registration token of each user.
type TokenStore interface {
	SetToken(ctx context.Context, uid, token string) error
	// Token returns "" when the user has not registered a client.
	Token(ctx context.Context, uid string) (string, error)
}

type FirestoreTokenStore struct {
	db *firestore.Client
}

func NewFirestoreTokenStore(db *firestore.Client) *FirestoreTokenStore {
	return &FirestoreTokenStore{db: db}
}

func (s *FirestoreTokenStore) SetToken(ctx context.Context, uid, token string) error {
	return tools.SetFirestoreDocument(ctx, s.db, types.FIREBASE_MESSAGING_TOKEN_COLLECTION, uid, map[string]interface{}{
		types.FIREBASE_MESSAGING_TOKEN_FIELDS_UID:   uid,
		types.FIREBASE_MESSAGING_TOKEN_FIELDS_TOKEN: token,
	})
}

func (s *FirestoreTokenStore) Token(ctx context.Context, uid string) (string, error) {
	doc, err := tools.GetFirestoreDocument(ctx, s.db, types.FIREBASE_MESSAGING_TOKEN_COLLECTION, uid)
	if err != nil {
		return "", fmt.Errorf("error getting registration token from firestore: %w", err)
	}
	if doc == nil {
		return "", nil
	}

	token, _ := doc[types.FIREBASE_MESSAGING_TOKEN_FIELDS_TOKEN].(string)
	return token, nil
}
