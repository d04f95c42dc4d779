package tools

import (
	"context"
	"strings"

	"image_table_api/types"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// NewDownloadToken generates a random Firebase Storage download token
func NewDownloadToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// Updates the download token for a file in Firebase Storage
func UpdateFirebaseStorageDownloadToken(ctx context.Context, obj *storage.ObjectHandle, token string) error {
	_, err := obj.Update(ctx, storage.ObjectAttrsToUpdate{
		Metadata: map[string]string{
			types.FIREBASE_STORAGE_TOKENS_KEY: token,
		},
	})
	return err
}

// FirstDownloadToken returns the first token of the comma separated
// download tokens metadata entry, or "" when there is none.
func FirstDownloadToken(metadata map[string]string) string {
	tokens := metadata[types.FIREBASE_STORAGE_TOKENS_KEY]
	for _, token := range strings.Split(tokens, ",") {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}
	return ""
}
