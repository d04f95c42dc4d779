package tools

import (
	"context"
	"errors"
	"fmt"
	"io"

	"image_table_api/types"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// ErrObjectNotFound is returned when a storage object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ImageBucket is the storage the images table is backed by.
type ImageBucket interface {
	// ListObjects returns the paths of the objects directly under prefix.
	ListObjects(ctx context.Context, prefix string) ([]string, error)
	// DownloadUrl resolves a retrievable URL for an object.
	DownloadUrl(ctx context.Context, storagePath string) (string, error)
	DeleteObject(ctx context.Context, storagePath string) error
	// UploadObject stores the object and returns its download URL.
	UploadObject(ctx context.Context, storagePath string, contentType string, r io.Reader) (string, error)
}

// StorageBucket is an ImageBucket on a Google Cloud Storage bucket laid
// out the way Firebase Storage expects.
type StorageBucket struct {
	name   string
	handle *gcs.BucketHandle
}

func NewStorageBucket(client *gcs.Client, bucket string) *StorageBucket {
	return &StorageBucket{
		name:   bucket,
		handle: client.Bucket(bucket),
	}
}

func (b *StorageBucket) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	it := b.handle.Objects(ctx, &gcs.Query{Prefix: prefix, Delimiter: "/"})

	var paths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", prefix, err)
		}

		// Sub folders come back as prefixes, folder placeholders as the prefix itself
		if attrs.Prefix != "" || attrs.Name == prefix {
			continue
		}

		paths = append(paths, attrs.Name)
	}

	return paths, nil
}

func (b *StorageBucket) DownloadUrl(ctx context.Context, storagePath string) (string, error) {
	obj := b.handle.Object(storagePath)

	attrs, err := obj.Attrs(ctx)
	if err == gcs.ErrObjectNotExist {
		return "", fmt.Errorf("%s: %w", storagePath, ErrObjectNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("object.Attrs: %w", err)
	}

	downloadToken := FirstDownloadToken(attrs.Metadata)
	if downloadToken == "" {
		// Objects written outside of the Firebase SDKs carry no token yet
		downloadToken, err = NewDownloadToken()
		if err != nil {
			return "", err
		}

		if err := UpdateFirebaseStorageDownloadToken(ctx, obj, downloadToken); err != nil {
			return "", fmt.Errorf("updating download token of %s: %w", storagePath, err)
		}
	}

	return DownloadUrl(b.name, storagePath, downloadToken), nil
}

func (b *StorageBucket) DeleteObject(ctx context.Context, storagePath string) error {
	err := b.handle.Object(storagePath).Delete(ctx)
	if err == gcs.ErrObjectNotExist {
		return fmt.Errorf("%s: %w", storagePath, ErrObjectNotFound)
	}
	if err != nil {
		return fmt.Errorf("deleting %s: %w", storagePath, err)
	}

	return nil
}

func (b *StorageBucket) UploadObject(ctx context.Context, storagePath string, contentType string, r io.Reader) (string, error) {
	downloadToken, err := NewDownloadToken()
	if err != nil {
		return "", err
	}

	sw := b.handle.Object(storagePath).NewWriter(ctx)
	sw.ContentType = contentType
	sw.Metadata = map[string]string{
		types.FIREBASE_STORAGE_TOKENS_KEY: downloadToken,
	}

	if _, err := io.Copy(sw, r); err != nil {
		sw.Close()
		return "", fmt.Errorf("writing %s: %w", storagePath, err)
	}

	if err := sw.Close(); err != nil {
		return "", fmt.Errorf("closing writer of %s: %w", storagePath, err)
	}

	return DownloadUrl(b.name, storagePath, downloadToken), nil
}
