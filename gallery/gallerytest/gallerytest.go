// Package gallerytest provides in-memory doubles for testing code built on
// the gallery and tools packages.
package gallerytest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"image_table_api/tools"

	"cloud.google.com/go/logging"
)

// Bucket is an in-memory tools.ImageBucket.
type Bucket struct {
	Name string

	mu         sync.Mutex
	objects    map[string][]byte
	types      map[string]string
	ListErr    error
	UrlErrs    map[string]error
	DeleteErrs map[string]error
	Deleted    []string
}

func NewBucket(paths ...string) *Bucket {
	b := &Bucket{
		Name:       "test-bucket",
		objects:    map[string][]byte{},
		types:      map[string]string{},
		UrlErrs:    map[string]error{},
		DeleteErrs: map[string]error{},
	}
	for _, p := range paths {
		b.objects[p] = nil
	}
	return b
}

func (b *Bucket) Has(storagePath string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.objects[storagePath]
	return ok
}

func (b *Bucket) Content(storagePath string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.objects[storagePath]
}

func (b *Bucket) ContentType(storagePath string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.types[storagePath]
}

func (b *Bucket) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ListErr != nil {
		return nil, b.ListErr
	}

	var paths []string
	for p := range b.objects {
		rest, ok := strings.CutPrefix(p, prefix)
		if !ok || rest == "" || strings.Contains(rest, "/") {
			continue
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (b *Bucket) DownloadUrl(ctx context.Context, storagePath string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.UrlErrs[storagePath]; err != nil {
		return "", err
	}
	if _, ok := b.objects[storagePath]; !ok {
		return "", fmt.Errorf("%s: %w", storagePath, tools.ErrObjectNotFound)
	}
	return Url(b.Name, storagePath), nil
}

func (b *Bucket) DeleteObject(ctx context.Context, storagePath string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.DeleteErrs[storagePath]; err != nil {
		return err
	}
	if _, ok := b.objects[storagePath]; !ok {
		return fmt.Errorf("%s: %w", storagePath, tools.ErrObjectNotFound)
	}
	delete(b.objects, storagePath)
	b.Deleted = append(b.Deleted, storagePath)
	return nil
}

func (b *Bucket) UploadObject(ctx context.Context, storagePath string, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[storagePath] = data
	b.types[storagePath] = contentType
	return Url(b.Name, storagePath), nil
}

// Url is the download URL the fake bucket resolves for a path.
func Url(bucket, storagePath string) string {
	return tools.DownloadUrl(bucket, storagePath, "token")
}

// Logger records log entries.
type Logger struct {
	mu      sync.Mutex
	Entries []logging.Entry
}

func (l *Logger) Log(e logging.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Entries = append(l.Entries, e)
}

// Count returns how many entries were logged at severity.
func (l *Logger) Count(severity logging.Severity) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, e := range l.Entries {
		if e.Severity == severity {
			n++
		}
	}
	return n
}

var ErrInjected = errors.New("injected failure")
