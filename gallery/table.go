package gallery

import (
	"context"
	"errors"
	"sync"

	"image_table_api/tools"
	"image_table_api/types"

	"cloud.google.com/go/logging"
	"golang.org/x/sync/errgroup"
)

// Table holds one user's image rows and row selection.
type Table struct {
	logger tools.Logger
	bucket tools.ImageBucket

	mu        sync.Mutex
	user      *types.User
	rows      []types.ImageRow
	selection []string
	// generation changes on every write to rows; a fetch that started
	// under an older generation is discarded.
	generation uint64
}

func NewTable(logger tools.Logger, bucket tools.ImageBucket) *Table {
	return &Table{
		logger: logger,
		bucket: bucket,
		rows:   []types.ImageRow{},
	}
}

// HandleAuthState reacts to a sign-in state change. Signing out is a no-op.
func (t *Table) HandleAuthState(ctx context.Context, user *types.User) error {
	if user == nil {
		return nil
	}
	return t.Load(ctx, user)
}

// Load replaces the rows with the user's images. On failure the rows are
// left empty. A result overtaken by a newer load, delete or add is dropped.
func (t *Table) Load(ctx context.Context, user *types.User) error {
	t.mu.Lock()
	t.bindLocked(user)
	t.generation++
	generation := t.generation
	t.mu.Unlock()

	rows, err := FetchImageRows(ctx, t.bucket, user)

	t.mu.Lock()
	defer t.mu.Unlock()

	if generation != t.generation {
		t.logger.Log(logging.Entry{
			Severity: logging.Debug,
			Payload:  "Discarding stale image fetch",
			Labels:   map[string]string{"uid": user.UID},
		})
		return nil
	}

	if err != nil {
		t.logger.Log(logging.Entry{
			Severity: logging.Error,
			Payload:  "Error fetching images: " + err.Error(),
			Labels:   map[string]string{"uid": user.UID},
		})
		t.rows = []types.ImageRow{}
		return err
	}

	t.rows = rows
	return nil
}

// bindLocked makes user the owner, dropping another user's state.
func (t *Table) bindLocked(user *types.User) {
	if t.user != nil && t.user.UID != user.UID {
		t.rows = []types.ImageRow{}
		t.selection = nil
		t.generation++
	}
	t.user = user
}

func (t *Table) Rows() []types.ImageRow {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := make([]types.ImageRow, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// SetSelection replaces the selection with the ids that are rows of the
// table. Unknown and duplicate ids are dropped.
func (t *Table) SetSelection(ids []string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := t.rowIdsLocked()
	seen := make(map[string]bool, len(ids))
	selection := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] || !rows[id] {
			continue
		}
		seen[id] = true
		selection = append(selection, id)
	}

	t.selection = selection
	return t.selectionLocked()
}

func (t *Table) rowIdsLocked() map[string]bool {
	ids := make(map[string]bool, len(t.rows))
	for _, row := range t.rows {
		ids[row.Id] = true
	}
	return ids
}

func (t *Table) Selection() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.selectionLocked()
}

func (t *Table) selectionLocked() []string {
	selection := make([]string, len(t.selection))
	copy(selection, t.selection)
	return selection
}

// Add appends a row, replacing an existing row with the same id in place.
func (t *Table) Add(row types.ImageRow) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.generation++
	for i := range t.rows {
		if t.rows[i].Id == row.Id {
			t.rows[i] = row
			return
		}
	}
	t.rows = append(t.rows, row)
}

// DeleteSelected deletes every selected image of user concurrently. Only
// when all deletes succeed are the rows removed and the selection cleared;
// otherwise the table is left unchanged and a *DeleteError is returned.
func (t *Table) DeleteSelected(ctx context.Context, user *types.User) ([]string, error) {
	if user == nil {
		return nil, ErrNotSignedIn
	}

	t.mu.Lock()
	t.bindLocked(user)
	rows := t.rowIdsLocked()
	selection := make([]string, 0, len(t.selection))
	for _, id := range t.selection {
		if rows[id] {
			selection = append(selection, id)
		}
	}
	t.mu.Unlock()

	if len(selection) == 0 {
		return []string{}, nil
	}

	errs := make([]error, len(selection))

	var g errgroup.Group
	for i, id := range selection {
		g.Go(func() error {
			errs[i] = t.bucket.DeleteObject(ctx, tools.ObjectPath(user.UID, id))
			return errs[i]
		})
	}

	if err := g.Wait(); err != nil {
		deleteErr := &DeleteError{}
		for i, id := range selection {
			if errs[i] != nil {
				deleteErr.Failed = append(deleteErr.Failed, id)
			} else {
				deleteErr.Deleted = append(deleteErr.Deleted, id)
			}
		}
		deleteErr.Err = errors.Join(errs...)

		t.logger.Log(logging.Entry{
			Severity: logging.Error,
			Payload:  "Error deleting images: " + deleteErr.Error(),
			Labels:   map[string]string{"uid": user.UID},
		})
		return nil, deleteErr
	}

	deleted := make(map[string]bool, len(selection))
	for _, id := range selection {
		deleted[id] = true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.generation++
	remainingRows := t.rows[:0]
	for _, row := range t.rows {
		if !deleted[row.Id] {
			remainingRows = append(remainingRows, row)
		}
	}
	t.rows = remainingRows

	remaining := t.selection[:0]
	for _, id := range t.selection {
		if !deleted[id] {
			remaining = append(remaining, id)
		}
	}
	t.selection = remaining

	return selection, nil
}
