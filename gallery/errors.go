package gallery

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotSignedIn = errors.New("no signed-in user for this table")

// DeleteError reports a batch delete where at least one object could not
// be removed. Deleted lists the objects that are already gone remotely.
type DeleteError struct {
	Deleted []string
	Failed  []string
	Err     error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("deleting images failed for [%s]: %v", strings.Join(e.Failed, ", "), e.Err)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}
