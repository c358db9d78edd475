// package repositories provides the persistence layer for ideas and the user allow-list.
//
// Repositories wrap database/sql over SQLite. Any backing-store failure is
// wrapped in [shared.ErrStorageUnavailable] so callers can treat it as
// fatal-for-this-request without inspecting driver errors.
package repositories

import (
	"fmt"

	"github.com/mxsolis/contentbot/internal/shared"
)

// storeErr wraps a backing-store failure with the operation that hit it.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", shared.ErrStorageUnavailable, op, err)
}
