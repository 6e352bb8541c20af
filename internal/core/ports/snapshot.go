package ports

import (
	"context"
	"encoding/json"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

// SnapshotStore reads the persisted capture log of a user.
// Lookup returns domain.ErrNotFound when the handle or the step does not exist.
type SnapshotStore interface {
	Lookup(ctx context.Context, handle, step string) (json.RawMessage, error)
}

// SnapshotWriter appends captures to a user's log.
type SnapshotWriter interface {
	Append(ctx context.Context, handle string, entry domain.SnapshotEntry) error
}

// SnapshotRepository is a store that supports both reads and imports.
type SnapshotRepository interface {
	SnapshotStore
	SnapshotWriter
	Close() error
}
