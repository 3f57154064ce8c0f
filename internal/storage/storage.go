package storage

import (
	"context"
	"errors"

	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

// ErrUnavailable is returned when a back end cannot serve a request,
// either because it was never opened or because its breaker is open.
var ErrUnavailable = errors.New("storage unavailable")

// RecordStore persists VFS entries keyed by absolute path, with secondary
// lookups by parent directory and by type tag. Every call is atomic on its
// own; no call cascades to other records.
type RecordStore interface {
	// Name returns the identifier of the back end.
	Name() string
	// Open prepares the store (connection, schema) for use.
	Open(ctx context.Context) error
	// Close releases every resource held by the store.
	Close(ctx context.Context) error

	// Put inserts or replaces the entry stored under entry.Path.
	Put(ctx context.Context, entry *types.Entry) error
	// Get returns the entry stored under path or nil when there is none.
	Get(ctx context.Context, path string) (*types.Entry, error)
	// Delete removes the entry stored under path. Missing paths are not an error.
	Delete(ctx context.Context, path string) error
	// ListByParent returns the direct children of parent in any order.
	ListByParent(ctx context.Context, parent string) ([]*types.Entry, error)
	// ListByType returns every entry carrying the given type tag.
	ListByType(ctx context.Context, typ string) ([]*types.Entry, error)
	// Paths returns every stored path.
	Paths(ctx context.Context) ([]string, error)
}

// KV is a flat string key/value store used for small per-origin slots
// such as the spreadsheet grid and the notepad autosave.
type KV interface {
	Name() string
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close(ctx context.Context) error
}
