package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/tidwall/btree"

	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

// RecordStore keeps VFS entries in an ordered B-tree keyed by path. Children
// of a directory share its path prefix, so parent listings are range scans.
type RecordStore struct {
	mu      sync.RWMutex
	entries *btree.Map[string, *types.Entry]
}

// NewRecordStore creates an empty in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		entries: btree.NewMap[string, *types.Entry](0),
	}
}

// Name returns the identifier name defined for this store
func (*RecordStore) Name() string {
	return "memory"
}

// Open is a no-op; the tree is ready after construction.
func (s *RecordStore) Open(ctx context.Context) error {
	return ctx.Err()
}

// Close drops every entry.
func (s *RecordStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries.Clear()
	return nil
}

func (s *RecordStore) Put(ctx context.Context, entry *types.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries.Set(entry.Path, entry.Clone())
	return nil
}

func (s *RecordStore) Get(ctx context.Context, path string) (*types.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries.Get(path)
	if !ok {
		return nil, nil
	}
	return entry.Clone(), nil
}

func (s *RecordStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries.Delete(path)
	return nil
}

func (s *RecordStore) ListByParent(ctx context.Context, parent string) ([]*types.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := parent
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*types.Entry{}
	s.entries.Ascend(prefix, func(path string, entry *types.Entry) bool {
		if !strings.HasPrefix(path, prefix) {
			return false
		}
		if entry.Parent == parent {
			result = append(result, entry.Clone())
		}
		return true
	})
	return result, nil
}

func (s *RecordStore) ListByType(ctx context.Context, typ string) ([]*types.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*types.Entry{}
	s.entries.Scan(func(_ string, entry *types.Entry) bool {
		if entry.Type == typ {
			result = append(result, entry.Clone())
		}
		return true
	})
	return result, nil
}

func (s *RecordStore) Paths(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, s.entries.Len())
	s.entries.Scan(func(path string, _ *types.Entry) bool {
		paths = append(paths, path)
		return true
	})
	return paths, nil
}
