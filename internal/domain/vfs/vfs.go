package vfs

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage"
)

// FS is the desktop's virtual file system: a flat, path-keyed record store
// presenting a directory tree. Each method is one atomic store call or a
// short sequence of them; multi-step operations are not transactional.
type FS struct {
	mu     sync.RWMutex
	store  storage.RecordStore
	ready  bool
	now    func() time.Time
	logger *zap.Logger

	metrics  *monitoring.Metrics
	listener func(Change)
}

// Stats summarizes the tree.
type Stats struct {
	Ready       bool   `json:"ready"`
	Backend     string `json:"backend"`
	Entries     int    `json:"entries"`
	Directories int    `json:"directories"`
	Files       int    `json:"files"`
}

// New creates a file system over store. Init must be called before use.
func New(store storage.RecordStore, logger *zap.Logger) *FS {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FS{
		store:  store,
		now:    time.Now,
		logger: logger,
	}
}

// Init opens the backing store. Calling it again after success is a no-op.
func (f *FS) Init(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ready {
		return nil
	}
	if err := f.store.Open(ctx); err != nil {
		return fmt.Errorf("%w: open %s store: %v", ErrStorageUnavailable, f.store.Name(), err)
	}

	f.ready = true
	f.logger.Info("Virtual file system ready", zap.String("backend", f.store.Name()))
	return nil
}

// Close releases the backing store. Later calls fail with ErrStorageUnavailable.
func (f *FS) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.ready {
		return nil
	}
	f.ready = false
	return f.store.Close(ctx)
}

// Ready reports whether Init succeeded.
func (f *FS) Ready() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.ready
}

func (f *FS) backend() (storage.RecordStore, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.ready {
		return nil, fmt.Errorf("%w: file system not initialized", ErrStorageUnavailable)
	}
	return f.store, nil
}

// CreateDirectory makes a directory entry. It is idempotent: an existing
// entry at path is returned unchanged. The root always exists.
func (f *FS) CreateDirectory(ctx context.Context, p string) (_ *types.Entry, err error) {
	defer func() { f.observe("mkdir", err) }()

	store, err := f.backend()
	if err != nil {
		return nil, err
	}
	if p, err = Clean(p); err != nil {
		return nil, err
	}
	if p == Root {
		return rootEntry(), nil
	}

	existing, err := store.Get(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", p, err)
	}
	if existing != nil {
		return existing, nil
	}

	parent := ParentOf(p)
	if err := f.requireDirectory(ctx, store, parent); err != nil {
		return nil, err
	}

	now := f.now()
	entry := &types.Entry{
		Path:       p,
		Name:       NameOf(p),
		Parent:     parent,
		Type:       types.DirectoryType,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := store.Put(ctx, entry); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", p, err)
	}

	f.logger.Debug("Directory created", zap.String("path", p))
	f.notify(ChangeSaved, entry)
	return entry.Clone(), nil
}

// SaveFile creates or replaces the file at path. Size is the UTF-8 byte
// length of content. An overwrite keeps the original creation time. An
// empty contentType is detected from the name and content.
func (f *FS) SaveFile(ctx context.Context, p, content, contentType string) (_ *types.Entry, err error) {
	defer func() { f.observe("save", err) }()

	store, err := f.backend()
	if err != nil {
		return nil, err
	}
	if p, err = Clean(p); err != nil {
		return nil, err
	}
	if p == Root {
		return nil, fmt.Errorf("%w: cannot save a file at the root path", ErrInvalidWrite)
	}

	parent := ParentOf(p)
	if err := f.requireDirectory(ctx, store, parent); err != nil {
		return nil, err
	}

	existing, err := store.Get(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", p, err)
	}
	if existing.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidWrite, p)
	}

	if contentType == "" {
		contentType = DetectType(p, content)
	}

	now := f.now()
	entry := &types.Entry{
		Path:       p,
		Name:       NameOf(p),
		Parent:     parent,
		Content:    &content,
		Type:       contentType,
		Size:       int64(len(content)),
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if existing != nil {
		entry.CreatedAt = existing.CreatedAt
	}

	if err := store.Put(ctx, entry); err != nil {
		return nil, fmt.Errorf("save %s: %w", p, err)
	}

	f.logger.Debug("File saved",
		zap.String("path", p),
		zap.String("type", contentType),
		zap.Int64("size", entry.Size),
	)
	f.notify(ChangeSaved, entry)
	return entry.Clone(), nil
}

// ReadFile returns the entry at path, or nil when nothing is stored there.
// Absence is not an error.
func (f *FS) ReadFile(ctx context.Context, p string) (*types.Entry, error) {
	store, err := f.backend()
	if err != nil {
		return nil, err
	}
	if p, err = Clean(p); err != nil {
		return nil, err
	}

	entry, err := store.Get(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return entry, nil
}

// FileExists reports whether an entry is stored at path.
func (f *FS) FileExists(ctx context.Context, p string) (bool, error) {
	entry, err := f.ReadFile(ctx, p)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

// DeleteFile removes exactly the entry at path. Children of a directory
// are left in place; use RemoveAll to delete a subtree.
func (f *FS) DeleteFile(ctx context.Context, p string) (err error) {
	defer func() { f.observe("delete", err) }()

	store, err := f.backend()
	if err != nil {
		return err
	}
	if p, err = Clean(p); err != nil {
		return err
	}
	if p == Root {
		return fmt.Errorf("%w: cannot delete the root", ErrInvalidWrite)
	}

	if err := store.Delete(ctx, p); err != nil {
		return fmt.Errorf("delete %s: %w", p, err)
	}
	f.logger.Debug("Entry deleted", zap.String("path", p))
	f.notify(ChangeDeleted, &types.Entry{Path: p, Name: NameOf(p), Parent: ParentOf(p)})
	return nil
}

// ListFiles returns the direct children of parent in store order. An empty
// parent means the root.
func (f *FS) ListFiles(ctx context.Context, parent string) ([]*types.Entry, error) {
	store, err := f.backend()
	if err != nil {
		return nil, err
	}
	if parent == "" {
		parent = Root
	}
	if parent, err = Clean(parent); err != nil {
		return nil, err
	}

	entries, err := store.ListByParent(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", parent, err)
	}
	return entries, nil
}

// ListByType returns every entry with the given type tag.
func (f *FS) ListByType(ctx context.Context, typ string) ([]*types.Entry, error) {
	store, err := f.backend()
	if err != nil {
		return nil, err
	}

	entries, err := store.ListByType(ctx, typ)
	if err != nil {
		return nil, fmt.Errorf("list type %s: %w", typ, err)
	}
	return entries, nil
}

// Stats counts the stored entries.
func (f *FS) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Ready: f.Ready(), Backend: f.store.Name()}

	store, err := f.backend()
	if err != nil {
		return stats, err
	}

	paths, err := store.Paths(ctx)
	if err != nil {
		return stats, err
	}
	dirs, err := store.ListByType(ctx, types.DirectoryType)
	if err != nil {
		return stats, err
	}

	stats.Entries = len(paths)
	stats.Directories = len(dirs)
	stats.Files = stats.Entries - stats.Directories
	return stats, nil
}

func (f *FS) requireDirectory(ctx context.Context, store storage.RecordStore, dir string) error {
	if dir == Root {
		return nil
	}

	entry, err := store.Get(ctx, dir)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", dir, err)
	}
	if entry == nil {
		return fmt.Errorf("%w: %s", ErrParentNotFound, dir)
	}
	if !entry.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrParentNotFound, dir)
	}
	return nil
}

// DetectType guesses a content type for a file saved without one.
func DetectType(p, content string) string {
	switch strings.ToLower(pathExt(p)) {
	case ".md", ".markdown":
		return "text/markdown"
	case ".csv":
		return "text/csv"
	}

	detected := mimetype.Detect([]byte(content)).String()
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	if detected == "" || detected == "application/octet-stream" {
		return types.DefaultFileType
	}
	return detected
}

func pathExt(p string) string {
	name := NameOf(p)
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[i:]
	}
	return ""
}

func rootEntry() *types.Entry {
	return &types.Entry{
		Path:   Root,
		Name:   Root,
		Parent: Root,
		Type:   types.DirectoryType,
	}
}
