package filemanager

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/paths"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

// StartDir is the directory a new browser shows.
const StartDir = paths.Documents

var (
	// ErrNameRequired is returned when creating an entry without a name.
	ErrNameRequired = errors.New("name required")
	// ErrNotDirectory is returned when changing into a file or a missing path.
	ErrNotDirectory = errors.New("not a directory")
)

// Listing is the content of the current directory.
type Listing struct {
	Path    string         `json:"path"`
	CanUp   bool           `json:"can_go_up"`
	Entries []*types.Entry `json:"entries"`
}

// Browser is the file manager state: a current directory over the
// virtual file system.
type Browser struct {
	mu      sync.Mutex
	fs      *vfs.FS
	current string
	logger  *zap.Logger
}

// NewBrowser creates a browser positioned at StartDir
func NewBrowser(fs *vfs.FS, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{fs: fs, current: StartDir, logger: logger}
}

// Current returns the current directory.
func (b *Browser) Current() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// List shows the current directory, creating it first if it is missing.
func (b *Browser) List(ctx context.Context) (Listing, error) {
	return b.list(ctx, b.Current())
}

// ChangeDir moves into dir, which must be an existing directory.
func (b *Browser) ChangeDir(ctx context.Context, dir string) (Listing, error) {
	dir, err := vfs.Clean(dir)
	if err != nil {
		return Listing{}, err
	}
	if dir != vfs.Root {
		entry, err := b.fs.ReadFile(ctx, dir)
		if err != nil {
			return Listing{}, err
		}
		if !entry.IsDir() {
			return Listing{}, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
		}
	}

	b.mu.Lock()
	b.current = dir
	b.mu.Unlock()
	return b.list(ctx, dir)
}

// Up moves to the parent directory. At the root it stays put.
func (b *Browser) Up(ctx context.Context) (Listing, error) {
	b.mu.Lock()
	b.current = vfs.ParentOf(b.current)
	dir := b.current
	b.mu.Unlock()
	return b.list(ctx, dir)
}

// CreateFile makes an empty text file in the current directory.
func (b *Browser) CreateFile(ctx context.Context, name string) (*types.Entry, error) {
	p, err := b.child(name)
	if err != nil {
		return nil, err
	}
	return b.fs.SaveFile(ctx, p, "", types.DefaultFileType)
}

// CreateFolder makes a directory in the current directory.
func (b *Browser) CreateFolder(ctx context.Context, name string) (*types.Entry, error) {
	p, err := b.child(name)
	if err != nil {
		return nil, err
	}
	return b.fs.CreateDirectory(ctx, p)
}

// Delete removes path and, for a directory, everything below it. It
// returns the number of entries removed.
func (b *Browser) Delete(ctx context.Context, p string) (int, error) {
	removed, err := b.fs.RemoveAll(ctx, p)
	if err != nil {
		return removed, err
	}
	b.logger.Info("Deleted from file manager", zap.String("path", p), zap.Int("entries", removed))
	return removed, nil
}

// Search matches pattern against every path. A relative pattern is
// resolved against the current directory.
func (b *Browser) Search(ctx context.Context, pattern string) ([]*types.Entry, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", vfs.ErrInvalidPath)
	}
	if !strings.HasPrefix(pattern, "/") {
		pattern = strings.TrimSuffix(b.Current(), "/") + "/" + pattern
	}
	return b.fs.Glob(ctx, pattern)
}

func (b *Browser) list(ctx context.Context, dir string) (Listing, error) {
	if _, err := b.fs.CreateDirectory(ctx, dir); err != nil {
		return Listing{}, err
	}
	entries, err := b.fs.ListFiles(ctx, dir)
	if err != nil {
		return Listing{}, err
	}
	SortEntries(entries)

	return Listing{Path: dir, CanUp: dir != vfs.Root, Entries: entries}, nil
}

func (b *Browser) child(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: %q", vfs.ErrInvalidPath, name)
	}
	return vfs.Join(b.Current(), name), nil
}

// SortEntries orders directories first, then by case-insensitive name.
func SortEntries(entries []*types.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}
