package vfs

import (
	"context"
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

// RemoveAll deletes path and everything below it, children first. It
// returns the number of entries removed. Orphaned children of a missing
// directory record are removed too. The walk is not atomic: a failure
// leaves the entries deleted so far gone.
func (f *FS) RemoveAll(ctx context.Context, p string) (int, error) {
	if _, err := f.backend(); err != nil {
		return 0, err
	}
	p, err := Clean(p)
	if err != nil {
		return 0, err
	}
	if p == Root {
		return 0, fmt.Errorf("%w: cannot delete the root", ErrInvalidWrite)
	}

	removed, err := f.removeTree(ctx, p)
	if err != nil {
		return removed, err
	}

	f.logger.Debug("Tree removed", zap.String("path", p), zap.Int("entries", removed))
	return removed, nil
}

func (f *FS) removeTree(ctx context.Context, p string) (int, error) {
	entry, err := f.ReadFile(ctx, p)
	if err != nil {
		return 0, err
	}

	removed := 0
	if entry == nil || entry.IsDir() {
		children, err := f.ListFiles(ctx, p)
		if err != nil {
			return removed, err
		}
		for _, child := range children {
			n, err := f.removeTree(ctx, child.Path)
			removed += n
			if err != nil {
				return removed, err
			}
		}
	}

	if entry == nil {
		return removed, nil
	}
	if err := f.DeleteFile(ctx, p); err != nil {
		return removed, err
	}
	return removed + 1, nil
}

// Glob returns the entries whose path matches pattern, sorted by path.
// Patterns use doublestar syntax, e.g. "/documents/**/*.md".
func (f *FS) Glob(ctx context.Context, pattern string) ([]*types.Entry, error) {
	store, err := f.backend()
	if err != nil {
		return nil, err
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad pattern %q", ErrInvalidPath, pattern)
	}

	paths, err := store.Paths(ctx)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(paths)

	matches := []*types.Entry{}
	for _, p := range paths {
		ok, err := doublestar.Match(pattern, p)
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q", ErrInvalidPath, pattern)
		}
		if !ok {
			continue
		}

		entry, err := store.Get(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		if entry != nil {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}
