package vfs

import (
	"fmt"
	"path"
	"strings"
)

// Root is the path of the implicit root directory. It has no record.
const Root = "/"

// Clean normalizes an absolute slash-separated path. Trailing slashes, "."
// and ".." elements are resolved; relative and empty paths are rejected.
func Clean(p string) (string, error) {
	if p == "" || !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return path.Clean(p), nil
}

// ParentOf returns the parent directory of a clean path. The parent of a
// top-level entry and of the root itself is the root.
func ParentOf(p string) string {
	return path.Dir(p)
}

// NameOf returns the final element of a clean path.
func NameOf(p string) string {
	if p == Root {
		return Root
	}
	return path.Base(p)
}

// Join appends name to dir and cleans the result.
func Join(dir, name string) string {
	return path.Join(dir, name)
}
