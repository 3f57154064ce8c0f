package vfs

import (
	"errors"

	"github.com/GriffinCanCode/LuminOS/backend/internal/storage"
)

var (
	// ErrStorageUnavailable is returned before Init succeeded, after Close,
	// and whenever the back end rejects calls.
	ErrStorageUnavailable = storage.ErrUnavailable

	// ErrInvalidWrite is returned for writes the tree cannot hold, such as
	// saving a file at the root path or over a directory.
	ErrInvalidWrite = errors.New("invalid write")

	// ErrInvalidPath is returned for empty or relative paths.
	ErrInvalidPath = errors.New("invalid path")

	// ErrParentNotFound is returned when a write targets a directory that
	// does not exist or is not a directory.
	ErrParentNotFound = errors.New("parent directory not found")
)
