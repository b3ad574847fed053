package fat12

import "errors"

// Sentinel error kinds returned by the facade. Wrap with fmt.Errorf("...: %w", ErrX)
// at call sites that need extra context; callers test with errors.Is.
var (
	// ErrFailedToOpen means the image file could not be opened.
	ErrFailedToOpen = errors.New("fat12: failed to open disk image")

	// ErrBadBootSector means boot sector validation failed.
	ErrBadBootSector = errors.New("fat12: disk has bad boot sector")

	// ErrCorruptChain means a cluster chain cycles, exceeds the data-cluster
	// bound, or names a cluster outside the valid range.
	ErrCorruptChain = errors.New("fat12: corrupt cluster chain")

	// ErrShortRead means a sector read returned fewer bytes than requested.
	ErrShortRead = errors.New("fat12: short read")

	// ErrNotReady means an operation was attempted before Init or after Deinit.
	ErrNotReady = errors.New("fat12: filesystem not ready")

	// ErrNotFound means a path lookup did not resolve to a directory entry.
	ErrNotFound = errors.New("fat12: path not found")
)
