package heap

import "github.com/cockroachdb/errors"

var (
	// ErrNotInitialized indicates an operation on an allocator that has not
	// been given a region yet.
	ErrNotInitialized = errors.New("heap: not initialized")

	// ErrSizeOverflow indicates a size or alignment that does not fit an int.
	ErrSizeOverflow = errors.New("heap: size overflows int")
)
