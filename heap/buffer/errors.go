package buffer

import "github.com/cockroachdb/errors"

var (
	// ErrIndexOutOfBounds indicates an index outside the valid range for the
	// operation (capacity for Array, length for List reads).
	ErrIndexOutOfBounds = errors.New("buffer: index out of bounds")

	// ErrCapacityExceeded indicates an insert into a full list.
	ErrCapacityExceeded = errors.New("buffer: capacity exceeded")

	// ErrAllocation indicates the Allocator could not supply backing storage.
	ErrAllocation = errors.New("buffer: allocation failed")

	// ErrReleased indicates use of a buffer after Release.
	ErrReleased = errors.New("buffer: use after release")
)
