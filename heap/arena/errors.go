package arena

import "github.com/cockroachdb/errors"

var (
	// ErrRegionTooSmall indicates the region leaves no payload or no descriptor
	// slot once aligned and split.
	ErrRegionTooSmall = errors.New("arena: region too small")

	// ErrRequestTooLarge indicates size >= payload length.
	ErrRequestTooLarge = errors.New("arena: request too large")

	// ErrZeroSize indicates a request for zero or negative bytes.
	ErrZeroSize = errors.New("arena: size must be positive")

	// ErrUnsupportedAlignment indicates an alignment that is not a power of two
	// or exceeds MaxAlign.
	ErrUnsupportedAlignment = errors.New("arena: unsupported alignment")

	// ErrOutOfMemory indicates no gap fits the request after a full scan.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrInvalidPointer indicates a pointer that does not start a live block.
	ErrInvalidPointer = errors.New("arena: invalid pointer")

	// ErrInvariant indicates the block table failed a consistency check.
	ErrInvariant = errors.New("arena: invariant violated")
)
