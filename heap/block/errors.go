package block

import "github.com/cockroachdb/errors"

var (
	// ErrDuplicateBlock indicates an insert collided with an existing start
	// offset. The arena never produces one; seeing it means its bookkeeping is
	// corrupt, so Insert panics with it.
	ErrDuplicateBlock = errors.New("block: duplicate block start")

	// ErrCapacityExceeded indicates the descriptor region is full. Insert
	// panics with it.
	ErrCapacityExceeded = errors.New("block: table capacity exceeded")
)
