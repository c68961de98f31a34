// Package block defines the allocation descriptor and the sorted table the
// arena keeps its live allocations in.
package block

import (
	"cmp"
	"fmt"
	"unsafe"
)

// Block describes one live allocation by its offset and length inside the
// arena's payload. Ordering and equality are defined by Start alone.
//
// Active is false for tombstones: slots past the table's length that once held
// a descriptor. A tombstone is logically absent; its Start and Size are stale.
type Block struct {
	Start  int
	Size   int
	Active bool
}

// Size is the number of bytes one descriptor occupies in the descriptor
// region.
const Size = int(unsafe.Sizeof(Block{}))

// Align is the alignment the descriptor region must honor.
const Align = int(unsafe.Alignof(Block{}))

// New returns an active descriptor.
func New(start, size int) Block {
	return Block{Start: start, Size: size, Active: true}
}

// End returns Start + Size, the first offset past the block.
func (b Block) End() int { return b.Start + b.Size }

// Contains reports whether off falls inside [Start, End).
func (b Block) Contains(off int) bool { return off >= b.Start && off < b.End() }

// Overlaps reports whether b and o share at least one byte.
func (b Block) Overlaps(o Block) bool {
	return b.Start < o.End() && o.Start < b.End()
}

// Compare orders blocks by Start.
func Compare(a, b Block) int { return cmp.Compare(a.Start, b.Start) }

// String formats the block as [start, end).
func (b Block) String() string {
	if !b.Active {
		return fmt.Sprintf("[%d, %d) tombstone", b.Start, b.End())
	}
	return fmt.Sprintf("[%d, %d)", b.Start, b.End())
}
