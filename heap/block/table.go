package block

import (
	"cmp"
	"iter"
	"slices"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/kheap/heap/buffer"
)

// Table is the sorted collection of live descriptors. Entries [0, Len) are
// strictly ascending by Start. Non-overlap is maintained by the arena, not
// checked here.
//
// NOT thread-safe.
type Table struct {
	list *buffer.List[Block]
}

// NewTable wraps an existing list. The list must be empty or already sorted.
func NewTable(l *buffer.List[Block]) *Table {
	return &Table{list: l}
}

// TableAt places an empty table over capacity descriptor slots at ptr. The
// storage stays owned by the caller; this is the bootstrap path that lets the
// arena keep its bookkeeping inside the region it manages.
func TableAt(ptr unsafe.Pointer, capacity int) *Table {
	return &Table{list: buffer.ListAt[Block](ptr, capacity)}
}

// Len returns the number of live descriptors.
func (t *Table) Len() int { return t.list.Len() }

// Cap returns the number of descriptor slots.
func (t *Table) Cap() int { return t.list.Cap() }

// Full reports whether another Insert would exceed capacity.
func (t *Table) Full() bool { return t.list.Full() }

// Slice returns a view of the live descriptors. It is invalidated by Insert
// and Remove.
func (t *Table) Slice() []Block { return t.list.Slice() }

// Get returns descriptor i.
func (t *Table) Get(i int) (Block, bool) {
	b, err := t.list.Get(i)
	return b, err == nil
}

// Ptr returns a pointer to descriptor i for in-place updates, or nil.
func (t *Table) Ptr(i int) *Block {
	p, err := t.list.Ptr(i)
	if err != nil {
		return nil
	}
	return p
}

// First returns the lowest descriptor.
func (t *Table) First() (Block, bool) { return t.Get(0) }

// Last returns the highest descriptor.
func (t *Table) Last() (Block, bool) { return t.Get(t.Len() - 1) }

// Search binary-searches for start. It returns the index of the match, or the
// insertion point and false.
func (t *Table) Search(start int) (int, bool) {
	return slices.BinarySearchFunc(t.Slice(), start, func(b Block, s int) int {
		return cmp.Compare(b.Start, s)
	})
}

// Position returns the index of the descriptor starting at start by linear
// scan, or -1.
func (t *Table) Position(start int) int {
	return slices.IndexFunc(t.Slice(), func(b Block) bool { return b.Start == start })
}

// Insert adds b at its sorted position. A descriptor with the same Start, or a
// full table, is an invariant violation and panics.
func (t *Table) Insert(b Block) {
	i, found := t.Search(b.Start)
	if found {
		panic(errors.WithAssertionFailure(errors.Wrapf(ErrDuplicateBlock, "start=%d", b.Start)))
	}
	if err := t.list.Insert(i, b); err != nil {
		if errors.Is(err, buffer.ErrCapacityExceeded) {
			panic(errors.WithAssertionFailure(errors.Wrapf(ErrCapacityExceeded, "capacity=%d", t.Cap())))
		}
		panic(errors.WithAssertionFailure(err))
	}
}

// Remove deletes the descriptor with b's Start. A missing descriptor is not
// an error; Remove reports whether anything was removed. The vacated tail slot
// becomes a tombstone.
func (t *Table) Remove(b Block) bool {
	i, found := t.Search(b.Start)
	if !found {
		return false
	}
	if _, err := t.list.Remove(i); err != nil {
		return false
	}
	if p, err := t.list.Raw().Ptr(t.list.Len()); err == nil {
		p.Active = false
	}
	return true
}

// Blocks iterates over the live descriptors in ascending order.
func (t *Table) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for _, b := range t.Slice() {
			if !yield(b) {
				return
			}
		}
	}
}

// Tombstone returns raw slot i past Len, for inspection. ok is false when i
// is live or beyond capacity.
func (t *Table) Tombstone(i int) (Block, bool) {
	if i < t.Len() {
		return Block{}, false
	}
	b, err := t.list.Raw().Get(i)
	if err != nil {
		return Block{}, false
	}
	return b, true
}
