package block

import "iter"

// Windows yields overlapping runs of size adjacent descriptors in ascending
// order: for size 2 that is every (left, right) pair bordering a gap. It is
// lazy, finite, and can be restarted with Reset.
//
// The yielded slice aliases the table and is only valid until the next
// mutation.
type Windows struct {
	t    *Table
	size int
	i    int
}

// Windows returns a window iterator positioned at the first descriptor. A
// size below 1 yields nothing.
func (t *Table) Windows(size int) *Windows {
	return &Windows{t: t, size: size}
}

// Next returns the next window, or false when exhausted.
func (w *Windows) Next() ([]Block, bool) {
	if w.size < 1 || w.i+w.size > w.t.Len() {
		return nil, false
	}
	win := w.t.Slice()[w.i : w.i+w.size : w.i+w.size]
	w.i++
	return win, true
}

// Reset rewinds the iterator to the first window.
func (w *Windows) Reset() { w.i = 0 }

// All ranges over every window from the beginning, independent of the
// iterator's current position.
func (w *Windows) All() iter.Seq[[]Block] {
	return func(yield func([]Block) bool) {
		it := Windows{t: w.t, size: w.size}
		for win, ok := it.Next(); ok; win, ok = it.Next() {
			if !yield(win) {
				return
			}
		}
	}
}

// Gap is a free span [Start, End) between blocks or region boundaries.
type Gap struct {
	Start int
	End   int
}

// Len returns the gap length in bytes.
func (g Gap) Len() int { return g.End - g.Start }

// Gaps iterates over every non-empty free span in [0, limit): the span before
// the first block, the spans between adjacent blocks, and the span after the
// last block.
func (t *Table) Gaps(limit int) iter.Seq[Gap] {
	return func(yield func(Gap) bool) {
		prev := 0
		for _, b := range t.Slice() {
			if b.Start > prev && !yield(Gap{Start: prev, End: b.Start}) {
				return
			}
			prev = b.End()
		}
		if limit > prev {
			yield(Gap{Start: prev, End: limit})
		}
	}
}
