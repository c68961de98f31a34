package block

import (
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTable places a table over a Go slice, the same way the arena places
// one over its descriptor region.
func newTestTable(t *testing.T, capacity int) *Table {
	t.Helper()
	backing := make([]Block, capacity)
	return TableAt(unsafe.Pointer(unsafe.SliceData(backing)), capacity)
}

func starts(t *Table) []int {
	var out []int
	for b := range t.Blocks() {
		out = append(out, b.Start)
	}
	return out
}

// recoverError runs fn and returns the error it panicked with.
func recoverError(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		var ok bool
		err, ok = r.(error)
		require.True(t, ok, "panic value should be an error, got %T", r)
	}()
	fn()
	return nil
}

func TestBlock_Basics(t *testing.T) {
	b := New(10, 20)
	assert.True(t, b.Active)
	assert.Equal(t, 30, b.End())
	assert.True(t, b.Contains(10))
	assert.True(t, b.Contains(29))
	assert.False(t, b.Contains(30))
	assert.True(t, b.Overlaps(New(29, 5)))
	assert.False(t, b.Overlaps(New(30, 5)), "touching blocks do not overlap")
	assert.Equal(t, 0, Compare(New(10, 1), New(10, 99)), "ordering ignores size")
	assert.Equal(t, -1, Compare(New(1, 1), New(2, 1)))
	assert.Equal(t, "[10, 30)", b.String())
	assert.Equal(t, "[0, 0) tombstone", Block{}.String())
}

func TestTable_InsertKeepsOrder(t *testing.T) {
	tbl := newTestTable(t, 8)

	for _, s := range []int{50, 10, 30, 0, 70} {
		tbl.Insert(New(s, 5))
	}
	assert.Equal(t, []int{0, 10, 30, 50, 70}, starts(tbl))
	assert.Equal(t, 5, tbl.Len())
	assert.Equal(t, 8, tbl.Cap())

	first, ok := tbl.First()
	require.True(t, ok)
	assert.Equal(t, 0, first.Start)
	last, ok := tbl.Last()
	require.True(t, ok)
	assert.Equal(t, 70, last.Start)
}

func TestTable_InsertDuplicatePanics(t *testing.T) {
	tbl := newTestTable(t, 4)
	tbl.Insert(New(10, 5))

	err := recoverError(t, func() { tbl.Insert(New(10, 1)) })
	assert.True(t, errors.Is(err, ErrDuplicateBlock))
	assert.True(t, errors.HasAssertionFailure(err))
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_InsertFullPanics(t *testing.T) {
	tbl := newTestTable(t, 2)
	tbl.Insert(New(0, 1))
	tbl.Insert(New(1, 1))
	require.True(t, tbl.Full())

	err := recoverError(t, func() { tbl.Insert(New(2, 1)) })
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
}

func TestTable_RemoveAndTombstone(t *testing.T) {
	tbl := newTestTable(t, 4)
	for _, s := range []int{0, 10, 20} {
		tbl.Insert(New(s, 5))
	}

	assert.True(t, tbl.Remove(New(10, 0)), "size is irrelevant for lookup")
	assert.Equal(t, []int{0, 20}, starts(tbl))

	ts, ok := tbl.Tombstone(2)
	require.True(t, ok)
	assert.False(t, ts.Active, "vacated tail slot is a tombstone")

	_, ok = tbl.Tombstone(1)
	assert.False(t, ok, "live slot is not a tombstone")
}

func TestTable_RemoveMissingIsNoop(t *testing.T) {
	tbl := newTestTable(t, 4)
	tbl.Insert(New(0, 5))

	assert.False(t, tbl.Remove(New(3, 0)))
	assert.False(t, newTestTable(t, 1).Remove(New(0, 0)), "empty table")
	assert.Equal(t, []int{0}, starts(tbl))
}

func TestTable_SearchAndPosition(t *testing.T) {
	tbl := newTestTable(t, 8)
	for _, s := range []int{0, 10, 20, 30} {
		tbl.Insert(New(s, 5))
	}

	i, found := tbl.Search(20)
	assert.True(t, found)
	assert.Equal(t, 2, i)

	i, found = tbl.Search(15)
	assert.False(t, found)
	assert.Equal(t, 2, i, "insertion point")

	assert.Equal(t, 3, tbl.Position(30))
	assert.Equal(t, -1, tbl.Position(31))
}

func TestTable_PtrUpdatesInPlace(t *testing.T) {
	tbl := newTestTable(t, 2)
	tbl.Insert(New(0, 5))

	p := tbl.Ptr(0)
	require.NotNil(t, p)
	p.Size = 50
	b, _ := tbl.Get(0)
	assert.Equal(t, 50, b.Size)

	assert.Nil(t, tbl.Ptr(1))
}

func TestTable_SortedAfterMixedOps(t *testing.T) {
	tbl := newTestTable(t, 64)
	present := map[int]bool{}
	// Deterministic interleaving of inserts and removes.
	for i := range 200 {
		s := (i * 37) % 97
		if present[s] {
			tbl.Remove(New(s, 0))
			delete(present, s)
		} else if !tbl.Full() {
			tbl.Insert(New(s, 1))
			present[s] = true
		}
		sl := tbl.Slice()
		for j := 1; j < len(sl); j++ {
			require.Less(t, sl[j-1].Start, sl[j].Start, "step %d", i)
		}
		require.Equal(t, len(present), tbl.Len())
	}
}
