package buffer

import (
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntList(t *testing.T, capacity int) *List[int] {
	t.Helper()
	l, err := NewList[int](newTrackingAllocator(), capacity)
	require.NoError(t, err)
	t.Cleanup(l.Release)
	return l
}

func TestList_InsertShiftsSuffix(t *testing.T) {
	l := newIntList(t, 8)

	require.NoError(t, l.Insert(0, 3))
	require.NoError(t, l.Insert(0, 1))
	require.NoError(t, l.Insert(1, 2))
	require.NoError(t, l.Insert(3, 4)) // index == Len appends

	assert.Equal(t, []int{1, 2, 3, 4}, l.Slice())
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, 8, l.Cap())
}

func TestList_InsertBounds(t *testing.T) {
	l := newIntList(t, 2)

	assert.True(t, errors.Is(l.Insert(1, 9), ErrIndexOutOfBounds), "index past Len")
	assert.True(t, errors.Is(l.Insert(-1, 9), ErrIndexOutOfBounds))

	require.NoError(t, l.Push(1))
	require.NoError(t, l.Push(2))
	assert.True(t, l.Full())
	assert.True(t, errors.Is(l.Push(3), ErrCapacityExceeded))
	assert.Equal(t, []int{1, 2}, l.Slice(), "failed insert leaves contents unchanged")
}

func TestList_RemoveShiftsLeft(t *testing.T) {
	l := newIntList(t, 8)
	for _, v := range []int{10, 20, 30, 40} {
		require.NoError(t, l.Push(v))
	}

	v, err := l.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, 20, v)
	assert.Equal(t, []int{10, 30, 40}, l.Slice())

	v, err = l.Remove(0)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	assert.Equal(t, []int{30, 40}, l.Slice())

	_, err = l.Remove(2)
	assert.True(t, errors.Is(err, ErrIndexOutOfBounds), "index == Len is not removable")
}

func TestList_PopTakesLastElement(t *testing.T) {
	l := newIntList(t, 4)
	require.NoError(t, l.Push(1))
	require.NoError(t, l.Push(2))

	v, err := l.Pop()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = l.Pop()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = l.Pop()
	assert.True(t, errors.Is(err, ErrIndexOutOfBounds), "pop on empty list fails")
}

func TestList_GetSetBoundedByLen(t *testing.T) {
	l := newIntList(t, 4)
	require.NoError(t, l.Push(5))

	_, err := l.Get(1)
	assert.True(t, errors.Is(err, ErrIndexOutOfBounds), "slot past Len is not readable")
	require.NoError(t, l.Set(0, 6))
	v, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 6, v)
}

func TestList_All(t *testing.T) {
	l := newIntList(t, 4)
	for _, v := range []int{7, 8, 9} {
		require.NoError(t, l.Push(v))
	}

	var got []int
	for i, v := range l.All() {
		assert.Equal(t, i+7, v)
		got = append(got, v)
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []int{7, 8}, got)
}

func TestList_AtBorrowed(t *testing.T) {
	backing := make([]int64, 4)
	l := ListAt[int64](unsafe.Pointer(&backing[0]), len(backing))
	assert.Equal(t, Borrowed, l.Ownership())
	assert.Zero(t, l.Len())

	require.NoError(t, l.Push(42))
	assert.Equal(t, int64(42), backing[0])

	l.Release()
	assert.Equal(t, int64(42), backing[0])
	assert.True(t, errors.Is(l.Push(1), ErrReleased))
}

func TestList_ReleaseDropsOnlyLive(t *testing.T) {
	dropCounts = [8]int{}
	a := newTrackingAllocator()
	l, err := NewList[dropCounter](a, 4)
	require.NoError(t, err)

	require.NoError(t, l.Push(dropCounter{slot: 3}))
	require.NoError(t, l.Push(dropCounter{slot: 3}))
	l.Release()

	assert.Equal(t, 2, dropCounts[3])
	assert.Equal(t, 1, a.frees)
	assert.Zero(t, l.Len())
}
