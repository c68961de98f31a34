package buffer

import (
	"iter"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// List is a length-tracked sequence over a fixed-capacity Array. Elements
// [0, Len) are live; slots [Len, Cap) hold stale or zero data.
type List[T any] struct {
	arr *Array[T]
	n   int
}

// NewList obtains storage for capacity elements from a and returns an empty
// owning List.
func NewList[T any](a Allocator, capacity int) (*List[T], error) {
	arr, err := New[T](a, capacity)
	if err != nil {
		return nil, err
	}
	return &List[T]{arr: arr}, nil
}

// ListAt returns an empty List over caller-owned storage at ptr. It never
// fails and never frees ptr.
func ListAt[T any](ptr unsafe.Pointer, capacity int) *List[T] {
	return &List[T]{arr: At[T](ptr, capacity)}
}

// Len returns the number of live elements.
func (l *List[T]) Len() int { return l.n }

// Cap returns the number of element slots.
func (l *List[T]) Cap() int { return l.arr.Cap() }

// Full reports whether another Insert would exceed capacity.
func (l *List[T]) Full() bool { return l.n >= l.arr.Cap() }

// Raw returns the underlying array, including the slots past Len.
func (l *List[T]) Raw() *Array[T] { return l.arr }

// Ownership reports whether the list owns or borrows its storage.
func (l *List[T]) Ownership() Ownership { return l.arr.Ownership() }

// Slice returns a view of the live elements. The view aliases the storage and
// is invalidated by Insert, Remove and Release.
func (l *List[T]) Slice() []T {
	s := l.arr.Slice()
	if s == nil {
		return nil
	}
	return s[:l.n]
}

// Ptr returns a pointer to live element i.
func (l *List[T]) Ptr(i int) (*T, error) {
	if i < 0 || i >= l.n {
		return nil, errors.Wrapf(ErrIndexOutOfBounds, "index %d, length %d", i, l.n)
	}
	return l.arr.Ptr(i)
}

// Get returns live element i.
func (l *List[T]) Get(i int) (T, error) {
	p, err := l.Ptr(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// Set overwrites live element i.
func (l *List[T]) Set(i int, v T) error {
	p, err := l.Ptr(i)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Insert places v at index i, shifting [i, Len) one slot toward the end.
// Valid indexes are [0, Len].
func (l *List[T]) Insert(i int, v T) error {
	if l.arr.Released() {
		return ErrReleased
	}
	if i < 0 || i > l.n {
		return errors.Wrapf(ErrIndexOutOfBounds, "insert at %d, length %d", i, l.n)
	}
	if l.n >= l.arr.Cap() {
		return errors.Wrapf(ErrCapacityExceeded, "length %d, capacity %d", l.n, l.arr.Cap())
	}
	s := l.arr.Slice()
	copy(s[i+1:l.n+1], s[i:l.n])
	s[i] = v
	l.n++
	return nil
}

// Remove takes element i out, shifting [i+1, Len) one slot toward the front.
// The vacated tail slot keeps its old bytes.
func (l *List[T]) Remove(i int) (T, error) {
	var zero T
	if l.arr.Released() {
		return zero, ErrReleased
	}
	if i < 0 || i >= l.n {
		return zero, errors.Wrapf(ErrIndexOutOfBounds, "remove at %d, length %d", i, l.n)
	}
	s := l.arr.Slice()
	v := s[i]
	copy(s[i:l.n-1], s[i+1:l.n])
	l.n--
	return v, nil
}

// Push appends v.
func (l *List[T]) Push(v T) error {
	return l.Insert(l.n, v)
}

// Pop removes and returns the last element.
func (l *List[T]) Pop() (T, error) {
	return l.Remove(l.n - 1)
}

// All iterates over the live elements in order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range l.Slice() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Release drops the live elements and frees owned storage.
func (l *List[T]) Release() {
	l.arr.release(l.n)
	l.n = 0
}
