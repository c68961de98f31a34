package buffer

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/kheap/internal/buf"
)

// Ownership records who is responsible for releasing a buffer's storage.
type Ownership uint8

const (
	// Borrowed storage belongs to the caller and is never freed by the buffer.
	Borrowed Ownership = iota
	// Owned storage came from an Allocator and is freed by Release.
	Owned
)

// String returns the ownership name.
func (o Ownership) String() string {
	if o == Owned {
		return "owned"
	}
	return "borrowed"
}

// Allocator is the raw allocation hook owned buffers draw from. Alloc returns
// nil on failure, matching the allocator facade's contract.
type Allocator interface {
	Alloc(size, align uintptr) unsafe.Pointer
	Free(p unsafe.Pointer)
}

// Dropper is implemented by element types that hold a resource which must be
// released when an owning buffer is released.
type Dropper interface {
	Drop()
}

// Array is a fixed-capacity buffer of T over raw storage.
type Array[T any] struct {
	ptr      unsafe.Pointer
	cap      int
	own      Ownership
	alloc    Allocator // nil for Borrowed and for zero-byte owned arrays
	released bool
}

// zeroBase is the address handed out for arrays that occupy no bytes.
var zeroBase uintptr

// New obtains storage for capacity elements of T from a and returns an owning
// Array. The contents are whatever the allocator hands back.
func New[T any](a Allocator, capacity int) (*Array[T], error) {
	if capacity < 0 {
		return nil, errors.Wrapf(ErrIndexOutOfBounds, "negative capacity %d", capacity)
	}
	arr := &Array[T]{cap: capacity, own: Owned}

	var zero T
	size, ok := buf.MulOverflowSafe(capacity, int(unsafe.Sizeof(zero)))
	if !ok {
		return nil, errors.Wrapf(ErrAllocation, "capacity %d overflows", capacity)
	}
	if size == 0 {
		arr.ptr = unsafe.Pointer(&zeroBase)
		return arr, nil
	}
	if a == nil {
		return nil, errors.Wrap(ErrAllocation, "nil allocator")
	}
	p := a.Alloc(uintptr(size), unsafe.Alignof(zero))
	if p == nil {
		return nil, errors.Wrapf(ErrAllocation, "%d bytes", size)
	}
	arr.ptr = p
	arr.alloc = a
	return arr, nil
}

// At wraps caller-owned storage at ptr holding capacity elements of T. The
// returned Array never frees ptr. ptr must be aligned for T.
func At[T any](ptr unsafe.Pointer, capacity int) *Array[T] {
	if ptr == nil || capacity < 0 {
		capacity = 0
	}
	return &Array[T]{ptr: ptr, cap: capacity, own: Borrowed}
}

// Cap returns the number of element slots.
func (a *Array[T]) Cap() int { return a.cap }

// Ownership reports whether the array owns or borrows its storage.
func (a *Array[T]) Ownership() Ownership { return a.own }

// Released reports whether Release has been called.
func (a *Array[T]) Released() bool { return a.released }

// Base returns the address of element 0.
func (a *Array[T]) Base() unsafe.Pointer { return a.ptr }

// Slice returns a view of all capacity slots. The view aliases the storage and
// must not be used after Release.
func (a *Array[T]) Slice() []T {
	if a.ptr == nil || a.released {
		return nil
	}
	return unsafe.Slice((*T)(a.ptr), a.cap)
}

// Ptr returns a pointer to slot i.
func (a *Array[T]) Ptr(i int) (*T, error) {
	if a.released {
		return nil, ErrReleased
	}
	if i < 0 || i >= a.cap {
		return nil, errors.Wrapf(ErrIndexOutOfBounds, "index %d, capacity %d", i, a.cap)
	}
	var zero T
	return (*T)(unsafe.Add(a.ptr, uintptr(i)*unsafe.Sizeof(zero))), nil
}

// Get returns the value in slot i.
func (a *Array[T]) Get(i int) (T, error) {
	p, err := a.Ptr(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// Set stores v in slot i.
func (a *Array[T]) Set(i int, v T) error {
	p, err := a.Ptr(i)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Release drops every slot and frees owned storage. Borrowed storage is left
// untouched. Calling Release more than once is a no-op.
func (a *Array[T]) Release() {
	a.release(a.cap)
}

// release drops slots [0, live) and frees owned storage.
func (a *Array[T]) release(live int) {
	if a.released {
		return
	}
	a.released = true
	if a.own != Owned || a.ptr == nil {
		return
	}
	defer func() { a.ptr = nil }()
	s := unsafe.Slice((*T)(a.ptr), a.cap)
	for i := range live {
		if d, ok := any(&s[i]).(Dropper); ok {
			d.Drop()
		}
	}
	if a.alloc != nil {
		a.alloc.Free(a.ptr)
	}
}
