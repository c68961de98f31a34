package buffer

import (
	"unsafe"
)

// trackingAllocator hands out Go-heap memory and records every Free so tests
// can assert ownership rules.
type trackingAllocator struct {
	live   map[unsafe.Pointer][]byte
	allocs int
	frees  int
	fail   bool
}

func newTrackingAllocator() *trackingAllocator {
	return &trackingAllocator{live: make(map[unsafe.Pointer][]byte)}
}

func (a *trackingAllocator) Alloc(size, align uintptr) unsafe.Pointer {
	if a.fail {
		return nil
	}
	raw := make([]byte, size+align)
	base := unsafe.Pointer(unsafe.SliceData(raw))
	pad := (align - uintptr(base)%align) % align
	p := unsafe.Add(base, pad)
	a.live[p] = raw
	a.allocs++
	return p
}

func (a *trackingAllocator) Free(p unsafe.Pointer) {
	if _, ok := a.live[p]; !ok {
		panic("free of unknown pointer")
	}
	delete(a.live, p)
	a.frees++
}

// dropCounter counts Drop calls through a shared counter slot. It stays
// pointer-free by indexing into a package-level table.
type dropCounter struct {
	slot int
}

var dropCounts [8]int

func (d *dropCounter) Drop() { dropCounts[d.slot]++ }
