package arena

import "unsafe"

// Span is a typed sub-region: a base address and a byte length derived once
// at construction. All offset math is validated against it.
type Span struct {
	Base unsafe.Pointer
	Len  int
}

// Addr returns the base address as an integer.
func (s Span) Addr() uintptr { return uintptr(s.Base) }

// Offset returns p's offset from Base when p falls inside the span.
func (s Span) Offset(p unsafe.Pointer) (int, bool) {
	if p == nil || s.Base == nil {
		return 0, false
	}
	addr, base := uintptr(p), s.Addr()
	if addr < base || addr-base >= uintptr(s.Len) {
		return 0, false
	}
	return int(addr - base), true
}

// At returns the address off bytes past Base.
func (s Span) At(off int) unsafe.Pointer {
	return unsafe.Add(s.Base, off)
}

// Bytes returns a view of [off, off+n) inside the span.
func (s Span) Bytes(off, n int) []byte {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(s.At(off)), n)
}
