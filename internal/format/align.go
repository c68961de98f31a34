package format

import "golang.org/x/exp/constraints"

// Alignment helpers for region and block placement. All helpers assume align
// is a power of two; callers validate that with IsPow2 first.

// IsPow2 reports whether n is a non-zero power of two.
//
// Example:
//
//	IsPow2(0)    = false
//	IsPow2(1)    = true
//	IsPow2(4096) = true
//	IsPow2(24)   = false
func IsPow2[T constraints.Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// AlignUp returns n rounded up to the next multiple of align.
//
// Example:
//
//	AlignUp(10, 1)  = 10
//	AlignUp(10, 8)  = 16
//	AlignUp(16, 8)  = 16
//	AlignUp(1, 4096) = 4096
func AlignUp[T constraints.Integer](n, align T) T {
	return (n + align - 1) &^ (align - 1)
}

// AlignDown returns n rounded down to the previous multiple of align.
func AlignDown[T constraints.Integer](n, align T) T {
	return n &^ (align - 1)
}

// PadTo returns the number of bytes needed to move n up to a multiple of
// align. It is zero when n is already aligned.
//
// Example:
//
//	PadTo(0x1000, 0x1000) = 0
//	PadTo(0x1001, 0x1000) = 0xFFF
func PadTo[T constraints.Integer](n, align T) T {
	return AlignUp(n, align) - n
}

// IsAligned reports whether n is a multiple of align.
func IsAligned[T constraints.Integer](n, align T) bool {
	return n&(align-1) == 0
}

// AlignMax rounds n up to MaxAlign.
func AlignMax(n uintptr) uintptr {
	return (n + MaxAlignMask) &^ MaxAlignMask
}
