// Package buf contains overflow-safe offset arithmetic for code that indexes
// raw memory by integer offsets.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on
// overflow or when either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// PaddedSize returns size + align - 1, the worst-case footprint of a request
// once alignment padding is applied. ok is false on overflow.
func PaddedSize(size, align int) (int, bool) {
	if align < 1 {
		return 0, false
	}
	return AddOverflowSafe(size, align-1)
}

// CheckSpan validates that the span [off, off+n) lies inside [0, limit) and
// returns its end offset.
//
//	end, err := buf.CheckSpan(payloadLen, start, size)
//	if err != nil {
//	    return fmt.Errorf("block: %w", err)
//	}
func CheckSpan(limit, off, n int) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length: %d", n)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + length=%d", off, n)
	}
	if end > limit {
		return 0, fmt.Errorf("bounds: end=%d > limit=%d", end, limit)
	}
	return end, nil
}

// Has reports whether [off, off+n) is within [0, limit).
func Has(limit, off, n int) bool {
	_, err := CheckSpan(limit, off, n)
	return err == nil
}
