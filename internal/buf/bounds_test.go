package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if p, ok := MulOverflowSafe(24, 100); !ok || p != 2400 {
		t.Fatalf("MulOverflowSafe(24,100)=%d,%v want 2400,true", p, ok)
	}
	if p, ok := MulOverflowSafe(0, math.MaxInt); !ok || p != 0 {
		t.Fatalf("MulOverflowSafe(0,MaxInt)=%d,%v want 0,true", p, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2, 3); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := MulOverflowSafe(-1, 3); ok {
		t.Fatalf("negative operands must be rejected")
	}
}

func TestPaddedSize(t *testing.T) {
	if n, ok := PaddedSize(10, 1); !ok || n != 10 {
		t.Fatalf("PaddedSize(10,1)=%d,%v want 10,true", n, ok)
	}
	if n, ok := PaddedSize(10, 16); !ok || n != 25 {
		t.Fatalf("PaddedSize(10,16)=%d,%v want 25,true", n, ok)
	}
	if _, ok := PaddedSize(math.MaxInt, 2); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := PaddedSize(1, 0); ok {
		t.Fatalf("zero alignment must be rejected")
	}
}

func TestCheckSpanAndHas(t *testing.T) {
	if end, err := CheckSpan(100, 10, 20); err != nil || end != 30 {
		t.Fatalf("CheckSpan(100,10,20)=%d,%v want 30,nil", end, err)
	}
	if end, err := CheckSpan(100, 90, 10); err != nil || end != 100 {
		t.Fatalf("span ending at the limit should be valid: %d,%v", end, err)
	}
	if _, err := CheckSpan(100, 95, 10); err == nil {
		t.Fatalf("CheckSpan should fail when extending beyond limit")
	}
	if _, err := CheckSpan(100, -1, 1); err == nil {
		t.Fatalf("CheckSpan should reject negative offset")
	}
	if _, err := CheckSpan(100, 1, -1); err == nil {
		t.Fatalf("CheckSpan should reject negative length")
	}
	if _, err := CheckSpan(math.MaxInt, math.MaxInt, 1); err == nil {
		t.Fatalf("CheckSpan should reject overflow")
	}
	if Has(5, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(5, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}
}
