package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/kheap/heap/block"
	"github.com/joshuapare/kheap/internal/region"
)

// reserveFor returns a ReserveBytes value that yields exactly n descriptor
// slots for a payload of payloadLen bytes.
func reserveFor(payloadLen, n int) int {
	pad := (block.Align - payloadLen%block.Align) % block.Align
	return pad + n*block.Size
}

// newTestArena maps a page-aligned region and builds an arena whose payload is
// exactly payloadLen bytes with room for slots descriptors.
func newTestArena(t testing.TB, payloadLen, slots int) *Arena {
	t.Helper()
	reserve := reserveFor(payloadLen, slots)
	mem, cleanup, err := region.Map(payloadLen + reserve)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	a, err := New(mem, &Config{ReserveBytes: reserve})
	require.NoError(t, err)
	require.Equal(t, payloadLen, a.Payload().Len)
	require.Equal(t, slots, a.Capacity())
	return a
}

// offsetOf returns p's payload offset, failing the test when p is outside.
func offsetOf(t testing.TB, a *Arena, p unsafe.Pointer) int {
	t.Helper()
	off, ok := a.Payload().Offset(p)
	require.True(t, ok, "pointer %#x outside payload", uintptr(p))
	return off
}

// mustAlloc allocates with align 1 and returns the pointer and its offset.
func mustAlloc(t testing.TB, a *Arena, size int) (unsafe.Pointer, int) {
	t.Helper()
	p, err := a.Alloc(size, 1, false)
	require.NoError(t, err, "Alloc(%d)", size)
	return p, offsetOf(t, a, p)
}

// fill writes v over the whole block at p.
func fill(t testing.TB, a *Arena, p unsafe.Pointer, v byte) {
	t.Helper()
	b, ok := a.Bytes(p)
	require.True(t, ok)
	for i := range b {
		b[i] = v
	}
}
