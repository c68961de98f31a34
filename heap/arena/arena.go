package arena

import (
	"log/slog"
	"slices"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/kheap/heap/block"
	"github.com/joshuapare/kheap/internal/buf"
	"github.com/joshuapare/kheap/internal/format"
	"github.com/joshuapare/kheap/internal/logger"
)

// MaxAlign is the largest alignment Alloc and Resize accept.
const MaxAlign = format.MaxAlign

// Arena owns one memory region and hands out blocks of its payload.
type Arena struct {
	region []byte // original region; keeps Go-heap backed regions alive

	payload Span
	descs   Span
	table   *block.Table

	log   *slog.Logger
	stats allocatorStats
}

// New builds an arena over region. The region must stay valid, and must not
// be touched by the caller, for as long as the arena is in use.
func New(region []byte, cfg *Config) (*Arena, error) {
	if len(region) == 0 {
		return nil, errors.Wrap(ErrRegionTooSmall, "empty region")
	}
	a, err := NewAt(unsafe.Pointer(unsafe.SliceData(region)), len(region), cfg)
	if err != nil {
		return nil, err
	}
	a.region = region
	return a, nil
}

// NewAt builds an arena over length bytes starting at base, the form a boot
// path that only has an address and a size uses.
func NewAt(base unsafe.Pointer, length int, cfg *Config) (*Arena, error) {
	if base == nil {
		return nil, errors.Wrap(ErrRegionTooSmall, "nil base")
	}
	if cfg == nil {
		cfg = &DefaultConfig
	}

	pad := int(format.PadTo(uintptr(base), MaxAlign))
	if pad >= length {
		return nil, errors.Wrapf(ErrRegionTooSmall, "length %d leaves nothing after %d bytes of alignment padding", length, pad)
	}
	alignedLen := length - pad

	reserved := cfg.reserve(alignedLen)
	payloadLen := alignedLen - reserved
	if reserved < 0 || payloadLen <= 0 {
		return nil, errors.Wrapf(ErrRegionTooSmall, "aligned length %d, reserved %d", alignedLen, reserved)
	}

	// The descriptor array starts at the split, rounded up so the table's
	// elements are naturally aligned.
	descOff := format.AlignUp(payloadLen, block.Align)
	descLen := max(alignedLen-descOff, 0)
	capacity := descLen / block.Size
	if capacity == 0 {
		return nil, errors.Wrapf(ErrRegionTooSmall, "reserved %d bytes holds no %d-byte descriptor", reserved, block.Size)
	}

	payloadBase := unsafe.Add(base, pad)
	a := &Arena{
		payload: Span{Base: payloadBase, Len: payloadLen},
		descs:   Span{Base: unsafe.Add(payloadBase, descOff), Len: descLen},
		log:     cfg.Logger,
	}
	if a.log == nil {
		a.log = logger.L
	}
	a.table = block.TableAt(a.descs.Base, capacity)

	a.log.Debug("arena init",
		"base", uintptr(base), "length", length, "pad", pad,
		"payload", payloadLen, "reserved", reserved, "descriptors", capacity)
	return a, nil
}

// Payload returns the payload sub-region.
func (a *Arena) Payload() Span { return a.payload }

// Descriptors returns the descriptor sub-region.
func (a *Arena) Descriptors() Span { return a.descs }

// Len returns the number of live blocks.
func (a *Arena) Len() int { return a.table.Len() }

// Capacity returns the maximum number of live blocks.
func (a *Arena) Capacity() int { return a.table.Cap() }

// Blocks returns a snapshot of the live blocks in ascending order.
func (a *Arena) Blocks() []block.Block {
	return slices.Clone(a.table.Slice())
}

// Alloc reserves size bytes aligned to align and returns their address. When
// zero is set the bytes are cleared; otherwise they hold whatever the payload
// held before.
func (a *Arena) Alloc(size, align int, zero bool) (unsafe.Pointer, error) {
	a.stats.AllocCalls++

	start, err := a.place(size, align)
	if err != nil {
		a.stats.AllocFailures++
		a.log.Debug("alloc failed", "size", size, "align", align, "err", err)
		return nil, err
	}

	a.table.Insert(block.New(start, size))
	if zero {
		clear(a.payload.Bytes(start, size))
	}

	a.stats.BytesAllocated += int64(size)
	a.log.Debug("alloc", "size", size, "align", align, "start", start, "zero", zero)
	return a.payload.At(start), nil
}

// place picks the offset for a new block.
func (a *Arena) place(size, align int) (int, error) {
	if size <= 0 {
		return 0, errors.Wrapf(ErrZeroSize, "size=%d", size)
	}
	if size >= a.payload.Len {
		return 0, errors.Wrapf(ErrRequestTooLarge, "size=%d payload=%d", size, a.payload.Len)
	}
	if err := checkAlign(align); err != nil {
		return 0, err
	}
	padded, ok := buf.PaddedSize(size, align)
	if !ok {
		return 0, errors.Wrapf(ErrRequestTooLarge, "size=%d align=%d overflows", size, align)
	}

	last, ok := a.table.Last()
	if !ok {
		return 0, nil
	}
	if a.payload.Len-last.End() >= padded {
		return format.AlignUp(last.End(), align), nil
	}
	if first, _ := a.table.First(); first.Start >= padded {
		return 0, nil
	}

	// Last fit wins: every fitting gap overwrites the candidate.
	start, found := 0, false
	for win := range a.table.Windows(2).All() {
		if win[1].Start-win[0].End() >= padded {
			start, found = format.AlignUp(win[0].End(), align), true
		}
	}
	if !found {
		return 0, errors.Wrapf(ErrOutOfMemory, "size=%d align=%d blocks=%d", size, align, a.table.Len())
	}
	return start, nil
}

func checkAlign(align int) error {
	if !format.IsPow2(align) || align > MaxAlign {
		return errors.Wrapf(ErrUnsupportedAlignment, "align=%d", align)
	}
	return nil
}

// Free releases the block starting at p. Pointers this arena never returned,
// including nil, are ignored.
func (a *Arena) Free(p unsafe.Pointer) {
	a.stats.FreeCalls++

	start, ok := a.payload.Offset(p)
	if !ok {
		a.stats.InvalidFrees++
		a.log.Debug("free ignored: outside payload", "ptr", uintptr(p))
		return
	}
	i, found := a.table.Search(start)
	if !found {
		a.stats.InvalidFrees++
		a.log.Debug("free ignored: untracked start", "start", start)
		return
	}
	b, _ := a.table.Get(i)
	a.table.Remove(b)
	a.stats.BytesFreed += int64(b.Size)
	a.log.Debug("free", "start", start, "size", b.Size)
}

// Resize changes the size of the block at p. The block grows or shrinks in
// place when the span up to the next block (or the payload end) covers
// newSize and the existing start already satisfies align. Otherwise a new
// block is allocated, the first min(old, new) bytes are copied, and the old
// block is freed. On error the original block is untouched.
func (a *Arena) Resize(p unsafe.Pointer, newSize, align int) (unsafe.Pointer, error) {
	a.stats.ResizeCalls++

	start, ok := a.payload.Offset(p)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidPointer, "ptr=%#x outside payload", uintptr(p))
	}
	if newSize <= 0 {
		return nil, errors.Wrapf(ErrZeroSize, "size=%d", newSize)
	}
	if err := checkAlign(align); err != nil {
		return nil, err
	}

	pos := a.table.Position(start)
	if pos < 0 {
		return nil, errors.Wrapf(ErrInvalidPointer, "no block at offset %d", start)
	}
	cur, _ := a.table.Get(pos)

	limit := a.payload.Len
	if next, ok := a.table.Get(pos + 1); ok {
		limit = next.Start
	}
	if limit-cur.Start >= newSize && format.IsAligned(cur.Start, align) {
		a.table.Ptr(pos).Size = newSize
		a.stats.ResizeInPlace++
		a.log.Debug("resize in place", "start", start, "old", cur.Size, "new", newSize)
		return p, nil
	}

	np, err := a.Alloc(newSize, align, false)
	if err != nil {
		return nil, errors.Wrapf(err, "resize %d -> %d", cur.Size, newSize)
	}
	newStart, _ := a.payload.Offset(np)
	n := min(cur.Size, newSize)
	copy(a.payload.Bytes(newStart, n), a.payload.Bytes(cur.Start, n))
	a.Free(p)

	a.stats.ResizeMoved++
	a.log.Debug("resize moved", "from", cur.Start, "to", newStart, "old", cur.Size, "new", newSize)
	return np, nil
}

// Owns reports whether p is the start of a live block.
func (a *Arena) Owns(p unsafe.Pointer) bool {
	start, ok := a.payload.Offset(p)
	if !ok {
		return false
	}
	_, found := a.table.Search(start)
	return found
}

// Block returns the descriptor for the live block starting at p.
func (a *Arena) Block(p unsafe.Pointer) (block.Block, bool) {
	start, ok := a.payload.Offset(p)
	if !ok {
		return block.Block{}, false
	}
	i, found := a.table.Search(start)
	if !found {
		return block.Block{}, false
	}
	return a.table.Get(i)
}

// Bytes returns a view of the live block starting at p. The view is valid
// until the block is freed or moved by Resize.
func (a *Arena) Bytes(p unsafe.Pointer) ([]byte, bool) {
	b, ok := a.Block(p)
	if !ok {
		return nil, false
	}
	return a.payload.Bytes(b.Start, b.Size), true
}

// PayloadBytes returns a view of n payload bytes starting at off.
func (a *Arena) PayloadBytes(off, n int) ([]byte, error) {
	if _, err := buf.CheckSpan(a.payload.Len, off, n); err != nil {
		return nil, errors.Wrap(err, "arena: payload view")
	}
	return a.payload.Bytes(off, n), nil
}

// CheckInvariants verifies that every live descriptor is active, non-empty,
// inside the payload, strictly ascending and non-overlapping.
func (a *Arena) CheckInvariants() error {
	prevEnd := 0
	for i, b := range a.table.Slice() {
		if !b.Active {
			return errors.Wrapf(ErrInvariant, "block %d %s is a tombstone", i, b)
		}
		if b.Size <= 0 {
			return errors.Wrapf(ErrInvariant, "block %d %s is empty", i, b)
		}
		if _, err := buf.CheckSpan(a.payload.Len, b.Start, b.Size); err != nil {
			return errors.Wrapf(ErrInvariant, "block %d %s: %v", i, b, err)
		}
		if i > 0 && b.Start < prevEnd {
			return errors.Wrapf(ErrInvariant, "block %d %s overlaps or precedes previous end %d", i, b, prevEnd)
		}
		prevEnd = b.End()
	}
	return nil
}
