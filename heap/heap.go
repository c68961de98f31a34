package heap

import (
	"math"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/kheap/heap/arena"
	"github.com/joshuapare/kheap/heap/buffer"
	"github.com/joshuapare/kheap/internal/logger"
	"github.com/joshuapare/kheap/internal/region"
)

// Allocator routes allocation requests to a lazily initialized arena. The
// zero value is an uninitialized allocator with the default arena config.
type Allocator struct {
	mu    sync.Mutex
	cfg   *arena.Config
	arena *arena.Arena // nil until initialized
	err   error        // last failure, for diagnostics
}

// Default is the process-wide allocator used by the package-level functions.
var Default = &Allocator{}

// New returns an uninitialized allocator whose arena will be built with cfg.
// A nil cfg selects arena.DefaultConfig.
func New(cfg *arena.Config) *Allocator {
	return &Allocator{cfg: cfg}
}

// Init hands region to the allocator. The first successful call builds the
// arena; later calls are no-ops and return nil. An error means the region was
// unusable and the allocator is still uninitialized.
func (h *Allocator) Init(region []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.arena != nil {
		return nil
	}
	a, err := arena.New(region, h.cfg)
	return h.install(a, err)
}

// InitAt is Init for a region known only by base address and length, as a
// boot path receives it.
func (h *Allocator) InitAt(base unsafe.Pointer, length int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.arena != nil {
		return nil
	}
	a, err := arena.NewAt(base, length, h.cfg)
	return h.install(a, err)
}

// InitMapped maps a fresh anonymous region of size bytes and initializes the
// allocator with it. The returned release func unmaps the region; call it only
// once nothing allocated from the heap is in use. When the allocator was
// already initialized the mapping is dropped immediately and release is a
// no-op.
func (h *Allocator) InitMapped(size int) (func() error, error) {
	mem, release, err := region.Map(size)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.arena != nil {
		return func() error { return nil }, release()
	}
	a, err := arena.New(mem, h.cfg)
	if err := h.install(a, err); err != nil {
		_ = release()
		return nil, err
	}
	return release, nil
}

func (h *Allocator) install(a *arena.Arena, err error) error {
	if err != nil {
		h.err = err
		logger.Warn("heap init failed", "err", err)
		return err
	}
	h.arena = a
	h.err = nil
	p := a.Payload()
	logger.Info("heap initialized", "payload_base", p.Addr(), "payload_len", p.Len, "descriptors", a.Capacity())
	return nil
}

// Initialized reports whether a region has been installed.
func (h *Allocator) Initialized() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.arena != nil
}

// Err returns the error behind the most recent nil result, or nil.
func (h *Allocator) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Alloc returns size bytes aligned to align, or nil.
func (h *Allocator) Alloc(size, align uintptr) unsafe.Pointer {
	return h.alloc(size, align, false)
}

// AllocZeroed returns size zeroed bytes aligned to align, or nil.
func (h *Allocator) AllocZeroed(size, align uintptr) unsafe.Pointer {
	return h.alloc(size, align, true)
}

func (h *Allocator) alloc(size, align uintptr, zero bool) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.arena == nil {
		h.err = ErrNotInitialized
		return nil
	}
	s, al, err := toInts(size, align)
	if err != nil {
		h.err = err
		return nil
	}
	p, err := h.arena.Alloc(s, al, zero)
	if err != nil {
		h.err = err
		return nil
	}
	return p
}

// Free releases p. Nil, foreign and already-freed pointers are ignored, as
// is every call before initialization.
func (h *Allocator) Free(p unsafe.Pointer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.arena == nil {
		return
	}
	h.arena.Free(p)
}

// Resize grows or shrinks the block at p and returns its (possibly new)
// address, or nil. On nil the block at p is unchanged.
func (h *Allocator) Resize(p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.arena == nil {
		h.err = ErrNotInitialized
		return nil
	}
	s, al, err := toInts(newSize, align)
	if err != nil {
		h.err = err
		return nil
	}
	np, err := h.arena.Resize(p, s, al)
	if err != nil {
		h.err = err
		return nil
	}
	return np
}

// Stats returns arena statistics; ok is false before initialization.
func (h *Allocator) Stats() (arena.Stats, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.arena == nil {
		return arena.Stats{}, false
	}
	return h.arena.Stats(), true
}

// Arena returns the underlying arena, or nil before initialization. The
// arena is not synchronized; prefer Inspect when other goroutines may be
// allocating.
func (h *Allocator) Arena() *arena.Arena {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.arena
}

// Inspect runs fn with the arena while holding the allocator lock. It returns
// false without calling fn before initialization. fn must not call back into
// the Allocator.
func (h *Allocator) Inspect(fn func(a *arena.Arena)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.arena == nil {
		return false
	}
	fn(h.arena)
	return true
}

func toInts(size, align uintptr) (int, int, error) {
	if size > math.MaxInt || align > math.MaxInt {
		return 0, 0, errors.Wrapf(ErrSizeOverflow, "size=%d align=%d", size, align)
	}
	return int(size), int(align), nil
}

var _ buffer.Allocator = (*Allocator)(nil)

// Package-level wrappers over Default.

// Init initializes Default with region.
func Init(region []byte) error { return Default.Init(region) }

// InitAt initializes Default with length bytes at base.
func InitAt(base unsafe.Pointer, length int) error { return Default.InitAt(base, length) }

// InitMapped initializes Default with a fresh mapping of size bytes.
func InitMapped(size int) (func() error, error) { return Default.InitMapped(size) }

// Initialized reports whether Default has a region.
func Initialized() bool { return Default.Initialized() }

// Alloc allocates from Default.
func Alloc(size, align uintptr) unsafe.Pointer { return Default.Alloc(size, align) }

// AllocZeroed allocates zeroed memory from Default.
func AllocZeroed(size, align uintptr) unsafe.Pointer { return Default.AllocZeroed(size, align) }

// Free returns p to Default.
func Free(p unsafe.Pointer) { Default.Free(p) }

// Resize resizes p within Default.
func Resize(p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer {
	return Default.Resize(p, newSize, align)
}

// Err reports Default's most recent failure.
func Err() error { return Default.Err() }
