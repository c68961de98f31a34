// Package heap is the process-wide allocator facade.
//
// # Overview
//
// An Allocator starts Uninitialized. The first successful Init (or InitAt,
// InitMapped) hands it a memory region and moves it to Initialized; every
// later Init is a silent no-op. Until then every allocation returns nil and
// Free does nothing.
//
// After initialization all traffic flows to a single arena.Arena:
//
//	caller -> heap.Allocator -> arena.Arena -> block.Table
//
// The facade follows the null-on-failure convention of a runtime memory
// hook: Alloc, AllocZeroed and Resize return nil when the request cannot be
// served, and Err reports why.
//
// # Usage Example
//
//	release, err := heap.InitMapped(16 << 20)
//	if err != nil {
//	    return err
//	}
//	defer release()
//
//	p := heap.Alloc(128, 16)
//	if p == nil {
//	    return heap.Err()
//	}
//	defer heap.Free(p)
//
//	// Growable containers can draw from the same heap.
//	l, err := buffer.NewList[uint32](heap.Default, 64)
//
// # Thread Safety
//
// Every Allocator method takes an internal mutex, so the facade may be shared
// between goroutines. The arena underneath is single-owner; use Inspect to
// look at it while holding the lock.
package heap
