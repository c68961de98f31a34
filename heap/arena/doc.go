// Package arena implements the allocator proper: a single caller-supplied
// memory region split into a payload sub-region and a descriptor sub-region,
// with allocate, free and resize over a sorted table of live blocks.
//
// # Layout
//
// The region base is rounded up to MaxAlign (4 KiB) and the padding is
// discarded. The tail of what remains is reserved for the block table
// (10% by default), and everything before it is payload:
//
//	region  |pad|<------------------- aligned_len ------------------->|
//	        |   |<--------- payload --------->|<-- descriptors ----->|
//	            ^ payload base (4 KiB aligned) ^ split = aligned_len - reserved
//
// Both sub-regions are derived once, with pointer arithmetic over the original
// region. The block table is placed directly into the descriptor sub-region
// and never obtained from an allocator, so constructing an arena cannot
// recurse into the allocator being constructed.
//
// # Placement Policy
//
// Alloc(size, align) tries, in order:
//
//  1. Empty table: offset 0.
//  2. Span after the last block holds size+align-1: right after the last
//     block, rounded up to align.
//  3. Span before the first block holds size+align-1: offset 0.
//  4. Every gap between adjacent blocks. The scan does not stop at the first
//     fit; the last fitting gap in ascending order wins.
//  5. Otherwise ErrOutOfMemory.
//
// # Usage Example
//
//	region, release, err := region.Map(1 << 20)
//	if err != nil {
//	    return err
//	}
//	defer release()
//
//	a, err := arena.New(region, nil)
//	if err != nil {
//	    return err
//	}
//	p, err := a.Alloc(256, 16, true)
//	if err != nil {
//	    return err
//	}
//	defer a.Free(p)
//
// # Thread Safety
//
// Arena instances are not thread-safe. The heap package's facade serializes
// access for the process-wide allocator.
package arena
