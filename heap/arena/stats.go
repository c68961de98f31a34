package arena

// allocatorStats holds call counters maintained by the arena.
type allocatorStats struct {
	AllocCalls     int   // Total Alloc() calls, including those made by Resize
	AllocFailures  int   // Alloc() calls that returned an error
	FreeCalls      int   // Total Free() calls
	InvalidFrees   int   // Free() calls ignored because the pointer was not a live block
	ResizeCalls    int   // Total Resize() calls
	ResizeInPlace  int   // Resizes satisfied without moving
	ResizeMoved    int   // Resizes that allocated, copied and freed
	BytesAllocated int64 // Total bytes handed out
	BytesFreed     int64 // Total bytes returned
}

// Stats is a point-in-time view of arena occupancy and call counters.
type Stats struct {
	PayloadBytes       int // Size of the payload sub-region
	DescriptorBytes    int // Size of the descriptor sub-region
	DescriptorCapacity int // Maximum number of live blocks
	Blocks             int // Live blocks
	LiveBytes          int // Sum of live block sizes
	FreeBytes          int // PayloadBytes - LiveBytes
	Gaps               int // Number of free spans
	LargestGap         int // Largest free span

	// Fragmentation is 1 - LargestGap/FreeBytes: 0 when all free space is one
	// span, approaching 1 as it splinters.
	Fragmentation float64

	AllocCalls     int
	AllocFailures  int
	FreeCalls      int
	InvalidFrees   int
	ResizeCalls    int
	ResizeInPlace  int
	ResizeMoved    int
	BytesAllocated int64
	BytesFreed     int64
}

// Stats walks the table and returns occupancy and counters.
func (a *Arena) Stats() Stats {
	s := Stats{
		PayloadBytes:       a.payload.Len,
		DescriptorBytes:    a.descs.Len,
		DescriptorCapacity: a.table.Cap(),
		Blocks:             a.table.Len(),
		AllocCalls:         a.stats.AllocCalls,
		AllocFailures:      a.stats.AllocFailures,
		FreeCalls:          a.stats.FreeCalls,
		InvalidFrees:       a.stats.InvalidFrees,
		ResizeCalls:        a.stats.ResizeCalls,
		ResizeInPlace:      a.stats.ResizeInPlace,
		ResizeMoved:        a.stats.ResizeMoved,
		BytesAllocated:     a.stats.BytesAllocated,
		BytesFreed:         a.stats.BytesFreed,
	}
	for b := range a.table.Blocks() {
		s.LiveBytes += b.Size
	}
	for g := range a.table.Gaps(a.payload.Len) {
		s.Gaps++
		s.LargestGap = max(s.LargestGap, g.Len())
	}
	s.FreeBytes = s.PayloadBytes - s.LiveBytes
	if s.FreeBytes > 0 {
		s.Fragmentation = 1 - float64(s.LargestGap)/float64(s.FreeBytes)
	}
	return s
}
