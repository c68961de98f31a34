// Package format holds the layout constants and alignment arithmetic shared by
// the arena, the block table, and the region helpers. Everything here is pure
// integer math so the packages that place data structures by pointer
// arithmetic agree on the same numbers.
package format

const (
	// MaxAlign is the largest alignment the allocator promises to honor. The
	// payload base is rounded up to this boundary so offset alignment and
	// address alignment coincide for every supported request.
	MaxAlign = 0x1000

	// MaxAlignMask is MaxAlign-1, used for bit-masking alignment operations.
	MaxAlignMask = MaxAlign - 1

	// PageSize is the granularity of regions obtained from the OS.
	PageSize = 0x1000

	// DescriptorReserveFraction is the share of the aligned region set aside
	// for the block table when the caller does not override it.
	DescriptorReserveFraction = 0.1

	// MinAlign is the smallest alignment accepted (byte granularity).
	MinAlign = 1
)
