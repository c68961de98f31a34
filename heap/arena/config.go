package arena

import (
	"log/slog"

	"github.com/joshuapare/kheap/internal/format"
)

// Config controls how an arena splits its region.
type Config struct {
	// ReserveBytes sets the descriptor sub-region size explicitly. When zero,
	// ReserveFraction is used.
	ReserveBytes int

	// ReserveFraction is the share of the aligned region reserved for block
	// descriptors. Zero means format.DescriptorReserveFraction.
	ReserveFraction float64

	// Logger receives allocation debug records. Nil means the package logger.
	Logger *slog.Logger
}

// DefaultConfig reserves 10% of the aligned region for descriptors.
var DefaultConfig = Config{
	ReserveFraction: format.DescriptorReserveFraction,
}

// reserve returns the descriptor sub-region size for an aligned region of
// alignedLen bytes.
func (c *Config) reserve(alignedLen int) int {
	if c.ReserveBytes > 0 {
		return c.ReserveBytes
	}
	f := c.ReserveFraction
	if f <= 0 {
		f = format.DescriptorReserveFraction
	}
	return int(f * float64(alignedLen))
}
