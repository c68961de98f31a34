//go:build !unix

package region

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/kheap/internal/format"
)

// Map allocates size bytes from the Go heap when mmap is not available. The
// returned slice is trimmed so that it starts on a page boundary.
func Map(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, errors.Wrapf(ErrSize, "size=%d", size)
	}
	raw := make([]byte, size+format.PageSize)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	pad := int(format.PadTo(base, format.PageSize))
	return raw[pad : pad+size : pad+size], func() error { return nil }, nil
}
