//go:build unix

// Package region obtains the raw memory region an arena is carved from. On
// unix it is an anonymous private mapping, which is page aligned and lives
// outside the Go heap, the closest stand-in for a region handed over by a
// bootloader.
package region

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// Map reserves size bytes of zeroed, read-write memory and returns it with a
// cleanup func that releases the mapping. Calling cleanup twice is a no-op.
func Map(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, errors.Wrapf(ErrSize, "size=%d", size)
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "region: mmap %d bytes", size)
	}
	released := false
	cleanup := func() error {
		if released {
			return nil
		}
		released = true
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}
