//go:build unix

package mmio

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps f into memory. When writable is true the mapping is
// PROT_READ|PROT_WRITE and MAP_SHARED, so writes are visible to other
// mappings of the same file and are eventually flushed back by the OS.
func mapFile(f *os.File, writable bool) ([]byte, func() error, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}

	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}

	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}

	closed := false
	cleanup := func() error {
		if closed {
			return nil
		}
		closed = true
		return unix.Munmap(data)
	}

	return data, cleanup, nil
}
