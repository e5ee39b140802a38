//go:build !unix && !windows

// Package mmio provides platform-specific helpers for memory-mapping the
// lake's backing file.
package mmio

import (
	"errors"
	"os"
)

// mapFile falls back to reading the whole file when no native mmap
// syscall is available for the host OS.
func mapFile(f *os.File, writable bool) ([]byte, func() error, error) {
	if writable {
		return nil, nil, errors.New("mmio: read-write mapping is not supported on this platform")
	}

	data, err := os.ReadFile(f.Name())
	if err != nil {
		return nil, nil, err
	}

	return data, func() error { return nil }, nil
}
