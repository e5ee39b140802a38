//go:build windows

package mmio

import (
	"errors"
	"os"
)

// mapFile has no true memory-mapping implementation on Windows in this
// module (the teacher's own Windows path falls back to a plain read for
// the same reason: no cgo, no golang.org/x/sys/windows file-mapping calls
// wired up). Read-only access degrades to reading the whole file into
// memory; read-write access is not supported here.
func mapFile(f *os.File, writable bool) ([]byte, func() error, error) {
	if writable {
		return nil, nil, errors.New("mmio: read-write mapping is not supported on windows")
	}

	data, err := os.ReadFile(f.Name())
	if err != nil {
		return nil, nil, err
	}

	return data, func() error { return nil }, nil
}
