// Package mmio memory-maps the lake's backing file and exposes
// offset-addressed byte access over it. A mapping stays in place until its
// Mapping's Close is called; it is not reference-counted, so Close unmaps
// it even while byte slices taken from it are still held, and those slices
// become invalid.
package mmio

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Mapping owns a memory mapping over a single file and exposes
// offset-addressed access to it. The zero value is not usable; construct
// one with OpenRO or OpenRW.
type Mapping struct {
	data     []byte
	writable bool
	close    func() error
}

// OpenRO maps path read-only. The file must already exist.
func OpenRO(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmio: open %s: %w", path, err)
	}
	defer f.Close()

	data, closer, err := mapFile(f, false)
	if err != nil {
		return nil, fmt.Errorf("mmio: map %s: %w", path, err)
	}

	return &Mapping{data: data, writable: false, close: closer}, nil
}

// OpenRW maps path for reading and writing, without truncating it. The
// file must already exist.
func OpenRW(path string) (*Mapping, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: open %s: %w", path, err)
	}
	defer f.Close()

	data, closer, err := mapFile(f, true)
	if err != nil {
		return nil, fmt.Errorf("mmio: map %s: %w", path, err)
	}

	return &Mapping{data: data, writable: true, close: closer}, nil
}

// Close unmaps the file. Any byte slices previously handed out by ROSlice
// become invalid after Close returns.
func (m *Mapping) Close() error {
	if m.close == nil {
		return nil
	}
	return m.close()
}

// Writable reports whether the mapping was opened read-write.
func (m *Mapping) Writable() bool {
	return m.writable
}

// Len returns the size of the mapping in bytes.
func (m *Mapping) Len() int {
	return len(m.data)
}

// ROSlice returns a read-only view of m.data[offset : offset+length].
func (m *Mapping) ROSlice(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(m.data) {
		return nil, fmt.Errorf("mmio: slice [%d:%d] out of bounds (len=%d)", offset, offset+length, len(m.data))
	}
	return m.data[offset : offset+length], nil
}

// ReadU32 reads the little-endian uint32 at u32 index idx (byte offset
// idx*4).
func (m *Mapping) ReadU32(idx uint32) (uint32, error) {
	off := int(idx) * 4
	if off < 0 || off+4 > len(m.data) {
		return 0, fmt.Errorf("mmio: u32 index %d out of bounds", idx)
	}
	return binary.LittleEndian.Uint32(m.data[off : off+4]), nil
}

// WriteU32 writes value as a little-endian uint32 at u32 index idx. It
// fails on a read-only mapping.
func (m *Mapping) WriteU32(idx uint32, value uint32) error {
	if !m.writable {
		return fmt.Errorf("mmio: write to read-only mapping")
	}
	off := int(idx) * 4
	if off < 0 || off+4 > len(m.data) {
		return fmt.Errorf("mmio: u32 index %d out of bounds", idx)
	}
	binary.LittleEndian.PutUint32(m.data[off:off+4], value)
	return nil
}

// WriteU32At writes value as a little-endian uint32 at byte offset offset
// (as opposed to WriteU32's u32-index addressing, used by the primary
// index region). It fails on a read-only mapping.
func (m *Mapping) WriteU32At(offset int, value uint32) error {
	if !m.writable {
		return fmt.Errorf("mmio: write to read-only mapping")
	}
	if offset < 0 || offset+4 > len(m.data) {
		return fmt.Errorf("mmio: byte offset %d out of bounds", offset)
	}
	binary.LittleEndian.PutUint32(m.data[offset:offset+4], value)
	return nil
}

// WriteBytes copies data into the mapping starting at byte offset offset.
// It fails on a read-only mapping.
func (m *Mapping) WriteBytes(offset int, data []byte) error {
	if !m.writable {
		return fmt.Errorf("mmio: write to read-only mapping")
	}
	if offset < 0 || offset+len(data) > len(m.data) {
		return fmt.Errorf("mmio: write [%d:%d] out of bounds (len=%d)", offset, offset+len(data), len(m.data))
	}
	copy(m.data[offset:offset+len(data)], data)
	return nil
}
