package lake

import (
	"fmt"

	"github.com/prokopschield/udp-storage-server-2023/compress"
	"github.com/prokopschield/udp-storage-server-2023/internal/buf"
)

// chunkHeaderSize is the packed width of a DataChunkHeader: hash[50] +
// uncompressed_length:u16 + compressed_length:u16.
const chunkHeaderSize = 54

// slotSize is the arena's alignment grid: every chunk starts on a 256-byte
// boundary.
const slotSize = 256

// Chunk is a handle to one stored blob's on-disk record. It carries the
// parsed header plus enough state to read the payload back out lazily.
type Chunk struct {
	Hash               [50]byte
	UncompressedLength uint16
	CompressedLength   uint16

	// Offset is the chunk's position in the arena, in 256-byte slots.
	Offset uint32

	lake *Lake
}

// chunkAt decodes the chunk header living at arena slot offset.
func chunkAt(l *Lake, offset uint32) (*Chunk, error) {
	byteOffset := int(offset) * slotSize

	header, err := l.mapping.ROSlice(byteOffset, chunkHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("lake: read chunk header at slot %d: %w", offset, err)
	}

	c := &Chunk{
		Offset: offset,
		lake:   l,
	}
	copy(c.Hash[:], header[0:50])
	c.UncompressedLength = buf.U16LE(header[50:52])
	c.CompressedLength = buf.U16LE(header[52:54])

	return c, nil
}

// slotsForAllocSize returns how many 256-byte slots a chunk whose total
// on-disk footprint (header + compressed payload) is allocSize bytes
// requires.
func slotsForAllocSize(allocSize int) uint32 {
	return uint32((allocSize-1)>>8) + 1
}

// readCompressed returns the chunk's raw compressed payload bytes.
func (c *Chunk) readCompressed() ([]byte, error) {
	byteOffset := int(c.Offset)*slotSize + chunkHeaderSize
	return c.lake.mapping.ROSlice(byteOffset, int(c.CompressedLength))
}

// Read decompresses and returns the chunk's payload.
func (c *Chunk) Read() ([]byte, error) {
	compressed, err := c.readCompressed()
	if err != nil {
		return nil, err
	}

	data, err := compress.Decompress(compressed, int(c.UncompressedLength))
	if err != nil {
		return nil, fmt.Errorf("lake: decompress chunk at slot %d: %w", c.Offset, err)
	}

	return data, nil
}
