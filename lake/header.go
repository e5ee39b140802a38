package lake

import (
	"fmt"

	"github.com/prokopschield/udp-storage-server-2023/internal/buf"
)

// magic identifies a lake file. It must be the first 8 bytes of the file.
const magic = "DataLake"

// headerVersion is the only header layout this build understands.
const headerVersion = 1

// headerSize is the packed, little-endian width of the header, in bytes.
// It fits comfortably inside the first 256-byte slot.
const headerSize = 48

// dataNextOffset is data_next's fixed byte offset within the header,
// the only header field Put mutates after Create.
const dataNextOffset = 28

// Header mirrors the on-disk DataLakeHeader, held at file offset 0.
type Header struct {
	Version        uint32
	FileSize       uint64
	DataSize       uint32
	DataOffset     uint32
	DataNext       uint32
	IndexMod       uint32
	IndexMax       uint32
	IndexOffset    uint32
	IndexOffsetU32 uint32
}

func encodeHeader(h Header) []byte {
	out := make([]byte, headerSize)
	copy(out[0:8], magic)
	buf.PutU32LE(out, 8, h.Version)
	buf.PutU64LE(out, 12, h.FileSize)
	buf.PutU32LE(out, 20, h.DataSize)
	buf.PutU32LE(out, 24, h.DataOffset)
	buf.PutU32LE(out, 28, h.DataNext)
	buf.PutU32LE(out, 32, h.IndexMod)
	buf.PutU32LE(out, 36, h.IndexMax)
	buf.PutU32LE(out, 40, h.IndexOffset)
	buf.PutU32LE(out, 44, h.IndexOffsetU32)
	return out
}

func decodeHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, fmt.Errorf("%w: header truncated", ErrIntegrity)
	}
	if string(data[0:8]) != magic {
		return Header{}, fmt.Errorf("%w: bad magic", ErrIntegrity)
	}

	h := Header{
		Version:        buf.U32LE(data[8:]),
		FileSize:       buf.U64LE(data[12:]),
		DataSize:       buf.U32LE(data[20:]),
		DataOffset:     buf.U32LE(data[24:]),
		DataNext:       buf.U32LE(data[28:]),
		IndexMod:       buf.U32LE(data[32:]),
		IndexMax:       buf.U32LE(data[36:]),
		IndexOffset:    buf.U32LE(data[40:]),
		IndexOffsetU32: buf.U32LE(data[44:]),
	}

	if h.Version != headerVersion {
		return Header{}, fmt.Errorf("%w: unsupported header version %d", ErrIntegrity, h.Version)
	}

	return h, nil
}
