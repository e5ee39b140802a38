// Package lake implements the data lake: an append-only, content-addressed
// blob store backed by a single memory-mapped file. It holds a fixed
// header, an open-addressed primary index, and a 256-byte-aligned arena of
// compressed chunks.
package lake

import (
	"fmt"
	"os"
	"sync"

	"github.com/prokopschield/udp-storage-server-2023/compress"
	"github.com/prokopschield/udp-storage-server-2023/hasher"
	"github.com/prokopschield/udp-storage-server-2023/internal/buf"
	"github.com/prokopschield/udp-storage-server-2023/internal/mmio"
	"github.com/prokopschield/udp-storage-server-2023/primes"
)

// MaxBlobLength is the largest blob the identifier format can address.
const MaxBlobLength = 65535

// Lake is the in-memory accessor for an on-disk data lake. It is safe for
// concurrent readers once opened read-only; a read-write Lake expects a
// single logical writer, serialized by writeMu.
type Lake struct {
	mapping *mmio.Mapping
	header  Header

	writeMu sync.Mutex

	cacheMu sync.RWMutex
	cache   map[[50]byte]*Chunk

	compressors *compress.Pool
}

// Create initializes a new lake file at path, sized to exactly fileSize
// bytes, and returns it opened for reading and writing. It refuses to
// overwrite an existing file.
func Create(path string, fileSize uint64) (*Lake, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, ErrFileExists
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("lake: stat %s: %w", path, err)
	}

	indexMod := primes.GreatestPrimeLE(uint32(fileSize >> 10))
	indexOffset := uint32(1)
	indexOffsetU32 := indexOffset << 6
	indexMax := (indexOffset + 1 + ((indexMod - 1) >> 6)) << 6
	dataOffset := 2 + ((indexMod - 1) >> 6)

	if fileSize>>8 < uint64(dataOffset) {
		return nil, ErrFileTooSmall
	}
	dataSize := uint32(fileSize>>8) - dataOffset

	header := Header{
		Version:        headerVersion,
		FileSize:       fileSize,
		DataSize:       dataSize,
		DataOffset:     dataOffset,
		DataNext:       dataOffset,
		IndexMod:       indexMod,
		IndexMax:       indexMax,
		IndexOffset:    indexOffset,
		IndexOffsetU32: indexOffsetU32,
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("lake: create %s: %w", path, err)
	}

	if err := f.Truncate(int64(fileSize)); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("lake: truncate %s: %w", path, err)
	}

	if _, err := f.WriteAt(encodeHeader(header), 0); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("lake: write header %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("lake: close %s: %w", path, err)
	}

	return Load(path, false)
}

// Load maps an existing lake file. When readonly is true, mutating calls
// (Put) fail with ErrReadOnly.
func Load(path string, readonly bool) (*Lake, error) {
	var (
		mapping *mmio.Mapping
		err     error
	)

	if readonly {
		mapping, err = mmio.OpenRO(path)
	} else {
		mapping, err = mmio.OpenRW(path)
	}
	if err != nil {
		return nil, fmt.Errorf("lake: open %s: %w", path, err)
	}

	headerBytes, err := mapping.ROSlice(0, headerSize)
	if err != nil {
		mapping.Close()
		return nil, fmt.Errorf("lake: read header %s: %w", path, err)
	}

	header, err := decodeHeader(headerBytes)
	if err != nil {
		mapping.Close()
		return nil, fmt.Errorf("lake: decode header %s: %w", path, err)
	}

	return &Lake{
		mapping:     mapping,
		header:      header,
		cache:       make(map[[50]byte]*Chunk),
		compressors: compress.NewPool(),
	}, nil
}

// Close releases the lake's memory mapping.
func (l *Lake) Close() error {
	return l.mapping.Close()
}

// ReadOnly reports whether this handle can mutate the lake.
func (l *Lake) ReadOnly() bool {
	return !l.mapping.Writable()
}

// Header returns a copy of the lake's current header fields.
func (l *Lake) Header() Header {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	return l.header
}

// probeStart returns the first index slot to consult for identifier id.
func (l *Lake) probeStart(id [50]byte) uint32 {
	sum := hasher.Checksum32(id[:], 50)
	value := uint32(sum[0]) | uint32(sum[1])<<8 | uint32(sum[2])<<16 | uint32(sum[3])<<24
	return value%l.header.IndexMod + l.header.IndexOffsetU32
}

// Get looks up the chunk stored under id. A nil chunk with a nil error
// means the identifier is not present in the lake.
func (l *Lake) Get(id [50]byte) (*Chunk, error) {
	l.cacheMu.RLock()
	if c, ok := l.cache[id]; ok {
		l.cacheMu.RUnlock()
		return c, nil
	}
	l.cacheMu.RUnlock()

	slot := l.probeStart(id)

	for slot < l.header.IndexMax {
		chunkSlot, err := l.mapping.ReadU32(slot)
		if err != nil {
			return nil, fmt.Errorf("lake: probe index slot %d: %w", slot, err)
		}
		if chunkSlot == 0 {
			return nil, nil
		}

		chunk, err := chunkAt(l, chunkSlot)
		if err != nil {
			return nil, err
		}

		if chunk.Hash == id {
			l.cacheMu.Lock()
			l.cache[id] = chunk
			l.cacheMu.Unlock()
			return chunk, nil
		}

		slot++
	}

	return nil, nil
}

// Put stores data in the lake and returns the chunk it was written to.
// Identical bytes always dedupe to the same chunk, regardless of how many
// times Put is called.
func (l *Lake) Put(data []byte) (*Chunk, error) {
	if len(data) > MaxBlobLength {
		return nil, ErrBlobTooLarge
	}

	id := hasher.Hash(data)

	if existing, err := l.Get(id); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	if l.ReadOnly() {
		return nil, ErrReadOnly
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	// Re-check under the write lock: another Put for the same bytes may
	// have landed between the unlocked Get above and here.
	if existing, err := l.getLocked(id); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	compressed, err := l.compressors.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("lake: compress: %w", err)
	}

	allocSize := chunkHeaderSize + len(compressed)
	slots := slotsForAllocSize(allocSize)

	if l.header.DataNext+slots > l.header.DataOffset+l.header.DataSize {
		return nil, ErrArenaFull
	}

	chunkSlot := l.header.DataNext
	byteOffset := int(chunkSlot) * slotSize

	record := make([]byte, chunkHeaderSize+len(compressed))
	copy(record[0:50], id[:])
	buf.PutU16LE(record, 50, uint16(len(data)))
	buf.PutU16LE(record, 52, uint16(len(compressed)))
	copy(record[chunkHeaderSize:], compressed)

	if err := l.mapping.WriteBytes(byteOffset, record); err != nil {
		return nil, fmt.Errorf("lake: write chunk: %w", err)
	}

	l.header.DataNext += slots
	if err := l.mapping.WriteU32At(dataNextOffset, l.header.DataNext); err != nil {
		return nil, fmt.Errorf("lake: persist data_next: %w", err)
	}

	if err := l.insertIndex(id, chunkSlot); err != nil {
		return nil, err
	}

	chunk := &Chunk{
		Hash:               id,
		UncompressedLength: uint16(len(data)),
		CompressedLength:   uint16(len(compressed)),
		Offset:             chunkSlot,
		lake:               l,
	}

	l.cacheMu.Lock()
	l.cache[id] = chunk
	l.cacheMu.Unlock()

	return chunk, nil
}

// getLocked is Get without taking writeMu, for callers that already hold
// it.
func (l *Lake) getLocked(id [50]byte) (*Chunk, error) {
	return l.Get(id)
}

// insertIndex writes chunkSlot into the first free probe slot for id.
// Caller must hold writeMu.
func (l *Lake) insertIndex(id [50]byte, chunkSlot uint32) error {
	slot := l.probeStart(id)

	for slot < l.header.IndexMax {
		existing, err := l.mapping.ReadU32(slot)
		if err != nil {
			return fmt.Errorf("lake: probe index slot %d: %w", slot, err)
		}
		if existing == 0 {
			return l.mapping.WriteU32(slot, chunkSlot)
		}
		slot++
	}

	return ErrIndexFull
}
