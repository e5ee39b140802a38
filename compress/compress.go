// Package compress wraps deflate compression at maximum level behind a
// free-list pool of reusable encoders, mirroring the source's
// CompressorCollection: pop an encoder (allocating if the pool is empty),
// compress, then push it back for reuse.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
)

// MaxInputSize is the largest payload this package is sized for.
const MaxInputSize = 4096

// MaxOutputSize bounds the compressed output buffer: input size plus
// flate's worst-case expansion.
const MaxOutputSize = 4111

// ErrCompression is returned when deflate compression fails.
var ErrCompression = errors.New("compress: compression failed")

// ErrDecompression is returned when deflate decompression fails.
var ErrDecompression = errors.New("compress: decompression failed")

// Pool is a free-list of reusable flate writers, avoiding the per-call
// allocation cost of spinning up a new compressor for every Put.
type Pool struct {
	mu   sync.Mutex
	free []*flate.Writer
}

// NewPool returns an empty compressor pool.
func NewPool() *Pool {
	return &Pool{}
}

// pop returns a writer from the pool, allocating a new one at the best
// compression level if the pool is empty.
func (p *Pool) pop(dst io.Writer) (*flate.Writer, error) {
	p.mu.Lock()
	n := len(p.free)
	if n == 0 {
		p.mu.Unlock()
		return flate.NewWriter(dst, flate.BestCompression)
	}
	w := p.free[n-1]
	p.free = p.free[:n-1]
	p.mu.Unlock()

	w.Reset(dst)
	return w, nil
}

// push returns a writer to the pool for reuse.
func (p *Pool) push(w *flate.Writer) {
	p.mu.Lock()
	p.free = append(p.free, w)
	p.mu.Unlock()
}

// Compress deflates data at maximum level. The caller should keep data at
// or below MaxInputSize; larger inputs still compress correctly but are
// outside the bounded-output guarantee.
func (p *Pool) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(MaxOutputSize)

	w, err := p.pop(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}

	p.push(w)

	return buf.Bytes(), nil
}

// Compress deflates data using a fresh, unpooled writer. Prefer Pool.Compress
// on a hot path; this exists for one-off callers (tests, CLI tools).
func Compress(data []byte) ([]byte, error) {
	return NewPool().Compress(data)
}

// Decompress inflates data, whose decompressed form is exactly outLen bytes.
func Decompress(data []byte, outLen int) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out := make([]byte, outLen)

	n, err := io.ReadFull(r, out)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}

	return out[:n], nil
}
