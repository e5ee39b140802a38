package lake

import "errors"

var (
	// ErrFileExists is returned by Create when the target path already exists.
	ErrFileExists = errors.New("lake: file already exists")

	// ErrReadOnly is returned when a mutating call is made against a
	// read-only lake.
	ErrReadOnly = errors.New("lake: lake is read-only")

	// ErrIndexFull is returned when linear probing exhausts the primary
	// index without finding a free slot.
	ErrIndexFull = errors.New("lake: primary index is full")

	// ErrArenaFull is returned when the arena has no room left for a new
	// chunk.
	ErrArenaFull = errors.New("lake: arena is full")

	// ErrIntegrity is returned when an on-disk structure fails a checksum
	// or signature check.
	ErrIntegrity = errors.New("lake: integrity check failed")

	// ErrBlobTooLarge is returned when a blob exceeds the 65535-byte
	// maximum the identifier format can represent.
	ErrBlobTooLarge = errors.New("lake: blob exceeds maximum length")

	// ErrFileTooSmall is returned by Create when file_size cannot
	// accommodate the header and index.
	ErrFileTooSmall = errors.New("lake: file_size too small for header and index")
)
