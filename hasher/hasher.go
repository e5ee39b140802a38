// Package hasher builds and verifies the lake's 50-byte blob identifiers:
// SHA-256 and BLAKE3 of a blob, XOR-folded together, checksummed, and
// base64-rendered alongside the blob's length.
package hasher

import (
	"crypto/sha256"
	"encoding/binary"

	"lukechampine.com/blake3"

	"github.com/prokopschield/udp-storage-server-2023/base64"
)

// IdentifierLength is the number of printable bytes in a blob identifier.
const IdentifierLength = 50

// envelopeLength is the pre-base64 byte width of xor||checksum||length.
const envelopeLength = 38

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// BLAKE3 returns the 32-byte BLAKE3 digest of data.
func BLAKE3(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// XOR returns the bytewise XOR of a and b.
func XOR(a, b [32]byte) [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// Checksum32 implements the lake's rolling checksum: seed with length, then
// for every byte c, h = c + (h<<6) + (h<<16) - h, with wrapping uint32
// arithmetic. The result is always encoded little-endian, regardless of
// host byte order, so identifiers remain portable across architectures.
func Checksum32(data []byte, length uint32) [4]byte {
	h := length

	for _, c := range data {
		h = uint32(c) + (h << 6) + (h << 16) - h
	}

	var out [4]byte
	binary.LittleEndian.PutUint32(out[:], h)
	return out
}

// Hash builds the 50-byte printable identifier for data, per the lake's
// envelope format: xor(sha256, blake3) || checksum32(xor, len) || u16_le(len).
func Hash(data []byte) [IdentifierLength]byte {
	length := uint16(len(data))

	sha := SHA256(data)
	bla := BLAKE3(data)
	xored := XOR(sha, bla)
	sum := Checksum32(xored[:], uint32(length))

	envelope := make([]byte, 0, envelopeLength)
	envelope = append(envelope, xored[:]...)
	envelope = append(envelope, sum[:]...)

	var lenBytes [2]byte
	binary.LittleEndian.PutUint16(lenBytes[:], length)
	envelope = append(envelope, lenBytes[:]...)

	encoded := base64.Encode(envelope)

	var id [IdentifierLength]byte
	copy(id[:], encoded[:IdentifierLength])
	return id
}

// recoverableLength is how many bytes base64.Decode actually reconstructs
// from a 50-byte identifier: Hash keeps only the first 50 of the 51 symbols
// a full 38-byte envelope would encode, so the length field's high byte
// never survives the round trip.
const recoverableLength = 37

// Verify decodes a 50-byte identifier, recomputes its checksum from the
// embedded xor value and the length byte that identifier can still yield,
// and reports whether it matches the checksum stored in the identifier.
func Verify(id [IdentifierLength]byte) bool {
	decoded := base64.Decode(id[:])
	if len(decoded) < recoverableLength {
		return false
	}

	xored := decoded[0:32]
	storedSum := decoded[32:36]
	length := uint32(decoded[36])

	sum := Checksum32(xored, length)

	for i := range sum {
		if sum[i] != storedSum[i] {
			return false
		}
	}

	return true
}
