// Package serializer implements the lake's inline-or-spill encoding: small
// encoded values travel as a base64 handle, larger ones are written into a
// lake and travel as its 50-byte identifier.
package serializer

import (
	"fmt"

	"github.com/prokopschield/udp-storage-server-2023/base64"
	"github.com/prokopschield/udp-storage-server-2023/codec"
	"github.com/prokopschield/udp-storage-server-2023/hasher"
	"github.com/prokopschield/udp-storage-server-2023/lake"
)

// inlineThreshold is the encoded payload width at which values stop
// travelling as a base64 handle: shorter payloads stay inline, payloads
// of this width or wider spill into the lake.
const inlineThreshold = 36

// Serializer turns values into lake handles and back, using a Codec for
// the value encoding and a Lake for spillover storage.
type Serializer struct {
	codec codec.Codec
	lake  *lake.Lake
}

// New builds a Serializer over the given codec and lake.
func New(c codec.Codec, l *lake.Lake) *Serializer {
	return &Serializer{codec: c, lake: l}
}

// Codec returns the serializer's underlying value codec.
func (s *Serializer) Codec() codec.Codec {
	return s.codec
}

// Lake returns the serializer's underlying lake.
func (s *Serializer) Lake() *lake.Lake {
	return s.lake
}

// Serialize encodes v with the serializer's codec and returns a handle:
// either an inline base64 string (len < 50) or a 50-byte lake identifier.
func (s *Serializer) Serialize(v any) (string, error) {
	encoded, err := s.codec.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("serializer: marshal: %w", err)
	}

	if len(encoded) < inlineThreshold {
		return string(base64.Encode(encoded)), nil
	}

	chunk, err := s.lake.Put(encoded)
	if err != nil {
		return "", fmt.Errorf("serializer: spill: %w", err)
	}

	return string(chunk.Hash[:]), nil
}

// Deserialize resolves handle back to its encoded bytes and decodes them
// into v with the serializer's codec.
func (s *Serializer) Deserialize(handle string, v any) error {
	encoded, err := s.Resolve(handle)
	if err != nil {
		return err
	}
	if err := s.codec.Unmarshal(encoded, v); err != nil {
		return fmt.Errorf("serializer: unmarshal: %w", err)
	}
	return nil
}

// Resolve recovers the raw encoded bytes a handle refers to, without
// decoding them. Handles shorter than 50 bytes are inline base64; handles
// of exactly 50 bytes name a lake identifier.
func (s *Serializer) Resolve(handle string) ([]byte, error) {
	switch len(handle) {
	case hasher.IdentifierLength:
		var id [hasher.IdentifierLength]byte
		copy(id[:], handle)

		chunk, err := s.lake.Get(id)
		if err != nil {
			return nil, fmt.Errorf("serializer: resolve %q: %w", handle, err)
		}
		if chunk == nil {
			return nil, fmt.Errorf("serializer: resolve %q: %w", handle, lake.ErrIntegrity)
		}

		data, err := chunk.Read()
		if err != nil {
			return nil, fmt.Errorf("serializer: read %q: %w", handle, err)
		}
		return data, nil
	default:
		return base64.Decode([]byte(handle)), nil
	}
}
