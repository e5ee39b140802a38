package serializer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prokopschield/udp-storage-server-2023/codec"
	"github.com/prokopschield/udp-storage-server-2023/hasher"
	"github.com/prokopschield/udp-storage-server-2023/lake"
)

func newTestSerializer(t *testing.T) *Serializer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lake.bin")
	l, err := lake.Create(path, 1<<20)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return New(codec.NewCBOR(), l)
}

func TestSerializeSmallValueIsInline(t *testing.T) {
	s := newTestSerializer(t)

	handle, err := s.Serialize("hi")
	require.NoError(t, err)
	require.Less(t, len(handle), hasher.IdentifierLength)

	var out string
	require.NoError(t, s.Deserialize(handle, &out))
	require.Equal(t, "hi", out)
}

func TestSerializeLargeValueSpills(t *testing.T) {
	s := newTestSerializer(t)

	big := make([]byte, 200)
	for i := range big {
		big[i] = byte(i)
	}

	handle, err := s.Serialize(big)
	require.NoError(t, err)
	require.Len(t, handle, hasher.IdentifierLength)

	var out []byte
	require.NoError(t, s.Deserialize(handle, &out))
	require.Equal(t, big, out)
}

func TestSerializeRoundTripStruct(t *testing.T) {
	s := newTestSerializer(t)

	type pair struct {
		Key   string
		Value []byte
	}

	in := pair{Key: "a-fairly-descriptive-key-name", Value: []byte("a somewhat longer value payload to push this past the inline threshold")}

	handle, err := s.Serialize(in)
	require.NoError(t, err)

	var out pair
	require.NoError(t, s.Deserialize(handle, &out))
	require.Equal(t, in, out)
}
