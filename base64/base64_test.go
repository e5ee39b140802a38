package base64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0xff, 0x00, 0x80},
		[]byte("hello"),
		[]byte("hello world, this is a longer message to encode"),
	}

	for _, c := range cases {
		encoded := Encode(c)
		decoded := Decode(encoded)
		require.Equal(t, c, decoded, "round trip for %q", c)
	}
}

func TestEncodeEmpty(t *testing.T) {
	require.Empty(t, Encode(nil))
}

func TestEncodeLength(t *testing.T) {
	require.Len(t, Encode(make([]byte, 3)), 4)
	require.Len(t, Encode(make([]byte, 1)), 2)
	require.Len(t, Encode(make([]byte, 2)), 3)
	require.Len(t, Encode(make([]byte, 38)), 51)
}

func TestDecodeAliases(t *testing.T) {
	plus := DecodeBlock([4]byte{'+', '+', '+', '+'})
	dash := DecodeBlock([4]byte{'-', '-', '-', '-'})
	require.Equal(t, plus, dash)

	comma := DecodeBlock([4]byte{',', ',', ',', ','})
	slash := DecodeBlock([4]byte{'/', '/', '/', '/'})
	require.Equal(t, comma, slash)
}

func TestAlphabetLength(t *testing.T) {
	require.Len(t, Alphabet, 64)
}
