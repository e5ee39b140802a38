package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCBORRoundTrip(t *testing.T) {
	c := NewCBOR()

	in := map[string]int{"a": 1, "b": 2, "c": 3}
	data, err := c.Marshal(in)
	require.NoError(t, err)

	var out map[string]int
	require.NoError(t, c.Unmarshal(data, &out))
	require.Equal(t, in, out)
}

func TestCBORIsDeterministic(t *testing.T) {
	c := NewCBOR()

	in := map[string]int{"z": 26, "a": 1, "m": 13}

	first, err := c.Marshal(in)
	require.NoError(t, err)

	second, err := c.Marshal(in)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestCBORBytesRoundTrip(t *testing.T) {
	c := NewCBOR()

	in := []byte("arbitrary payload bytes")
	data, err := c.Marshal(in)
	require.NoError(t, err)

	var out []byte
	require.NoError(t, c.Unmarshal(data, &out))
	require.Equal(t, in, out)
}
