package mmio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenRWReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lake.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 256), 0o644))

	m, err := OpenRW(path)
	require.NoError(t, err)
	defer m.Close()

	require.True(t, m.Writable())
	require.Equal(t, 256, m.Len())

	require.NoError(t, m.WriteU32(0, 0xdeadbeef))
	got, err := m.ReadU32(0)
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), got)

	require.NoError(t, m.WriteBytes(4, []byte("hello")))
	slice, err := m.ROSlice(4, 5)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), slice)
}

func TestWriteU32AtUsesByteOffsets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lake.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

	m, err := OpenRW(path)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.WriteU32At(9, 0x11223344))

	slice, err := m.ROSlice(9, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, slice)

	// WriteU32 addresses by u32 index: index 0 covers bytes 0..3 and must
	// leave the value written at byte offset 9 intact.
	require.NoError(t, m.WriteU32(0, 0xaabbccdd))
	got, err := m.ReadU32(0)
	require.NoError(t, err)
	require.Equal(t, uint32(0xaabbccdd), got)
	require.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, slice)
}

func TestOpenROIsNotWritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lake.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

	m, err := OpenRO(path)
	require.NoError(t, err)
	defer m.Close()

	require.False(t, m.Writable())
	require.Error(t, m.WriteU32(0, 1))
	require.Error(t, m.WriteBytes(0, []byte("x")))
}

func TestOutOfBoundsAccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lake.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 16), 0o644))

	m, err := OpenRW(path)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.ReadU32(10)
	require.Error(t, err)

	_, err = m.ROSlice(10, 10)
	require.Error(t, err)
}

func TestOpenRequiresExistingFile(t *testing.T) {
	_, err := OpenRO(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)

	_, err = OpenRW(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}
