package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreatePutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	lakePath := filepath.Join(dir, "lake.bin")
	filePath := filepath.Join(dir, "payload.txt")

	require.NoError(t, os.WriteFile(filePath, []byte("hello from lakectl"), 0o644))

	global.LakeSize = 1 << 20

	_, err := captureOutput(t, func() error { return runCreate(lakePath) })
	require.NoError(t, err)

	putOutput, err := captureOutput(t, func() error { return runPut(lakePath, filePath) })
	require.NoError(t, err)
	identifier := strings.TrimSpace(putOutput)
	require.Len(t, identifier, 50)

	getOutput, err := captureOutput(t, func() error { return runGet(lakePath, identifier) })
	require.NoError(t, err)
	require.Equal(t, "hello from lakectl", getOutput)
}

func TestGetUnknownIdentifierFails(t *testing.T) {
	dir := t.TempDir()
	lakePath := filepath.Join(dir, "lake.bin")
	global.LakeSize = 1 << 20

	_, err := captureOutput(t, func() error { return runCreate(lakePath) })
	require.NoError(t, err)

	bogus := strings.Repeat("A", 50)
	_, err = captureOutput(t, func() error { return runGet(lakePath, bogus) })
	require.Error(t, err)
}

func TestTreeSetGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	lakePath := filepath.Join(dir, "lake.bin")
	global.LakeSize = 1 << 20

	_, err := captureOutput(t, func() error { return runCreate(lakePath) })
	require.NoError(t, err)

	_, err = captureOutput(t, func() error { return runTreeSet(lakePath, "greeting", "hello") })
	require.NoError(t, err)

	out, err := captureOutput(t, func() error { return runTreeGet(lakePath, "greeting") })
	require.NoError(t, err)
	require.Equal(t, "hello\n", out)
}

func TestStatsReportsHeaderFields(t *testing.T) {
	dir := t.TempDir()
	lakePath := filepath.Join(dir, "lake.bin")
	global.LakeSize = 1 << 20

	_, err := captureOutput(t, func() error { return runCreate(lakePath) })
	require.NoError(t, err)

	out, err := captureOutput(t, func() error { return runStats(lakePath) })
	require.NoError(t, err)
	require.Contains(t, out, "data_offset:")
	require.Contains(t, out, "index_mod:")
}
