package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScratchFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestChecksum(t *testing.T) {
	path := writeScratchFile(t, "artifact.dmg", []byte("hello world"))

	sum, err := Checksum(path)
	require.NoError(t, err)
	// Known MD5 of "hello world"
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", sum)
}

func TestVerifyChecksumMatch(t *testing.T) {
	path := writeScratchFile(t, "artifact.dmg", []byte("hello world"))

	assert.NoError(t, VerifyChecksum(path, "5eb63bbbe01eeed093cb22bb8f5acdc3"))
}

func TestVerifyChecksumSingleByteMutation(t *testing.T) {
	content := []byte("hello world")
	path := writeScratchFile(t, "artifact.dmg", content)

	expected, err := Checksum(path)
	require.NoError(t, err)

	// Flip a single byte; the verification must fail against the original sum.
	content[0] ^= 0x01
	require.NoError(t, os.WriteFile(path, content, 0644))

	err = VerifyChecksum(path, expected)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	// The diagnostic carries both the computed and the expected value.
	computed, cerr := Checksum(path)
	require.NoError(t, cerr)
	assert.Contains(t, err.Error(), expected)
	assert.Contains(t, err.Error(), computed)
}

func TestVerifyChecksumMissingFile(t *testing.T) {
	err := VerifyChecksum(filepath.Join(t.TempDir(), "nope.dmg"), "d41d8cd98f00b204e9800998ecf8427e")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrChecksumMismatch)
}
