package installer

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTarGz(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "tool-1.0.0.tar.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "tool-1.0.0/", Typeflag: tar.TypeDir, Mode: 0755}))
	content := []byte("#!/bin/sh\necho tool\n")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "tool-1.0.0/tool", Typeflag: tar.TypeReg, Mode: 0755, Size: int64(len(content))}))
	_, err = tw.Write(content)
	require.NoError(t, err)

	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return path
}

func TestExtractTarGz(t *testing.T) {
	scratch := t.TempDir()
	archive := writeTarGz(t, scratch)
	dest := t.TempDir()

	top, err := ExtractArchive(archive, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "tool-1.0.0"), top)

	info, err := os.Stat(filepath.Join(top, "tool"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0111, "extracted binary keeps its executable bit")
}

func TestExtractZip(t *testing.T) {
	scratch := t.TempDir()
	path := filepath.Join(scratch, "tool-2.0.0.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("tool-2.0.0/tool")
	require.NoError(t, err)
	_, err = w.Write([]byte("binary"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	dest := t.TempDir()
	top, err := ExtractArchive(path, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "tool-2.0.0"), top)

	content, err := os.ReadFile(filepath.Join(top, "tool"))
	require.NoError(t, err)
	assert.Equal(t, "binary", string(content))
}

func TestExtractRejectsUnknownFormat(t *testing.T) {
	_, err := ExtractArchive("/tmp/tool.rar", t.TempDir())
	assert.Error(t, err)
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	scratch := t.TempDir()
	path := filepath.Join(scratch, "evil.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("../evil")
	require.NoError(t, err)
	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = ExtractArchive(path, t.TempDir())
	assert.Error(t, err)
}
