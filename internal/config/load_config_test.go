package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp", cfg.ScratchDir)
	assert.Equal(t, "/Library/Developer/CommandLineTools", cfg.ToolchainDir)
	assert.Equal(t, "/tmp/.com.apple.dt.CommandLineTools.installondemand.in-progress", cfg.SentinelPath)
	assert.Equal(t, "/Volumes/gfortran", cfg.MountPoint)
	assert.Empty(t, cfg.Tools)

	// The env-file defaults are expanded to the invoking user's home.
	home := os.Getenv("HOME")
	assert.Equal(t, []string{
		filepath.Join(home, ".R/Makevars"),
		filepath.Join(home, ".Renviron"),
	}, cfg.EnvFiles)
}

func TestLoadConfigOverrides(t *testing.T) {
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())

	raw := `
scratch_dir: /var/scratch
mount_point: /Volumes/test
env_files:
  - /etc/test/Makevars
tools:
  - name: shellcheck
    version: 0.7.1
    url: https://example.test/shellcheck-0.7.1.darwin.x86_64.tar.xz
    checksum: 0123456789abcdef0123456789abcdef
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/scratch", cfg.ScratchDir)
	assert.Equal(t, "/Volumes/test", cfg.MountPoint)
	assert.Equal(t, []string{"/etc/test/Makevars"}, cfg.EnvFiles)

	// Values the file does not set keep their defaults.
	assert.Equal(t, "/Library/Developer/CommandLineTools", cfg.ToolchainDir)

	require.Len(t, cfg.Tools, 1)
	assert.Equal(t, "shellcheck", cfg.Tools[0].Name)
	assert.Equal(t, "0.7.1", cfg.Tools[0].Version)
}

func TestLoadConfigMissingFileIsFatal(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAMLIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scratch_dir: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
