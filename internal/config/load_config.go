package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"setup-toolchain/internal/logger"
)

// Defaults returns the built-in configuration. These are the fixed paths the
// orchestrated install touches; they only change for tests or unusual setups.
func Defaults() Config {
	return Config{
		ScratchDir:   "/tmp",
		ToolchainDir: "/Library/Developer/CommandLineTools",
		SentinelPath: "/tmp/.com.apple.dt.CommandLineTools.installondemand.in-progress",
		MountPoint:   "/Volumes/gfortran",
		DownloadBase: "https://github.com/fxcoudert/gfortran-for-macOS/releases/download",
		EnvFiles:     []string{"~/.R/Makevars", "~/.Renviron"},
		StatePath:    "state.json",
	}
}

// LoadConfig returns the runtime configuration. When configFile is empty the
// built-in defaults are used as-is; otherwise the YAML file is read and any
// value it sets overrides the corresponding default. Paths starting with "~"
// are expanded to the invoking user's home directory.
func LoadConfig(configFile string) (Config, error) {
	cfg := Defaults()

	if configFile != "" {
		raw, err := os.ReadFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config %s: %w", configFile, err)
		}
		logger.Debug("[DEBUG] Loaded config overrides from %s\n", configFile)
	}

	// Expand ~ in every user-facing path. The env files in particular default
	// to home-relative locations.
	for i, p := range cfg.EnvFiles {
		expanded, err := homedir.Expand(p)
		if err != nil {
			return Config{}, fmt.Errorf("failed to expand path %s: %w", p, err)
		}
		cfg.EnvFiles[i] = expanded
	}

	statePath, err := homedir.Expand(cfg.StatePath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to expand path %s: %w", cfg.StatePath, err)
	}
	cfg.StatePath = statePath

	return cfg, nil
}
