package state

import (
	"encoding/json"
	"os"

	"setup-toolchain/internal/logger"
)

// ToolchainState records the base-toolchain install driven by this tool.
// The authoritative "is it installed" check is still the presence of the
// Command Line Tools directory; this record only exists for reporting.
type ToolchainState struct {
	UpdateLabel string `json:"update_label"` // softwareupdate label that was installed, e.g. "Command Line Tools (macOS Mojave version 10.14) for Xcode-10.3"
	Installed   bool   `json:"installed"`
}

// CompilerState records the gfortran package installed by this tool.
type CompilerState struct {
	Version  string `json:"version"`  // gfortran version label, e.g. "8.2"
	Checksum string `json:"checksum"` // MD5 the disk image was verified against
}

// ToolState records an extra utility installed from an archive.
type ToolState struct {
	Version     string `json:"version"`      // Version string of the installed tool
	InstallPath string `json:"install_path"` // Absolute path of the installed executable
}

// State holds everything this tool has applied to the machine. It is loaded
// at the start of a run and saved at the end, enabling idempotent re-runs
// (extra tools already at the requested version are skipped) and the status
// subcommand.
type State struct {
	Toolchain ToolchainState       `json:"toolchain"`
	Compiler  CompilerState        `json:"compiler"`
	Tools     map[string]ToolState `json:"tools"` // Map from tool name to its ToolState
}

// Load reads the saved state from a JSON file at the given path.
// If the file does not exist or cannot be parsed, it returns a new empty
// State: a lost state file never blocks a run, it only costs idempotence.
func Load(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		return &State{Tools: make(map[string]ToolState)}
	}

	var st State
	_ = json.Unmarshal(file, &st)

	// Defensive: ensure the map is initialized if JSON contained null
	if st.Tools == nil {
		st.Tools = make(map[string]ToolState)
	}

	return &st
}

// Save writes the given State to a JSON file at the given path, pretty-printed
// for readability. Errors are logged but not propagated: failing to persist
// state must not fail a run whose installs already succeeded.
func Save(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
