package main

import (
	"setup-toolchain/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// The setup-toolchain project provisions the macOS developer toolchain needed to
// compile native code, and is designed to run as the post-install script of a
// signed installer package (the OS installer framework guarantees elevated
// privileges). It:
//   - Detects the running macOS version (sw_vers) and branches on the minor version
//   - Installs the Command Line Tools for Xcode through the softwareupdate catalog,
//     skipping the whole step when the toolchain directory already exists
//   - Backs up and removes stale ~/.R/Makevars and ~/.Renviron files so compiler
//     flags from a previous toolchain cannot leak into new builds
//   - Downloads the gfortran disk image matching the OS version, verifies its MD5
//     checksum against a pinned value, and installs the contained .pkg via the
//     macOS installer, mounting and unmounting the image around the install
//   - Optionally installs extra archive-packaged developer utilities declared in
//     a YAML config file, tracked in a JSON state file for idempotent re-runs
//
// Error handling strategy:
//   - A checksum mismatch or an unrecognized macOS version is fatal: the run
//     terminates with a non-zero exit before any further privileged action
//   - Download and installer failures are fatal as well; there is no retry layer
//   - Missing config files during cleanup are not errors and are reported as such
func main() {
	cmd.Execute()
}
