package toolchain

import (
	"fmt"
	"os"
	"strings"
)

// mojaveMinor is the macOS release whose default command-line tool selection
// path ships broken and must be reset before querying the update catalog.
const mojaveMinor = 14

// Installed reports whether the Command Line Tools are present, judged by the
// existence of the installation directory. This is the authoritative check;
// the state file is only reporting.
func Installed(toolchainDir string) bool {
	info, err := os.Stat(toolchainDir)
	return err == nil && info.IsDir()
}

// ResolveUpdateLabel extracts the bare softwareupdate label of the Command
// Line Tools entry from a `softwareupdate -l` catalog listing. When several
// entries match, the last one wins (the catalog lists newer builds later).
//
// The listing format has drifted across macOS releases; both known shapes are
// handled:
//
//	   * Command Line Tools (macOS Mojave version 10.14) for Xcode-10.3
//	* Label: Command Line Tools for Xcode-12.4
func ResolveUpdateLabel(listing string) (string, error) {
	var match string
	for _, line := range strings.Split(listing, "\n") {
		if strings.Contains(line, "*") && strings.Contains(line, "Command Line Tools") {
			match = line
		}
	}
	if match == "" {
		return "", fmt.Errorf("no Command Line Tools entry found in the update catalog")
	}

	// Strip the leading decoration: everything up to and including the first
	// "*", then an optional "Label:" prefix.
	label := match
	if i := strings.Index(label, "*"); i >= 0 {
		label = label[i+1:]
	}
	label = strings.TrimSpace(label)
	label = strings.TrimPrefix(label, "Label:")
	return strings.TrimSpace(label), nil
}
