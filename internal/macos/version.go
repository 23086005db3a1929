package macos

import (
	"fmt"
	"strconv"
	"strings"

	"setup-toolchain/internal/logger"
	"setup-toolchain/internal/runner"
)

// ProductVersion returns the macOS product version string (e.g. "10.14.6")
// as reported by sw_vers.
func ProductVersion(r runner.Runner) (string, error) {
	output, err := r.Run("sw_vers", "-productVersion")
	if err != nil {
		return "", fmt.Errorf("failed to read macOS product version: %w", err)
	}

	version := strings.TrimSpace(output)
	logger.Debug("[DEBUG] sw_vers reported product version %q\n", version)
	return version, nil
}

// MinorVersion extracts the minor component of a dotted macOS version string
// ("major.minor.patch", the patch part may be absent as on fresh point-zero
// releases). All version branching in this tool keys off this single integer.
// A string that does not parse is a fatal input error, never a default.
func MinorVersion(version string) (int, error) {
	parts := strings.Split(strings.TrimSpace(version), ".")
	if len(parts) < 2 {
		return 0, fmt.Errorf("unexpected macOS version string %q: want major.minor[.patch]", version)
	}

	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("unexpected macOS version string %q: minor component %q is not a number", version, parts[1])
	}
	return minor, nil
}

// CurrentMinorVersion reads the running OS version and reduces it to the
// minor-version integer used for branching decisions.
func CurrentMinorVersion(r runner.Runner) (int, error) {
	version, err := ProductVersion(r)
	if err != nil {
		return 0, err
	}
	return MinorVersion(version)
}
