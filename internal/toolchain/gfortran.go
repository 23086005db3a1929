package toolchain

import (
	"fmt"
	"strings"
)

// CompilerTarget identifies the gfortran build pinned for a macOS release:
// the version label used in release URLs, the MD5 checksum the downloaded
// disk image must match, and the OS release name baked into the file name.
type CompilerTarget struct {
	Version  string
	Checksum string
	OSName   string
}

// compilerTargets maps a macOS minor version to its pinned gfortran build.
// The mapping is total over exactly these releases; anything else is an
// unsupported environment and fatal. Checksums are pinned to the published
// disk images and must change together with the version.
var compilerTargets = map[int]CompilerTarget{
	13: {Version: "6.3", Checksum: "1849cea667bb714c5c04a8565a9fe231", OSName: "Sierra"},
	14: {Version: "8.2", Checksum: "fbae8829503018b736a5a7013e3a6503", OSName: "Mojave"},
}

// ResolveCompilerTarget returns the gfortran build for the given macOS minor
// version. An unrecognized version is an unsupported environment: the caller
// must terminate the run before any download or privileged call is attempted.
func ResolveCompilerTarget(minor int) (CompilerTarget, error) {
	target, ok := compilerTargets[minor]
	if !ok {
		return CompilerTarget{}, fmt.Errorf("unsupported macOS version 10.%d: no gfortran build is pinned for this release", minor)
	}
	return target, nil
}

// FileName is the release file name of the disk image, e.g.
// "gfortran-8.2-Mojave.dmg".
func (t CompilerTarget) FileName() string {
	return fmt.Sprintf("gfortran-%s-%s.dmg", t.Version, t.OSName)
}

// URL builds the full download URL from the release base, following the
// <base>/<version>/<file> convention.
func (t CompilerTarget) URL(base string) string {
	return strings.TrimRight(base, "/") + "/" + t.Version + "/" + t.FileName()
}

// PackagePath is the location of the installer package inside the mounted
// disk image, relative to the mount point.
func (t CompilerTarget) PackagePath() string {
	return fmt.Sprintf("gfortran-%s-%s/gfortran.pkg", t.Version, t.OSName)
}
