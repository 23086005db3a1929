package installer

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"setup-toolchain/internal/config"
	"setup-toolchain/internal/logger"
	"setup-toolchain/internal/state"
)

// InstallTools provisions the extra archive-packaged utilities declared in the
// config, recording each install in the state file so re-runs skip tools
// already at the requested version. Individual tool failures are logged and
// skipped so one broken download does not block the rest — with one exception:
// a checksum mismatch on a declared checksum aborts the whole run, same as for
// the compiler image.
func InstallTools(tools []config.Tool, scratchDir string, st *state.State) error {
	if len(tools) == 0 {
		logger.Debug("[DEBUG] No extra tools configured\n")
		return nil
	}

	for _, tool := range tools {
		if cur, ok := st.Tools[tool.Name]; ok && cur.Version == tool.Version {
			logger.Info("[INFO] %s version %s is current. Skipping.\n", tool.Name, tool.Version)
			continue
		}

		logger.Info("[INFO] Installing %s@%s...\n", tool.Name, tool.Version)
		installPath, err := installTool(tool, scratchDir)
		if err != nil {
			if errors.Is(err, ErrChecksumMismatch) {
				return err
			}
			logger.Error("[ERROR] Failed to install %s: %v\n", tool.Name, err)
			continue
		}

		logger.Info("[INFO] Installed %s@%s at %s\n", tool.Name, tool.Version, installPath)
		st.Tools[tool.Name] = state.ToolState{
			Version:     tool.Version,
			InstallPath: installPath,
		}
	}
	return nil
}

// installTool fetches, verifies, extracts, and places a single tool's
// executable. It returns the final install path of the binary.
func installTool(tool config.Tool, scratchDir string) (string, error) {
	archive, err := FetchURL(tool.URL, scratchDir)
	if err != nil {
		return "", err
	}

	if tool.Checksum != "" {
		if err := VerifyChecksum(archive, tool.Checksum); err != nil {
			return "", err
		}
	} else {
		logger.Warn("[WARN] No checksum declared for %s. Installing unverified.\n", tool.Name)
	}

	extracted, err := ExtractArchive(archive, scratchDir)
	if err != nil {
		return "", err
	}
	logger.Debug("[DEBUG] Extracted %s to %s\n", tool.Name, extracted)

	info, err := os.Stat(extracted)
	if err != nil {
		return "", err
	}

	var binary string
	if info.IsDir() {
		binary, err = findExecutable(extracted, tool.Name)
		if err != nil {
			return "", err
		}
	} else {
		binary = extracted
	}

	return placeBinary(binary)
}

// findExecutable scans the extracted tree for an executable whose name starts
// with the tool name.
func findExecutable(root, toolName string) (string, error) {
	var found string

	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return err
		}
		info, ierr := d.Info()
		if ierr != nil {
			return nil
		}
		mode := info.Mode()
		if strings.HasPrefix(filepath.Base(p), toolName) && mode.IsRegular() && mode.Perm()&0111 != 0 {
			logger.Debug("[DEBUG] Found executable: %s\n", p)
			found = p
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no executable named like %q found under %s", toolName, root)
	}
	return found, nil
}

// placeBinary copies the binary into /usr/local/bin, falling back to ~/bin
// when the system location is not writable.
func placeBinary(binary string) (string, error) {
	name := filepath.Base(binary)

	dest := filepath.Join("/usr/local/bin", name)
	if err := copyFile(binary, dest, 0755); err == nil {
		return dest, nil
	}

	homeBin := path.Join(os.Getenv("HOME"), "bin")
	if err := os.MkdirAll(homeBin, 0755); err != nil {
		return "", fmt.Errorf("cannot create fallback bin directory: %w", err)
	}
	dest = filepath.Join(homeBin, name)
	if err := copyFile(binary, dest, 0755); err != nil {
		return "", fmt.Errorf("failed to copy binary to fallback location: %w", err)
	}
	return dest, nil
}
