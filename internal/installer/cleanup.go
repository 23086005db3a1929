package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"setup-toolchain/internal/logger"
	"setup-toolchain/internal/runner"
)

// RemoveIfPresent ensures the config file at path is absent, backing it up
// first. A missing file is not an error: the run reports it as already absent
// and moves on. When the file exists it is copied to path+".bck" (overwriting
// any previous backup) before the original is removed with elevated privilege;
// the backup must exist before the original goes away, so a failed copy aborts
// the removal.
func RemoveIfPresent(r runner.Runner, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info("[INFO] %s not present. Nothing to remove.\n", path)
		return nil
	}

	backup := path + ".bck"
	if err := copyFile(path, backup, 0); err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}
	logger.Info("[INFO] Backed up %s to %s\n", path, backup)

	if output, err := r.Run("sudo", "rm", "-f", path); err != nil {
		logger.Error("[ERROR] Failed to remove %s.\nOutput: %s\n", path, output)
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	logger.Info("[INFO] Removed %s\n", path)
	return nil
}

// copyFile copies a file from src to dst, preserving permissions.
// It creates any missing directories in the destination path.
func copyFile(src, dst string, modeOverride os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}
	defer func() {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}

	// Set permissions: use override if provided, otherwise preserve source mode
	if modeOverride != 0 {
		err = os.Chmod(dst, modeOverride)
	} else if stat, err2 := os.Stat(src); err2 == nil {
		err = os.Chmod(dst, stat.Mode())
	}
	return err
}
