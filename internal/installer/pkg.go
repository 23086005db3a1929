package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"setup-toolchain/internal/logger"
	"setup-toolchain/internal/runner"
)

// InstallPackage invokes the macOS package installer against the given .pkg,
// targeting the root volume. Requires elevated privilege; a failure of the
// underlying installer call is fatal for the run.
func InstallPackage(r runner.Runner, pkgPath string) error {
	logger.Info("[INFO] Installing package %s...\n", pkgPath)

	output, err := r.Run("sudo", "installer", "-pkg", pkgPath, "-target", "/")
	if err != nil {
		logger.Error("[ERROR] Package install failed for %s.\nOutput: %s\n", pkgPath, output)
		return fmt.Errorf("failed to install package %s: %w", pkgPath, err)
	}

	logger.Debug("[DEBUG] installer output:\n%s\n", output)
	return nil
}

// InstallFromDiskImage mounts the disk image at mountPoint, installs the
// package found at pkgRelPath inside it, and detaches the mount point again.
// The detach runs on every exit path, so a failed install cannot leave a
// volume mounted. On success the source image is removed from scratch storage.
func InstallFromDiskImage(r runner.Runner, imagePath, mountPoint, pkgRelPath string) error {
	if err := installFromMountedImage(r, imagePath, mountPoint, pkgRelPath); err != nil {
		return err
	}

	// The image served its purpose; a leftover in scratch storage is only a
	// disk-space problem, so removal failure just warns.
	if err := os.Remove(imagePath); err != nil {
		logger.Warn("[WARN] Could not remove disk image %s: %v\n", imagePath, err)
	} else {
		logger.Debug("[DEBUG] Removed disk image %s\n", imagePath)
	}
	return nil
}

func installFromMountedImage(r runner.Runner, imagePath, mountPoint, pkgRelPath string) (err error) {
	logger.Info("[INFO] Mounting %s at %s...\n", imagePath, mountPoint)
	if output, aerr := r.Run("sudo", "hdiutil", "attach", imagePath, "-mountpoint", mountPoint, "-quiet", "-nobrowse"); aerr != nil {
		logger.Error("[ERROR] Failed to mount %s.\nOutput: %s\n", imagePath, output)
		return fmt.Errorf("failed to mount disk image %s: %w", imagePath, aerr)
	}

	defer func() {
		logger.Info("[INFO] Unmounting %s...\n", mountPoint)
		if output, derr := r.Run("sudo", "hdiutil", "detach", mountPoint, "-quiet"); derr != nil {
			logger.Error("[ERROR] Failed to unmount %s.\nOutput: %s\n", mountPoint, output)
			if err == nil {
				err = fmt.Errorf("failed to unmount %s: %w", mountPoint, derr)
			}
		}
	}()

	return InstallPackage(r, filepath.Join(mountPoint, pkgRelPath))
}
