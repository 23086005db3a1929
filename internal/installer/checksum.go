package installer

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"setup-toolchain/internal/logger"
)

// ErrChecksumMismatch marks an integrity failure. It is security-relevant and
// always fatal for the run: the fetched binary is not the one pinned for
// privileged installation.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Checksum computes the MD5 digest of the file at path as a lowercase hex
// string. MD5 is what the gfortran disk images publish their checksums in;
// the point here is detecting a corrupted or substituted download before it
// reaches a privileged installer, not collision resistance.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for checksum: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyChecksum compares the file's MD5 digest against the expected value.
// A mismatch means the downloaded binary is not the one pinned for privileged
// installation; the returned error carries both values and callers must treat
// it as fatal for the run.
func VerifyChecksum(path, expected string) error {
	actual, err := Checksum(path)
	if err != nil {
		return err
	}

	if actual != expected {
		return fmt.Errorf("%w for %s: computed %s, expected %s", ErrChecksumMismatch, path, actual, expected)
	}

	logger.Debug("[DEBUG] Checksum OK for %s (%s)\n", path, actual)
	return nil
}
