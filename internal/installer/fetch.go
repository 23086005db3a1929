package installer

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"setup-toolchain/internal/logger"
)

// httpClient is shared by all downloads. The timeout bounds a hung transfer;
// unattended post-install runs must not hang forever on a dead mirror.
var httpClient = &http.Client{Timeout: 15 * time.Minute}

// Fetch retrieves baseURL+fileName into destDir and returns the local path.
// If the file is already present in destDir the download is skipped and the
// existing file is reused, making repeated runs idempotent. There is no retry:
// a transport failure is returned to the caller as-is.
func Fetch(baseURL, fileName, destDir string) (string, error) {
	url := strings.TrimRight(baseURL, "/") + "/" + fileName
	return FetchURL(url, destDir)
}

// FetchURL downloads the file at url into destDir, reusing an already-present
// file of the same name.
func FetchURL(url, destDir string) (string, error) {
	destPath := filepath.Join(destDir, path.Base(url))

	if _, err := os.Stat(destPath); err == nil {
		logger.Info("[INFO] %s already downloaded. Skipping fetch.\n", filepath.Base(destPath))
		return destPath, nil
	}

	logger.Info("[INFO] Downloading %s...\n", url)
	if err := downloadFile(url, destPath); err != nil {
		return "", err
	}
	return destPath, nil
}

// downloadFile streams the content at url to destPath, showing a progress bar.
// A partially written file is removed on failure so a later run does not
// mistake it for a completed download.
func downloadFile(url, destPath string) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to GET %s: HTTP %d %s", url, resp.StatusCode, resp.Status)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close destination file: %s\n", cerr)
		}
	}()

	bar := progressbar.DefaultBytes(resp.ContentLength, filepath.Base(destPath))
	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		_ = os.Remove(destPath)
		return fmt.Errorf("failed to write response to file: %w", err)
	}

	logger.Debug("[DEBUG] Downloaded %s to %s\n", url, destPath)
	return nil
}
