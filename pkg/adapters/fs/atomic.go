package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for staged output files.
	TempFilePrefix = "pdfmeta-tmp-"
)

// WriteTemp writes data to a fresh temp file in the same directory as
// target and returns its path. The file is synced and closed; moving it
// into place (or removing it) is the caller's responsibility. Staging in
// the target directory keeps the final rename on one filesystem.
func WriteTemp(target string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(target)

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to chmod temp file: %w", err)
	}

	return tmpFile.Name(), nil
}
