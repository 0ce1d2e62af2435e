package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quilltools/pdfmeta/pkg/core"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func TestNextBackupPath(t *testing.T) {
	t.Run("First Candidate Is .bak", func(t *testing.T) {
		tmpDir := t.TempDir()
		original := filepath.Join(tmpDir, "report.pdf")
		touch(t, original)

		got, err := NextBackupPath(original)
		if err != nil {
			t.Fatalf("NextBackupPath failed: %v", err)
		}
		if got != original+".bak" {
			t.Errorf("Expected %s, got %s", original+".bak", got)
		}
	})

	t.Run("Skips The Existing Chain", func(t *testing.T) {
		tmpDir := t.TempDir()
		original := filepath.Join(tmpDir, "f")
		touch(t, original)
		touch(t, original+".bak")
		touch(t, original+".bak1")
		touch(t, original+".bak2")

		got, err := NextBackupPath(original)
		if err != nil {
			t.Fatalf("NextBackupPath failed: %v", err)
		}
		if got != original+".bak3" {
			t.Errorf("Expected %s, got %s", original+".bak3", got)
		}
	})

	t.Run("Re-Checks Storage On Every Call", func(t *testing.T) {
		tmpDir := t.TempDir()
		original := filepath.Join(tmpDir, "f")
		touch(t, original)

		first, err := NextBackupPath(original)
		if err != nil {
			t.Fatalf("NextBackupPath failed: %v", err)
		}
		touch(t, first)

		second, err := NextBackupPath(original)
		if err != nil {
			t.Fatalf("NextBackupPath failed: %v", err)
		}
		if second != original+".bak1" {
			t.Errorf("Expected fresh probe to return .bak1, got %s", second)
		}
	})

	t.Run("Probe Limit Is A Safety Valve", func(t *testing.T) {
		tmpDir := t.TempDir()
		original := filepath.Join(tmpDir, "f")
		touch(t, original)
		touch(t, original+".bak")
		touch(t, original+".bak1")

		_, err := NextBackupPathN(original, 2)
		if !errors.Is(err, core.ErrBackupSpaceExhausted) {
			t.Fatalf("Expected ErrBackupSpaceExhausted, got %v", err)
		}
	})
}
