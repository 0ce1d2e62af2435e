package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTemp(t *testing.T) {
	t.Run("Stages Next To The Target", func(t *testing.T) {
		tmpDir := t.TempDir()
		target := filepath.Join(tmpDir, "report.pdf")
		content := []byte("staged output")

		tmpPath, err := WriteTemp(target, content, 0644)
		if err != nil {
			t.Fatalf("WriteTemp failed: %v", err)
		}

		if filepath.Dir(tmpPath) != tmpDir {
			t.Errorf("Temp file not in target directory: %s", tmpPath)
		}
		if !strings.HasPrefix(filepath.Base(tmpPath), TempFilePrefix) {
			t.Errorf("Temp file missing prefix: %s", tmpPath)
		}

		got, err := os.ReadFile(tmpPath)
		if err != nil {
			t.Fatalf("Failed to read temp file: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("Expected content %q, got %q", content, got)
		}
	})

	t.Run("Does Not Touch The Target", func(t *testing.T) {
		tmpDir := t.TempDir()
		target := filepath.Join(tmpDir, "report.pdf")
		if err := os.WriteFile(target, []byte("original"), 0644); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}

		if _, err := WriteTemp(target, []byte("edited"), 0644); err != nil {
			t.Fatalf("WriteTemp failed: %v", err)
		}

		got, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("Failed to read target: %v", err)
		}
		if string(got) != "original" {
			t.Errorf("Target was modified: %q", got)
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		tmpDir := t.TempDir()
		target := filepath.Join(tmpDir, "missing_folder", "report.pdf")

		if _, err := WriteTemp(target, []byte("fail"), 0644); err == nil {
			t.Error("Expected error when directory is missing, got nil")
		}
	})
}
