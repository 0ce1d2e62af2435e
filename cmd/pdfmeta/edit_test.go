package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/quilltools/pdfmeta/internal/pdftest"
)

func TestEditReset(t *testing.T) {
	dir := t.TempDir()
	original := pdftest.Build(
		pdftest.Entry{Key: "Title", Value: "Draft"},
		pdftest.Entry{Key: "Author", Value: "J. Doe"},
	)
	path := pdftest.WriteFile(t, dir, "report.pdf", original)

	// --reset wins over any pending edit flags.
	rootCmd.SetArgs([]string{"edit", path, "--reset", "--set", "Title=Final", "--yes"})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("edit --reset failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Error("Document bytes changed; reset must not commit")
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("Reset must not create a backup")
	}
}
