package pdfmeta_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quilltools/pdfmeta"
	"github.com/quilltools/pdfmeta/internal/pdftest"
)

// Example demonstrates the full open, reconcile, commit cycle against a
// throwaway document.
func Example() {
	dir, err := os.MkdirTemp("", "pdfmeta-example-")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "report.pdf")
	doc := pdftest.Build(
		pdftest.Entry{Key: "Title", Value: "Draft"},
		pdftest.Entry{Key: "Author", Value: "J. Doe"},
	)
	if err := os.WriteFile(path, doc, 0644); err != nil {
		fmt.Println("Error:", err)
		return
	}

	ctx := context.Background()

	session, err := pdfmeta.Open(ctx, path)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	final, err := session.Reconcile([]pdfmeta.EditRow{
		{Key: "Title", Value: "Final"},
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	res, err := session.Commit(ctx, final)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	reopened, err := pdfmeta.Open(ctx, res.Path)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	title, _, _ := reopened.Original.TextOf("Title")
	fmt.Println("Title:", title)
	fmt.Println("Backup kept:", strings.HasSuffix(res.BackupPath, ".bak"))

	// Output:
	// Title: Final
	// Backup kept: true
}
