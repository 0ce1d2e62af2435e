package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/quilltools/pdfmeta"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [glob]",
	Short: "List metadata across files matching a glob",
	Long: `Read-only metadata listing over a doublestar glob, e.g.
'docs/**/*.pdf'. Each file is opened independently; unreadable files are
reported and skipped.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		matches, err := doublestar.FilepathGlob(args[0])
		if err != nil {
			fatal("Error expanding glob", err)
		}

		svc := pdfmeta.New(pdfmeta.WithLogger(slog.Default()))
		ctx := context.Background()
		failures := 0

		for _, path := range matches {
			if !strings.EqualFold(".pdf", filepath.Ext(path)) {
				continue
			}
			session, err := svc.Open(ctx, path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failures++
				continue
			}
			fmt.Printf("%s\t%s\n", path, summarize(session.Original))
		}

		if failures > 0 {
			os.Exit(1)
		}
	},
}

// summarize returns a one-line digest of a mapping: the title when one
// exists, plus the entry count.
func summarize(m pdfmeta.Mapping) string {
	if title, _, err := m.TextOf("Title"); err == nil && title != "" {
		return fmt.Sprintf("Title=%q (%d entries)", title, len(m))
	}
	return fmt.Sprintf("(%d entries)", len(m))
}

func init() {
	rootCmd.AddCommand(listCmd)
}
