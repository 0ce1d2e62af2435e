package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/quilltools/pdfmeta"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	showJSON bool
	showYAML bool
)

// standardTags are the well-known information dictionary keys, in the
// order they are conventionally displayed. Remaining entries follow in
// document order.
var standardTags = []string{"Title", "Author", "Subject", "Keywords", "Producer", "Creator"}

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a document's metadata",
	Long:  `Read the information dictionary of a PDF and print it. Standard keys come first, custom entries after, in document order.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session, err := pdfmeta.Open(context.Background(), args[0], pdfmeta.WithLogger(slog.Default()))
		if err != nil {
			fatal("Error opening document", err)
		}

		entries := displayEntries(session.Original)

		switch {
		case showJSON:
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(entries); err != nil {
				fatal("Error encoding JSON", err)
			}
		case showYAML:
			out, err := yaml.Marshal(entries)
			if err != nil {
				fatal("Error encoding YAML", err)
			}
			os.Stdout.Write(out)
		default:
			for _, e := range entries {
				if e.Unsupported != "" {
					fmt.Printf("%s: <%s>\n", e.Key, e.Unsupported)
					continue
				}
				fmt.Printf("%s: %s\n", e.Key, e.Value)
			}
		}
	},
}

// displayEntry is the serializable form of one metadata entry.
type displayEntry struct {
	Key         string `json:"key" yaml:"key"`
	Value       string `json:"value" yaml:"value"`
	Unsupported string `json:"unsupported,omitempty" yaml:"unsupported,omitempty"`
}

// displayEntries orders a mapping for display: standard tags first, the
// rest as encountered in the document.
func displayEntries(m pdfmeta.Mapping) []displayEntry {
	ordered := make(pdfmeta.Mapping, 0, len(m))
	for _, tag := range standardTags {
		if v, ok := m.Get(tag); ok {
			ordered = append(ordered, pdfmeta.Entry{Key: tag, Value: v})
		}
	}
	for _, e := range m {
		if !ordered.Has(e.Key) {
			ordered = append(ordered, e)
		}
	}

	out := make([]displayEntry, len(ordered))
	for i, e := range ordered {
		out[i] = displayEntry{Key: e.Key, Value: e.Value.Text, Unsupported: e.Value.Reason}
	}
	return out
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	showCmd.Flags().BoolVar(&showYAML, "yaml", false, "Output in YAML format")
}
