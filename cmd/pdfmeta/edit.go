package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/quilltools/pdfmeta"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	editSets    []string
	editRenames []string
	editDeletes []string
	editsFile   string
	editYes     bool
	editDryRun  bool
	editReset   bool
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit a document's metadata",
	Long: `Apply metadata edits to a PDF and commit the result. The original
file is renamed to the first free <name>.bak / .bakN path before the edited
copy takes its place.

Edits come from repeatable flags or from an ordered YAML edit list:

    - key: Title
      value: Final
    - key: Author
      value: J. Doe
      new: true
    - key: Producer
      delete: true
    - key: Creator
      original: OldCreator`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		session, err := pdfmeta.Open(ctx, args[0], pdfmeta.WithLogger(slog.Default()))
		if err != nil {
			fatal("Error opening document", err)
		}

		if editReset {
			// Discard every pending edit: show the mapping as extracted and
			// leave storage alone.
			for _, e := range displayEntries(session.Original) {
				if e.Unsupported != "" {
					fmt.Printf("%s: <%s>\n", e.Key, e.Unsupported)
					continue
				}
				fmt.Printf("%s: %s\n", e.Key, e.Value)
			}
			fmt.Println("Nothing committed.")
			return
		}

		var rows []pdfmeta.EditRow
		if editsFile != "" {
			rows, err = rowsFromFile(editsFile)
			if err != nil {
				fatal("Error reading edit list", err)
			}
		} else {
			rows, err = rowsFromFlags(session.Original, editSets, editRenames, editDeletes)
			if err != nil {
				fatal("Error building edit list", err)
			}
		}
		if len(rows) == 0 {
			fmt.Println("Nothing to change.")
			return
		}

		final, err := session.Reconcile(rows)
		if err != nil {
			fatal("Error reconciling edits", err)
		}

		printDiff(session.Original, final)
		if editDryRun {
			return
		}
		if !editYes && !confirm("Apply these changes?") {
			fmt.Println("Aborted.")
			return
		}

		res, err := session.Commit(ctx, final)
		if err != nil {
			fatal("Error committing", err)
		}
		fmt.Printf("Saved %s (backup: %s)\n", res.Path, res.BackupPath)
	},
}

// editFileRow mirrors core.EditRow for the YAML edit list format.
type editFileRow struct {
	Key      string `yaml:"key"`
	Value    string `yaml:"value"`
	Original string `yaml:"original,omitempty"`
	Delete   bool   `yaml:"delete,omitempty"`
	New      bool   `yaml:"new,omitempty"`
}

func rowsFromFile(path string) ([]pdfmeta.EditRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fileRows []editFileRow
	if err := yaml.Unmarshal(data, &fileRows); err != nil {
		return nil, fmt.Errorf("invalid edit list: %w", err)
	}
	rows := make([]pdfmeta.EditRow, len(fileRows))
	for i, r := range fileRows {
		rows[i] = pdfmeta.EditRow{
			Key:         r.Key,
			Value:       r.Value,
			OriginalKey: r.Original,
			Delete:      r.Delete,
			New:         r.New,
		}
	}
	return rows, nil
}

func rowsFromFlags(m pdfmeta.Mapping, sets, renames, deletes []string) ([]pdfmeta.EditRow, error) {
	var rows []pdfmeta.EditRow

	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("--set wants key=value, got %q", s)
		}
		rows = append(rows, pdfmeta.EditRow{Key: key, Value: value, New: !m.Has(key)})
	}

	for _, r := range renames {
		oldKey, newKey, ok := strings.Cut(r, "=")
		if !ok || oldKey == "" || newKey == "" {
			return nil, fmt.Errorf("--rename wants old=new, got %q", r)
		}
		text, present, err := m.TextOf(oldKey)
		if err != nil {
			// Renaming an entry whose value has no text form would drop the
			// value; the user must retype it with --set instead.
			return nil, err
		}
		if !present {
			return nil, fmt.Errorf("cannot rename %q: no such key", oldKey)
		}
		rows = append(rows, pdfmeta.EditRow{OriginalKey: oldKey, Key: newKey, Value: text})
	}

	for _, d := range deletes {
		if d == "" {
			return nil, fmt.Errorf("--delete wants a key")
		}
		rows = append(rows, pdfmeta.EditRow{Key: d, Delete: true})
	}

	return rows, nil
}

// printDiff summarizes what the commit would change, in the spirit of the
// confirmation dialog: set, changed, and deleted keys.
func printDiff(original, final pdfmeta.Mapping) {
	for _, e := range final {
		old, ok := original.Get(e.Key)
		switch {
		case !ok:
			fmt.Printf("  + %s: %s\n", e.Key, e.Value)
		case old != e.Value:
			fmt.Printf("  ~ %s: %s -> %s\n", e.Key, old, e.Value)
		}
	}
	for _, e := range original {
		if !final.Has(e.Key) {
			fmt.Printf("  - %s\n", e.Key)
		}
	}
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "Set a key to a value (key=value, repeatable)")
	editCmd.Flags().StringArrayVar(&editRenames, "rename", nil, "Rename a key (old=new, repeatable)")
	editCmd.Flags().StringArrayVar(&editDeletes, "delete", nil, "Delete a key (repeatable)")
	editCmd.Flags().StringVar(&editsFile, "edits", "", "Ordered YAML edit list (overrides other edit flags)")
	editCmd.Flags().BoolVarP(&editYes, "yes", "y", false, "Apply without confirmation")
	editCmd.Flags().BoolVar(&editDryRun, "dry-run", false, "Show the diff without writing")
	editCmd.Flags().BoolVar(&editReset, "reset", false, "Discard edits, print the metadata as extracted and exit")
}
