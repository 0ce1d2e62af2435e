package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
	"github.com/quilltools/pdfmeta"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-print a document's metadata whenever it changes",
	Long: `Watch a PDF and print its metadata again after every change,
including the rewrite performed by 'pdfmeta edit'. Ctrl-C stops watching.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			fatal("Error resolving path", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc := pdfmeta.New(pdfmeta.WithLogger(slog.Default()))
		printMetadata(ctx, svc, abs)

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			fatal("Error creating watcher", err)
		}
		defer watcher.Close()

		// Watch the directory, not the file: the commit protocol replaces
		// the file by rename, which would drop a direct file watch.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			fatal("Error watching directory", err)
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				// Re-extract off the event loop; a half-written file just
				// reports an error and the next event tries again.
				lifecycle.Go(ctx, func(ctx context.Context) error {
					printMetadata(ctx, svc, abs)
					return nil
				}, lifecycle.WithErrorHandler(func(err error) {
					slog.Default().Error("watch refresh panic", "error", err)
				}))

			case wErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Default().Error("fsnotify error", "error", wErr)
			}
		}
	},
}

func printMetadata(ctx context.Context, svc *pdfmeta.Service, path string) {
	session, err := svc.Open(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return
	}
	fmt.Printf("-- %s\n", filepath.Base(path))
	for _, e := range displayEntries(session.Original) {
		if e.Unsupported != "" {
			fmt.Printf("%s: <%s>\n", e.Key, e.Unsupported)
			continue
		}
		fmt.Printf("%s: %s\n", e.Key, e.Value)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
