package pdfmeta

import (
	"context"
	"log/slog"

	"github.com/quilltools/pdfmeta/internal/platform"
	"github.com/quilltools/pdfmeta/pkg/core"
)

// --- Types ---

// Mapping is an ordered information dictionary snapshot.
type Mapping = core.Mapping

// Entry is one key/value pair of a Mapping.
type Entry = core.Entry

// Value is the decoded form of an information dictionary value.
type Value = core.Value

// EditRow is one row of an ordered edit list.
type EditRow = core.EditRow

// Session is one open document: its handle plus the extracted mapping.
type Session = core.Session

// Service is the entry point for open/reconcile/commit operations.
type Service = core.Service

// CommitResult names the edited file and its backup.
type CommitResult = core.CommitResult

// --- Configuration ---

// Option defines a functional option for configuring pdfmeta.
type Option = platform.Option

// WithLogger sets the logger for the service and its store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithBackupProbeLimit bounds the backup name search.
func WithBackupProbeLimit(limit int) Option {
	return platform.WithBackupProbeLimit(limit)
}

// WithStore allows injecting a custom store adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// --- Factory ---

// New creates a new metadata Service backed by the PDF store.
func New(opts ...Option) *Service {
	return platform.New(opts...)
}

// --- Operations ---

// Open extracts the metadata of the document at path with a default
// service and returns the session.
func Open(ctx context.Context, path string, opts ...Option) (*Session, error) {
	return New(opts...).Open(ctx, path)
}

// Reconcile merges an ordered edit list into an original mapping. Pure.
func Reconcile(original Mapping, edits []EditRow) (Mapping, error) {
	return core.Reconcile(original, edits)
}
