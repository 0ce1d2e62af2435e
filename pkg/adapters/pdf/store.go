package pdf

import (
	"log/slog"
	"os"

	"github.com/quilltools/pdfmeta/pkg/adapters/fs"
	"github.com/quilltools/pdfmeta/pkg/core"
)

// Config holds the configuration for the PDF store.
type Config struct {
	// Logger for debug output. nil means silent.
	Logger *slog.Logger

	// ProbeLimit bounds the backup name search. Zero means
	// fs.DefaultProbeLimit.
	ProbeLimit int
}

// Store implements core.Store for PDF containers on the local filesystem.
type Store struct {
	config Config

	// rename is os.Rename, swappable in tests to drive the commit
	// recovery paths.
	rename func(oldpath, newpath string) error
}

// NewStore creates a new PDF store.
func NewStore(config Config) *Store {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.ProbeLimit <= 0 {
		config.ProbeLimit = fs.DefaultProbeLimit
	}
	return &Store{config: config, rename: os.Rename}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "pdf"
}

var _ core.Store = (*Store)(nil)
