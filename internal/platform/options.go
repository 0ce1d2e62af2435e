package platform

import (
	"log/slog"

	"github.com/quilltools/pdfmeta/pkg/core"
)

// options holds the internal configuration for the pdfmeta service.
type options struct {
	store      core.Store
	logger     *slog.Logger
	probeLimit int
}

// Option defines a functional option for configuring pdfmeta.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		store:      nil,
		logger:     nil,
		probeLimit: 0,
	}
}

// WithLogger sets the logger for the service and its store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBackupProbeLimit bounds the backup name search. Values <= 0 keep the
// default limit.
func WithBackupProbeLimit(limit int) Option {
	return func(o *options) {
		o.probeLimit = limit
	}
}

// WithStore allows injecting a custom store adapter (e.g. a mock).
// If provided, the default PDF store is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}
