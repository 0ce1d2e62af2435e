package platform

import (
	"github.com/quilltools/pdfmeta/pkg/adapters/pdf"
	"github.com/quilltools/pdfmeta/pkg/core"
)

// New wires the domain service to its store adapter.
//
//	svc := platform.New(platform.WithLogger(logger))
func New(opts ...Option) *core.Service {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		store = pdf.NewStore(pdf.Config{
			Logger:     o.logger,
			ProbeLimit: o.probeLimit,
		})
	}

	return core.NewService(store, o.logger)
}
