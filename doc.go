// Package pdfmeta is the Composition Root for the pdfmeta application.
//
// It connects the core metadata logic (Domain Layer) with the container and
// filesystem adapters (Persistence Layer) using the Hexagonal Architecture
// pattern.
//
// Philosophy:
//
// pdfmeta edits the document information dictionary of a PDF (title, author,
// subject, keywords, custom entries) without ever modifying the original
// file in place. A commit stages the edited output to a temp file, renames
// the original to a fresh .bak/.bakN path, and only then moves the output
// into place. On any failure short of a double rename fault, storage is
// either untouched or fully committed.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from container details.
//   - **Safe Writes**: Backup-then-swap protocol; the original bytes survive every outcome.
//   - **Ordered Metadata**: Entries keep their encounter order; edits keep positions stable.
//   - **Typed Failures**: Every failure path returns a typed error; nothing is swallowed.
//   - **Extensible**: Other container formats can plug in via core.Store.
//
// Usage:
//
//	// Open a document and edit its metadata
//	session, err := pdfmeta.Open(ctx, "report.pdf", pdfmeta.WithLogger(logger))
//
//	final, err := session.Reconcile([]pdfmeta.EditRow{
//		{Key: "Title", Value: "Final"},
//		{Key: "Author", Value: "J. Doe", New: true},
//	})
//
//	res, err := session.Commit(ctx, final)
//	// res.BackupPath holds the renamed original
package pdfmeta
