package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/quilltools/pdfmeta/pkg/adapters/fs"
	"github.com/quilltools/pdfmeta/pkg/core"
)

// Commit writes a copy of the document at path with its information
// dictionary replaced by final, then swaps it into place behind a backup.
//
// The edited output is an incremental update: the original bytes are kept
// verbatim as a prefix and a new information dictionary object, cross
// reference section and trailer are appended, so the page and content
// structure is untouched by construction.
//
// Swap protocol: the output is staged to a temp file first, then the
// original is renamed to a fresh backup path, then the temp file is moved
// to path. A failed backup rename aborts with storage untouched. A failed
// final move restores the backup; if that restoration fails too, a
// CriticalRecoveryError names both surviving paths.
func (s *Store) Commit(ctx context.Context, path string, final core.Mapping) (core.CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return core.CommitResult{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return core.CommitResult{}, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := parseDocument(data)
	if err != nil {
		return core.CommitResult{}, err
	}

	out, err := doc.appendInfoUpdate(final)
	if err != nil {
		return core.CommitResult{}, err
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmpPath, err := fs.WriteTemp(path, out, perm)
	if err != nil {
		return core.CommitResult{}, err
	}

	backupPath, err := fs.NextBackupPathN(path, s.config.ProbeLimit)
	if err != nil {
		os.Remove(tmpPath)
		return core.CommitResult{}, err
	}

	// Point of no return. A cancelled context is honored up to here; the
	// rename pair below always runs to completion.
	if err := ctx.Err(); err != nil {
		os.Remove(tmpPath)
		return core.CommitResult{}, err
	}

	if err := s.rename(path, backupPath); err != nil {
		os.Remove(tmpPath)
		return core.CommitResult{}, fmt.Errorf("%w: renaming %s to %s: %v",
			core.ErrBackupRenameFailed, path, backupPath, err)
	}

	if err := s.rename(tmpPath, path); err != nil {
		if restoreErr := s.rename(backupPath, path); restoreErr != nil {
			return core.CommitResult{}, &core.CriticalRecoveryError{
				BackupPath:  backupPath,
				TempPath:    tmpPath,
				FinalizeErr: err,
				RestoreErr:  restoreErr,
			}
		}
		os.Remove(tmpPath)
		return core.CommitResult{}, fmt.Errorf("%w: moving %s to %s: %v",
			core.ErrFinalizeWriteFailed, tmpPath, path, err)
	}

	s.config.Logger.Debug("commit written", "path", path, "backup", backupPath, "entries", len(final))
	return core.CommitResult{Path: path, BackupPath: backupPath}, nil
}

// appendInfoUpdate serializes the incremental update carrying mapping as
// the new information dictionary.
func (d *document) appendInfoUpdate(mapping core.Mapping) ([]byte, error) {
	if d.rootRaw == "" || d.size == 0 {
		return nil, fmt.Errorf("%w: trailer has no /Root or /Size", core.ErrUnreadableDocument)
	}

	objNum := d.size

	var obj bytes.Buffer
	fmt.Fprintf(&obj, "%d 0 obj\n<<\n", objNum)
	for _, e := range mapping {
		fmt.Fprintf(&obj, "%s %s\n", encodeName(e.Key), encodeValue(e.Value))
	}
	obj.WriteString(">>\nendobj\n")

	out := make([]byte, 0, len(d.data)+obj.Len()+256)
	out = append(out, d.data...)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}

	objOffset := len(out)
	out = append(out, obj.Bytes()...)

	xrefOffset := len(out)
	out = append(out, fmt.Sprintf("xref\n0 1\n0000000000 65535 f \n%d 1\n%010d 00000 n \n",
		objNum, objOffset)...)

	trailer := fmt.Sprintf("trailer\n<< /Size %d /Root %s /Prev %d /Info %d 0 R",
		objNum+1, d.rootRaw, d.prevStart, objNum)
	if d.idRaw != "" {
		trailer += " /ID " + d.idRaw
	}
	trailer += fmt.Sprintf(" >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)
	out = append(out, trailer...)

	return out, nil
}

// encodeValue serializes a value for the information dictionary. Values
// with a raw form (names, numbers, references, arrays) pass through
// unchanged; edited text is encoded as a PDF string.
func encodeValue(v core.Value) string {
	if v.Raw != "" {
		return v.Raw
	}
	return encodeTextString(v.Text)
}
