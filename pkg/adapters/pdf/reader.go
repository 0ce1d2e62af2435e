// Package pdf implements the core.Store contract for PDF containers.
//
// The reader is a heuristic scanner over the raw bytes, not a full PDF
// parser: it resolves the active trailer entries and the information
// dictionary object, which is all the metadata workflow needs. Encrypted
// documents are detected and rejected, never decrypted.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/quilltools/pdfmeta/pkg/core"
)

var (
	headerMagic = []byte("%PDF-")

	infoRefRe   = regexp.MustCompile(`/Info\s+(\d+)\s+(\d+)\s+R`)
	rootRefRe   = regexp.MustCompile(`/Root\s+(\d+)\s+(\d+)\s+R`)
	encryptRe   = regexp.MustCompile(`/Encrypt\s+\d+\s+\d+\s+R`)
	sizeRe      = regexp.MustCompile(`/Size\s+(\d+)`)
	startxrefRe = regexp.MustCompile(`startxref\s+(\d+)`)
	idArrayRe   = regexp.MustCompile(`/ID\s*(\[[^\]]*\])`)
)

// document holds what the scanner resolved from the raw bytes. The active
// trailer values are the last ones in the file, so the newest incremental
// update wins.
type document struct {
	data []byte

	size      int    // /Size of the active trailer, 0 if absent
	rootRaw   string // "N G R" reference to the catalog, "" if absent
	idRaw     string // raw /ID array, "" if absent
	prevStart int64  // byte offset the last startxref points at

	infoNum int // object number of the info dictionary, -1 if absent
	infoGen int
}

// parseDocument scans data and resolves the trailer state.
func parseDocument(data []byte) (*document, error) {
	if !bytes.HasPrefix(data, headerMagic) {
		return nil, fmt.Errorf("%w: missing %%PDF- header", core.ErrUnreadableDocument)
	}

	starts := startxrefRe.FindAllSubmatch(data, -1)
	if starts == nil {
		return nil, fmt.Errorf("%w: no startxref marker", core.ErrUnreadableDocument)
	}
	prev, err := strconv.ParseInt(string(starts[len(starts)-1][1]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad startxref offset", core.ErrUnreadableDocument)
	}

	if encryptRe.Match(data) {
		return nil, core.ErrEncryptedDocument
	}

	doc := &document{data: data, prevStart: prev, infoNum: -1}

	if m := sizeRe.FindAllSubmatch(data, -1); m != nil {
		doc.size, _ = strconv.Atoi(string(m[len(m)-1][1]))
	}
	if m := rootRefRe.FindAllSubmatch(data, -1); m != nil {
		last := m[len(m)-1]
		doc.rootRaw = fmt.Sprintf("%s %s R", last[1], last[2])
	}
	if m := idArrayRe.FindAllSubmatch(data, -1); m != nil {
		doc.idRaw = string(m[len(m)-1][1])
	}
	if m := infoRefRe.FindAllSubmatch(data, -1); m != nil {
		last := m[len(m)-1]
		doc.infoNum, _ = strconv.Atoi(string(last[1]))
		doc.infoGen, _ = strconv.Atoi(string(last[2]))
	}

	return doc, nil
}

// infoMapping locates the information dictionary object and decodes it.
// A document without an /Info reference yields an empty mapping.
func (d *document) infoMapping() (core.Mapping, error) {
	if d.infoNum < 0 {
		return core.Mapping{}, nil
	}

	objRe, err := regexp.Compile(fmt.Sprintf(`(^|[^0-9])%d\s+%d\s+obj\b`, d.infoNum, d.infoGen))
	if err != nil {
		return nil, err
	}
	locs := objRe.FindAllSubmatchIndex(d.data, -1)
	if locs == nil {
		return nil, fmt.Errorf("%w: information dictionary object %d %d not found",
			core.ErrUnreadableDocument, d.infoNum, d.infoGen)
	}
	// The last definition of the object is the live one.
	start := locs[len(locs)-1][1]

	mapping, err := parseInfoDict(d.data, start)
	if err != nil {
		return nil, err
	}
	return mapping, nil
}

// Extract reads the document at path and returns its information
// dictionary in encounter order. Read-only; path is never touched.
func (s *Store) Extract(ctx context.Context, path string) (core.Mapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	mapping, err := doc.infoMapping()
	if err != nil {
		return nil, err
	}

	s.config.Logger.Debug("metadata extracted", "path", path, "entries", len(mapping))
	return mapping, nil
}
