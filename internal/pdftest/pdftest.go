// Package pdftest fabricates minimal, well-formed single-page PDF files
// for tests. Offsets in the cross-reference table are computed for real,
// so the fixtures are structurally valid classic-xref documents.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Entry is one information dictionary entry of a fixture.
type Entry struct {
	Key   string
	Value string
}

// Build returns a single-page PDF whose information dictionary holds the
// given entries in order, as literal strings.
func Build(entries ...Entry) []byte {
	var body strings.Builder
	for _, e := range entries {
		body.WriteString("/" + e.Key + " (" + escapeLiteral(e.Value) + ")\n")
	}
	return BuildWithInfoBody(body.String())
}

// BuildWithInfoBody returns a single-page PDF whose information dictionary
// interior is exactly body (the bytes between << and >>).
func BuildWithInfoBody(body string) []byte {
	return build(body, false)
}

// BuildEncrypted returns a PDF whose trailer carries an /Encrypt entry.
func BuildEncrypted() []byte {
	return build("/Title (locked)\n", true)
}

func build(infoBody string, encrypted bool) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, 5)
	addObj := func(num int, content string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, content)
	}

	addObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	addObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	addObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] >>")
	addObj(4, "<<\n"+infoBody+">>")

	xrefOffset := buf.Len()
	buf.WriteString("xref\n0 5\n0000000000 65535 f \n")
	for n := 1; n <= 4; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}

	buf.WriteString("trailer\n<< /Size 5 /Root 1 0 R /Info 4 0 R")
	if encrypted {
		buf.WriteString(" /Encrypt 9 0 R")
	}
	buf.WriteString(" /ID [<6d65> <6d65>] >>\n")
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)

	return buf.Bytes()
}

func escapeLiteral(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// WriteFile writes data under dir and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}
