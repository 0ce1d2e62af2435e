package pdfmeta

import _ "embed"

// Version exposes the version of the library, embedded from version.txt.
//
//go:embed version.txt
var Version string
