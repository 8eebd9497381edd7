// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns downloaded PDFs into plain text for summarization.
package extract

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// DefaultMaxContextChars is the hard cutoff applied to extracted text
// before it is used as conversation context.
const DefaultMaxContextChars = 176000

// Extractor transforms a PDF file into plain text. Extraction is lossy:
// backends skip pages they cannot parse and return what they could read.
type Extractor interface {
	Extract(pdfPath string) (string, error)
}

// Text extracts text best-effort. Failures are swallowed: they warn on w
// and yield an empty string so one unreadable PDF never aborts the run.
func Text(e Extractor, pdfPath string, w io.Writer) string {
	text, err := e.Extract(pdfPath)
	if err != nil {
		fmt.Fprintf(w, "warning: extracting %s: %v\n", pdfPath, err)
		return ""
	}
	return text
}

// Truncate enforces the context character budget with a hard cutoff. The
// budget counts runes, not bytes, and the cut lands on a rune boundary.
// The cut is not sentence-aware.
func Truncate(s string, max int) string {
	if max <= 0 {
		max = DefaultMaxContextChars
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
