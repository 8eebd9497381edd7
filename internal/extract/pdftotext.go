// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	return cmd.Run()
}

// PdftotextExtractor extracts text by running the pdftotext binary with
// output on stdout. The -q flag suppresses per-page syntax warnings, so
// unreadable pages are skipped silently and the rest of the document
// still comes through.
type PdftotextExtractor struct {
	exec executor
}

// NewPdftotextExtractor verifies that pdftotext is on PATH and returns
// the extractor.
func NewPdftotextExtractor() (*PdftotextExtractor, error) {
	e := &PdftotextExtractor{exec: &osExecutor{}}
	if _, err := e.exec.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("pdftotext not found on PATH: %w", err)
	}
	return e, nil
}

// Extract runs pdftotext on the PDF and returns the extracted text.
func (p *PdftotextExtractor) Extract(pdfPath string) (string, error) {
	var out bytes.Buffer
	if err := p.exec.RunPiped(binPdftotext, []string{"-q", pdfPath, "-"}, &out); err != nil {
		return "", fmt.Errorf("running pdftotext on %s: %w", pdfPath, err)
	}
	return out.String(), nil
}
