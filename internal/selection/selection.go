// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection picks the bounded top-K candidates by score and
// downloads their PDFs for summarization.
package selection

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdiddy/digest-engine/internal/search"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// SelectionFile is the per-run selection listing, overwritten each run.
// Downstream stages use it to resolve identifier → source link.
const SelectionFile = "papers_to_summarize.csv"

// PDFDir is the working subdirectory holding downloaded PDFs.
const PDFDir = "pdfs"

// History records downloaded papers across runs.
type History interface {
	RecordDownloaded(candidates []types.Candidate, runDate time.Time) error
}

// Select returns the top-k candidates by score. The input is sorted
// defensively: the sort is stable and descending, so callers that pass an
// already-sorted listing get its first k elements unchanged and equal
// scores keep their relative order.
func Select(candidates []types.Candidate, k int) []types.Candidate {
	sorted := make([]types.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if k < 0 {
		k = 0
	}
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}

// Run executes the selection stage: load the candidate listing, select
// the top-K, download each selected PDF, write the selection listing, and
// append the downloads to the history log. Download failures are not
// retried — the first error aborts the step.
func Run(ctx context.Context, client *http.Client, hist History, cfg types.SelectionConfig, workDir string, now time.Time, w io.Writer) error {
	candidates, err := search.ReadCandidates(filepath.Join(workDir, search.CandidatesFile), w)
	if err != nil {
		return err
	}

	k := cfg.PapersToSummarize
	if k <= 0 {
		k = 5
	}
	selected := Select(candidates, k)

	pdfDir := filepath.Join(workDir, PDFDir)
	if err := os.MkdirAll(pdfDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", pdfDir, err)
	}

	for _, c := range selected {
		pdfPath := filepath.Join(pdfDir, c.ID+".pdf")
		if _, err := os.Stat(pdfPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", c.ID)
			continue
		}
		if err := downloadFile(ctx, client, c.PDFURL, pdfPath, cfg); err != nil {
			return fmt.Errorf("downloading %s: %w", c.ID, err)
		}
		fmt.Fprintf(w, "downloaded: %s\n", c.ID)
	}

	if err := search.WriteCandidates(filepath.Join(workDir, SelectionFile), selected); err != nil {
		return fmt.Errorf("writing selection listing: %w", err)
	}

	if hist != nil {
		if err := hist.RecordDownloaded(selected, now); err != nil {
			return fmt.Errorf("recording downloaded papers: %w", err)
		}
	}

	fmt.Fprintf(w, "Selected top %d papers.\n", len(selected))
	return nil
}

// downloadFile fetches url to destPath using a temporary file so a failed
// download never leaves a partial PDF behind.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string, cfg types.SelectionConfig) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
