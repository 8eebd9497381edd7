// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// candidateHeader is the column layout shared by the candidate and
// selection listings.
var candidateHeader = []string{"ID", "Title", "ArXiv URL", "PDF URL", "Published Date", "Score"}

const dateFmt = "2006-01-02"

// WriteCandidates overwrites path with the full candidate listing, one
// row per candidate under the shared header.
func WriteCandidates(path string, candidates []types.Candidate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(candidateHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range candidates {
		published := ""
		if !c.Published.IsZero() {
			published = c.Published.Format(dateFmt)
		}
		row := []string{c.ID, c.Title, c.ArxivURL, c.PDFURL, published, strconv.Itoa(c.Score)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", c.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// ReadCandidates loads a candidate listing written by WriteCandidates.
// A missing file is degraded input: it warns on w and returns an empty
// list. A malformed file is a fatal step error.
func ReadCandidates(path string, w io.Writer) ([]types.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(w, "warning: candidate listing %s not found, continuing with empty list\n", path)
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var candidates []types.Candidate
	for i, rec := range records[1:] {
		if len(rec) != len(candidateHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", path, i+2, len(candidateHeader), len(rec))
		}
		score, err := strconv.Atoi(rec[5])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid score %q", path, i+2, rec[5])
		}
		c := types.Candidate{
			ID:       rec[0],
			Title:    rec[1],
			ArxivURL: rec[2],
			PDFURL:   rec[3],
			Score:    score,
		}
		if rec[4] != "" {
			t, err := time.Parse(dateFmt, rec[4])
			if err != nil {
				return nil, fmt.Errorf("%s row %d: invalid published date %q", path, i+2, rec[4])
			}
			c.Published = t
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}
