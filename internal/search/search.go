// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search discovers candidate papers, scores them against the
// interest terms, and writes the per-run candidate listing.
package search

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// CandidatesFile is the per-run candidate listing, overwritten each run.
const CandidatesFile = "papers_found.csv"

// History records discovered candidates across runs and holds the
// incremental search cursor.
type History interface {
	RecordSeen(candidates []types.Candidate, runDate time.Time) error
	Cursor() (time.Time, bool, error)
	SetCursor(date time.Time) error
}

// Output holds the scored candidate listing and ingestion statistics.
type Output struct {
	Candidates []types.Candidate

	// Halted reports whether ingestion stopped early at a result dated at
	// or before the window start.
	Halted bool

	// Boundary is the published date of the halting result, recorded as
	// the next run's incremental start point.
	Boundary time.Time
}

// Ingest scores raw results in discovery order. When restrict is set,
// ingestion halts at the first result whose published date is at or
// before windowStart — remaining results are discarded and the boundary
// date is reported. The provider feed is assumed to be ordered by
// submission date descending, which the arXiv backend requests.
func Ingest(results []Result, terms []string, restrict bool, windowStart time.Time) Output {
	var out Output
	for _, r := range results {
		if restrict && !r.Published.IsZero() && !dateOnly(r.Published).After(dateOnly(windowStart)) {
			out.Halted = true
			out.Boundary = dateOnly(r.Published)
			break
		}

		out.Candidates = append(out.Candidates, types.Candidate{
			ID:        r.ID,
			Title:     r.Title,
			Abstract:  r.Abstract,
			ArxivURL:  r.EntryURL,
			PDFURL:    r.PDFURL,
			Published: r.Published,
			Score:     Score(r.Title, r.Abstract, terms),
		})
	}
	return out
}

// SortByScore sorts candidates descending by score. The sort is stable:
// equal scores keep their discovery order.
func SortByScore(candidates []types.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// Run executes the search stage: fetch the window of recent submissions,
// score and sort them, overwrite the candidate listing, and append the
// run to the history log.
func Run(ctx context.Context, backend Backend, hist History, cfg types.SearchConfig, workDir string, now time.Time, w io.Writer) error {
	terms := LoadTerms(cfg.TermsFile, w)

	days := cfg.DateRangeDays
	if days <= 0 {
		days = 7
	}
	from := now.AddDate(0, 0, -days)

	// Resume from the last recorded boundary when it narrows the window.
	if hist != nil {
		if cur, ok, err := hist.Cursor(); err != nil {
			return fmt.Errorf("reading search cursor: %w", err)
		} else if ok && cur.After(from) {
			from = cur
		}
	}

	results, err := backend.Fetch(ctx, from, now, cfg)
	if err != nil {
		return fmt.Errorf("%s search: %w", backend.Name(), err)
	}

	out := Ingest(results, terms, cfg.RestrictToMostRecent, from)
	SortByScore(out.Candidates)

	if err := WriteCandidates(filepath.Join(workDir, CandidatesFile), out.Candidates); err != nil {
		return fmt.Errorf("writing candidate listing: %w", err)
	}

	if hist != nil {
		if err := hist.RecordSeen(out.Candidates, now); err != nil {
			return fmt.Errorf("recording seen papers: %w", err)
		}
		if out.Halted {
			if err := hist.SetCursor(out.Boundary); err != nil {
				return fmt.Errorf("recording search cursor: %w", err)
			}
		}
	}

	fmt.Fprintf(w, "Found %d papers.\n", len(out.Candidates))
	if out.Halted {
		fmt.Fprintf(w, "stopped at %s (restrict_to_most_recent)\n", out.Boundary.Format(dateFmt))
	}
	return nil
}

// dateOnly truncates a timestamp to calendar-day granularity in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
