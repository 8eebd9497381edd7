// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// Result is one raw metadata record from a provider feed, in feed order.
type Result struct {
	ID        string
	Title     string
	Abstract  string
	EntryURL  string
	PDFURL    string
	Published time.Time
}

// Backend yields an ordered sequence of candidate metadata records for a
// submission date window. The sequence may terminate early or be empty.
type Backend interface {
	Name() string
	Fetch(ctx context.Context, from, to time.Time, cfg types.SearchConfig) ([]Result, error)
}

// ArxivBackend queries the arXiv Atom API, newest submissions first.
type ArxivBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *ArxivBackend) Name() string { return "arxiv" }

// Fetch queries the arXiv API for submissions in [from, to], sorted by
// submission date descending. HTTP 429 responses are retried with backoff.
func (b *ArxivBackend) Fetch(ctx context.Context, from, to time.Time, cfg types.SearchConfig) ([]Result, error) {
	query := buildArxivQuery(cfg.Categories, from, to)

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}

	u := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var results []Result
	for _, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		r := Result{
			ID:       arxivID,
			Title:    strings.TrimSpace(entry.Title),
			Abstract: strings.TrimSpace(entry.Summary),
			EntryURL: entry.ID,
			PDFURL:   pdfLink(entry),
		}
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			r.Published = t
		}
		results = append(results, r)
	}
	return results, nil
}

// buildArxivQuery constructs the search_query parameter from the category
// filter and the submission date window.
func buildArxivQuery(categories string, from, to time.Time) string {
	const stampFmt = "20060102"
	return fmt.Sprintf("(%s) AND submittedDate:[%s TO %s]",
		categories, from.Format(stampFmt), to.Format(stampFmt))
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string      `xml:"id"`
	Title     string      `xml:"title"`
	Summary   string      `xml:"summary"`
	Published string      `xml:"published"`
	Links     []arxivLink `xml:"link"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

// pdfLink returns the entry's PDF link, falling back to the /abs/ → /pdf/
// URL rewrite when the feed omits it.
func pdfLink(entry arxivEntry) string {
	for _, l := range entry.Links {
		if l.Title == "pdf" {
			return l.Href
		}
	}
	return strings.Replace(entry.ID, "/abs/", "/pdf/", 1)
}

// extractArxivID pulls the short arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
