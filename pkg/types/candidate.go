// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the digest-engine pipeline.
package types

import "time"

// Candidate is a paper discovered by the search stage, not yet guaranteed
// to be summarized. Once scored a candidate is never mutated; later runs
// that rediscover the same paper produce new records with the same ID.
type Candidate struct {
	// ID is the short arXiv identifier (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract. May be empty.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// ArxivURL is the abstract page URL used as the source link in the digest.
	ArxivURL string `json:"arxiv_url" yaml:"arxiv_url"`

	// PDFURL is the direct download URL for the paper PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Published is the submission date reported by the source.
	Published time.Time `json:"published" yaml:"published"`

	// Score is the relevance score against the interest terms, computed
	// once at discovery time.
	Score int `json:"score" yaml:"score"`
}
