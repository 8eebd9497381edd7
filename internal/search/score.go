// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Score computes the relevance of a paper against the interest terms.
// Each term contributes 2 on a case-insensitive substring hit in the
// title, else 1 on a hit in the abstract, else 0. A term present in both
// contributes only the title weight. An empty term list scores 0.
func Score(title, abstract string, terms []string) int {
	lowerTitle := strings.ToLower(title)
	lowerAbstract := strings.ToLower(abstract)

	score := 0
	for _, term := range terms {
		t := strings.ToLower(term)
		switch {
		case strings.Contains(lowerTitle, t):
			score += 2
		case strings.Contains(lowerAbstract, t):
			score += 1
		}
	}
	return score
}

// LoadTerms reads the newline-separated interest term list from path.
// Blank lines are dropped. A missing file is degraded input: it warns on
// w and returns an empty list so the run continues with zero scores.
func LoadTerms(path string, w io.Writer) []string {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(w, "warning: terms file %s: %v\n", path, err)
		return nil
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(w, "warning: reading terms file %s: %v\n", path, err)
	}
	return terms
}
