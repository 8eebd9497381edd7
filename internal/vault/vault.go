// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vault exports finished summaries into a notes vault directory
// as tagged Markdown files.
package vault

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/digest-engine/internal/search"
	"github.com/pdiddy/digest-engine/internal/selection"
	"github.com/pdiddy/digest-engine/internal/summarize"
	"github.com/pdiddy/digest-engine/pkg/types"
)

const maxTags = 3

// Vault writes summary notes into a vault directory.
type Vault struct {
	dir string
}

// New returns a Vault rooted at dir, creating it if needed.
func New(dir string) (*Vault, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating vault directory %s: %w", dir, err)
	}
	return &Vault{dir: dir}, nil
}

// Export writes one summary as <id>.md with a tags frontmatter block.
func (v *Vault) Export(id, summary string, tags []string) error {
	var b strings.Builder
	b.WriteString("---\ntags: " + strings.Join(tags, ", ") + "\n---\n\n")
	b.WriteString(summary)

	path := filepath.Join(v.dir, id+".md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing note %s: %w", path, err)
	}
	return nil
}

// Tags returns up to three interest terms that occur case-insensitively
// in the text, in term-list order. A term repeated in the list yields
// one tag.
func Tags(text string, terms []string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var tags []string
	for _, term := range terms {
		if len(tags) >= maxTags {
			break
		}
		t := strings.ToLower(term)
		if seen[t] {
			continue
		}
		if strings.Contains(lower, t) {
			seen[t] = true
			tags = append(tags, term)
		}
	}
	return tags
}

// Run executes the export stage: for each selected paper with a summary
// on disk, write a tagged note into the vault. Papers without a summary
// file warn and are skipped. When cfg.Cleanup is set the per-run PDF
// working directory is cleared afterwards.
func Run(v *Vault, terms []string, cfg types.VaultConfig, workDir string, w io.Writer) error {
	selected, err := search.ReadCandidates(filepath.Join(workDir, selection.SelectionFile), w)
	if err != nil {
		return err
	}

	outDir := filepath.Join(workDir, summarize.SummariesDir)
	exported := 0
	for _, c := range selected {
		summaryPath := filepath.Join(outDir, c.ID+".txt")
		data, err := os.ReadFile(summaryPath)
		if err != nil {
			fmt.Fprintf(w, "warning: summary for %s not found, skipping export\n", c.ID)
			continue
		}

		note := c.ArxivURL + "\n\n" + string(data)
		if err := v.Export(c.ID, note, Tags(c.Title+" "+string(data), terms)); err != nil {
			return err
		}
		fmt.Fprintf(w, "exported: %s\n", c.ID)
		exported++
	}
	fmt.Fprintf(w, "Exported %d notes to vault.\n", exported)

	if cfg.Cleanup {
		if err := clearDir(filepath.Join(workDir, selection.PDFDir), w); err != nil {
			return err
		}
	}
	return nil
}

// clearDir removes all regular files in dir. A missing directory is fine.
func clearDir(dir string, w io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(w, "warning: removing %s: %v\n", path, err)
		}
	}
	fmt.Fprintf(w, "Cleared %s.\n", dir)
	return nil
}
