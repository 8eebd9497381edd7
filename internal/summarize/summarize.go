// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize drives a multi-turn chat exchange per paper and
// assembles the per-paper summaries into the newsletter digest.
package summarize

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/digest-engine/internal/extract"
	"github.com/pdiddy/digest-engine/internal/search"
	"github.com/pdiddy/digest-engine/internal/selection"
	"github.com/pdiddy/digest-engine/pkg/types"
)

const (
	// SummariesDir is the working subdirectory holding per-paper summaries
	// and the digest.
	SummariesDir = "summaries"

	// DigestFile is the assembled newsletter, rebuilt in full every run.
	DigestFile = "newsletter.txt"

	// SectionDelimiter separates digest sections. The podcast stage splits
	// on the same delimiter.
	SectionDelimiter = "\n\n\n\n"
)

// ChatService produces one assistant response for an ordered conversation.
type ChatService interface {
	Complete(ctx context.Context, conv Conversation) (string, error)
}

// Record holds the outcome of summarizing one paper: the full turn log
// for inspection and the final summary text.
type Record struct {
	ID      string `json:"id" yaml:"id"`
	Link    string `json:"link" yaml:"link"`
	Turns   []Turn `json:"turns" yaml:"turns"`
	Summary string `json:"summary" yaml:"summary"`
}

// Orchestrate runs the multi-turn exchange for one paper. The extracted
// text becomes the system context; each configured prompt is appended as
// a user turn and answered in order, with the full history sent on every
// call. When a final prompt is configured its response becomes the
// summary, otherwise the accumulated responses do. Every prompt and
// response is echoed to w.
func Orchestrate(ctx context.Context, svc ChatService, id, link, text string, cfg types.SummarizeConfig, w io.Writer) Record {
	conv := NewConversation(text)
	policy := RetryPolicy{MaxAttempts: cfg.MaxRetries, Delay: cfg.RetryDelay}

	invoke := func(conv Conversation) string {
		return policy.Invoke(ctx, func(ctx context.Context) (string, error) {
			return svc.Complete(ctx, conv)
		})
	}

	var parts []string
	for _, prompt := range cfg.Prompts {
		conv = conv.Append(RoleUser, prompt)
		fmt.Fprintf(w, "\nPrompt: %s\n", prompt)

		answer := invoke(conv)
		fmt.Fprintf(w, "Response: %s\n", answer)

		conv = conv.Append(RoleAssistant, answer)
		parts = append(parts, answer)
	}

	summary := strings.Join(parts, "\n\n")
	if cfg.FinalPrompt != "" {
		conv = conv.Append(RoleUser, cfg.FinalPrompt)
		fmt.Fprintf(w, "\nFinal prompt: %s\n", cfg.FinalPrompt)

		answer := invoke(conv)
		fmt.Fprintf(w, "Final summary: %s\n", answer)

		conv = conv.Append(RoleAssistant, answer)
		summary = answer
	}

	return Record{ID: id, Link: link, Turns: conv.Turns(), Summary: summary}
}

// Run executes the summarize stage: for each selected paper in selection
// order, summarize it unless its output file already exists, then rebuild
// the digest in full. A paper with an existing summary file is skipped
// but still contributes its header, link, and prior content to the digest,
// so a re-run with no new papers reproduces the digest byte for byte.
func Run(ctx context.Context, chat ChatService, ex extract.Extractor, cfg types.SummarizeConfig, workDir string, w io.Writer) error {
	selected, err := search.ReadCandidates(filepath.Join(workDir, selection.SelectionFile), w)
	if err != nil {
		return err
	}

	outDir := filepath.Join(workDir, SummariesDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	var digest strings.Builder
	for i, c := range selected {
		fmt.Fprintf(w, "\nProcessing paper %d/%d: %s\n", i+1, len(selected), c.ID)

		digest.WriteString(SectionDelimiter)
		digest.WriteString("# " + c.ID + "\n" + c.ArxivURL + "\n")

		outPath := filepath.Join(outDir, c.ID+".txt")
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already summarized)\n", c.ID)
			prior, readErr := os.ReadFile(outPath)
			if readErr != nil {
				fmt.Fprintf(w, "warning: reading prior summary for %s: %v\n", c.ID, readErr)
				continue
			}
			digest.Write(prior)
			continue
		}

		pdfPath := filepath.Join(workDir, selection.PDFDir, c.ID+".pdf")
		text := extract.Text(ex, pdfPath, w)

		rec := Record{ID: c.ID, Link: c.ArxivURL}
		if text == "" {
			fmt.Fprintf(w, "warning: no text extracted for %s, recording empty summary\n", c.ID)
		} else {
			rec = Orchestrate(ctx, chat, c.ID, c.ArxivURL, extract.Truncate(text, cfg.MaxContextChars), cfg, w)
		}

		if err := os.WriteFile(outPath, []byte(rec.Summary), 0o644); err != nil {
			return fmt.Errorf("writing summary for %s: %w", c.ID, err)
		}
		if err := writeTranscript(filepath.Join(outDir, c.ID+"-transcript.yaml"), rec); err != nil {
			return fmt.Errorf("writing transcript for %s: %w", c.ID, err)
		}
		digest.WriteString(rec.Summary)
	}

	digestPath := filepath.Join(outDir, DigestFile)
	if err := os.WriteFile(digestPath, []byte(digest.String()), 0o644); err != nil {
		return fmt.Errorf("writing digest: %w", err)
	}
	fmt.Fprintf(w, "\nNewsletter saved to %s.\n", digestPath)
	return nil
}

// writeTranscript persists the full turn log beside the summary so the
// operator can inspect every exchange.
func writeTranscript(path string, rec Record) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling transcript: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
