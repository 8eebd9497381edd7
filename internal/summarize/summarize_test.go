// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/digest-engine/internal/search"
	"github.com/pdiddy/digest-engine/internal/selection"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// fakeChat answers each call with a numbered response and records the
// conversation state it was handed.
type fakeChat struct {
	calls    int
	failures int
	convs    []Conversation
}

func (f *fakeChat) Complete(ctx context.Context, conv Conversation) (string, error) {
	f.calls++
	f.convs = append(f.convs, conv)
	if f.calls <= f.failures {
		return "", errors.New("rate limited")
	}
	return fmt.Sprintf("response %d", f.calls), nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(pdfPath string) (string, error) { return f.text, f.err }

func testSummarizeCfg() types.SummarizeConfig {
	return types.SummarizeConfig{
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		Prompts:    []string{"What is the main contribution?", "What are the limitations?"},
	}
}

// --- Orchestrate ---

func TestOrchestrateTurnOrder(t *testing.T) {
	chat := &fakeChat{}
	var buf bytes.Buffer
	rec := Orchestrate(context.Background(), chat, "2301.07041", "http://arxiv.org/abs/2301.07041", "paper text", testSummarizeCfg(), &buf)

	// One system turn plus a user/assistant pair per prompt.
	if len(rec.Turns) != 5 {
		t.Fatalf("got %d turns, want 5", len(rec.Turns))
	}
	wantRoles := []Role{RoleSystem, RoleUser, RoleAssistant, RoleUser, RoleAssistant}
	for i, r := range wantRoles {
		if rec.Turns[i].Role != r {
			t.Errorf("turns[%d].Role = %s, want %s", i, rec.Turns[i].Role, r)
		}
	}
	if rec.Turns[0].Content != "paper text" {
		t.Errorf("system turn = %q, want extracted text", rec.Turns[0].Content)
	}

	// Each call sees the full history so far.
	if chat.calls != 2 {
		t.Fatalf("chat called %d times, want 2", chat.calls)
	}
	if chat.convs[0].Len() != 2 || chat.convs[1].Len() != 4 {
		t.Errorf("history lengths = [%d, %d], want [2, 4]", chat.convs[0].Len(), chat.convs[1].Len())
	}

	if rec.Summary != "response 1\n\nresponse 2" {
		t.Errorf("Summary = %q", rec.Summary)
	}
}

func TestOrchestrateFinalPrompt(t *testing.T) {
	chat := &fakeChat{}
	cfg := testSummarizeCfg()
	cfg.FinalPrompt = "Synthesize the above into a concise summary."

	var buf bytes.Buffer
	rec := Orchestrate(context.Background(), chat, "id", "link", "text", cfg, &buf)

	if rec.Summary != "response 3" {
		t.Errorf("Summary = %q, want the final response only", rec.Summary)
	}
	if len(rec.Turns) != 7 {
		t.Errorf("got %d turns, want 7", len(rec.Turns))
	}
}

func TestOrchestrateDegradedTurn(t *testing.T) {
	// Every attempt of the first prompt fails; the second succeeds.
	chat := &fakeChat{failures: 3}
	var buf bytes.Buffer
	rec := Orchestrate(context.Background(), chat, "id", "link", "text", testSummarizeCfg(), &buf)

	if rec.Turns[2].Content != "Error: rate limited" {
		t.Errorf("degraded turn = %q, want sentinel", rec.Turns[2].Content)
	}
	if rec.Turns[4].Content != "response 4" {
		t.Errorf("second answer = %q, want response 4", rec.Turns[4].Content)
	}
	if !strings.Contains(rec.Summary, "Error: rate limited") {
		t.Errorf("Summary = %q, want sentinel embedded", rec.Summary)
	}
}

// --- Run ---

func seedSelection(t *testing.T, workDir string, candidates []types.Candidate) {
	t.Helper()
	if err := search.WriteCandidates(filepath.Join(workDir, selection.SelectionFile), candidates); err != nil {
		t.Fatalf("writing selection listing: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(workDir, selection.PDFDir), 0o755); err != nil {
		t.Fatalf("creating pdf dir: %v", err)
	}
	for _, c := range candidates {
		pdf := filepath.Join(workDir, selection.PDFDir, c.ID+".pdf")
		if err := os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatalf("seeding PDF: %v", err)
		}
	}
}

func TestRunWritesSummariesAndDigest(t *testing.T) {
	dir := t.TempDir()
	seedSelection(t, dir, []types.Candidate{
		{ID: "2301.00001", ArxivURL: "http://arxiv.org/abs/2301.00001", Score: 5},
		{ID: "2301.00002", ArxivURL: "http://arxiv.org/abs/2301.00002", Score: 3},
	})

	chat := &fakeChat{}
	cfg := testSummarizeCfg()
	cfg.Prompts = []string{"Summarize."}

	var buf bytes.Buffer
	if err := Run(context.Background(), chat, &fakeExtractor{text: "body"}, cfg, dir, &buf); err != nil {
		t.Fatalf("Run: %v", err)
	}

	sum1, err := os.ReadFile(filepath.Join(dir, SummariesDir, "2301.00001.txt"))
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	if string(sum1) != "response 1" {
		t.Errorf("summary 1 = %q", sum1)
	}

	digest, err := os.ReadFile(filepath.Join(dir, SummariesDir, DigestFile))
	if err != nil {
		t.Fatalf("reading digest: %v", err)
	}
	want := SectionDelimiter + "# 2301.00001\nhttp://arxiv.org/abs/2301.00001\nresponse 1" +
		SectionDelimiter + "# 2301.00002\nhttp://arxiv.org/abs/2301.00002\nresponse 2"
	if string(digest) != want {
		t.Errorf("digest = %q, want %q", digest, want)
	}

	// Transcript carries the full turn log.
	data, err := os.ReadFile(filepath.Join(dir, SummariesDir, "2301.00001-transcript.yaml"))
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		t.Fatalf("parsing transcript: %v", err)
	}
	if rec.ID != "2301.00001" || len(rec.Turns) != 3 {
		t.Errorf("transcript = %+v, want 3 turns for 2301.00001", rec)
	}
}

func TestRunSkipsExistingSummary(t *testing.T) {
	dir := t.TempDir()
	seedSelection(t, dir, []types.Candidate{
		{ID: "2301.00001", ArxivURL: "http://arxiv.org/abs/2301.00001", Score: 5},
	})
	outDir := filepath.Join(dir, SummariesDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("creating summaries dir: %v", err)
	}
	prior := "a summary from an earlier run"
	if err := os.WriteFile(filepath.Join(outDir, "2301.00001.txt"), []byte(prior), 0o644); err != nil {
		t.Fatalf("seeding summary: %v", err)
	}

	chat := &fakeChat{}
	var buf bytes.Buffer
	if err := Run(context.Background(), chat, &fakeExtractor{text: "body"}, testSummarizeCfg(), dir, &buf); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if chat.calls != 0 {
		t.Errorf("chat called %d times, want 0", chat.calls)
	}
	digest, err := os.ReadFile(filepath.Join(outDir, DigestFile))
	if err != nil {
		t.Fatalf("reading digest: %v", err)
	}
	// The skipped paper still contributes its full section.
	want := SectionDelimiter + "# 2301.00001\nhttp://arxiv.org/abs/2301.00001\n" + prior
	if string(digest) != want {
		t.Errorf("digest = %q, want %q", digest, want)
	}
}

func TestRunDigestIdempotent(t *testing.T) {
	dir := t.TempDir()
	seedSelection(t, dir, []types.Candidate{
		{ID: "2301.00001", ArxivURL: "http://arxiv.org/abs/2301.00001", Score: 5},
		{ID: "2301.00002", ArxivURL: "http://arxiv.org/abs/2301.00002", Score: 3},
	})

	cfg := testSummarizeCfg()
	cfg.Prompts = []string{"Summarize."}
	digestPath := filepath.Join(dir, SummariesDir, DigestFile)

	var buf bytes.Buffer
	if err := Run(context.Background(), &fakeChat{}, &fakeExtractor{text: "body"}, cfg, dir, &buf); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	first, err := os.ReadFile(digestPath)
	if err != nil {
		t.Fatalf("reading digest: %v", err)
	}

	// A second run finds every summary on disk and must reproduce the
	// digest byte for byte without invoking the chat service.
	second := &fakeChat{}
	if err := Run(context.Background(), second, &fakeExtractor{text: "body"}, cfg, dir, &buf); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	rerun, err := os.ReadFile(digestPath)
	if err != nil {
		t.Fatalf("reading digest: %v", err)
	}

	if second.calls != 0 {
		t.Errorf("chat called %d times on re-run, want 0", second.calls)
	}
	if !bytes.Equal(first, rerun) {
		t.Errorf("re-run digest differs:\nfirst: %q\nrerun: %q", first, rerun)
	}
}

func TestRunUnreadablePDFRecordsEmptySummary(t *testing.T) {
	dir := t.TempDir()
	seedSelection(t, dir, []types.Candidate{
		{ID: "2301.00001", ArxivURL: "http://arxiv.org/abs/2301.00001", Score: 5},
	})

	chat := &fakeChat{}
	var buf bytes.Buffer
	ex := &fakeExtractor{err: errors.New("corrupt xref table")}
	if err := Run(context.Background(), chat, ex, testSummarizeCfg(), dir, &buf); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if chat.calls != 0 {
		t.Errorf("chat called %d times, want 0", chat.calls)
	}
	sum, err := os.ReadFile(filepath.Join(dir, SummariesDir, "2301.00001.txt"))
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	if len(sum) != 0 {
		t.Errorf("summary = %q, want empty", sum)
	}
	if !strings.Contains(buf.String(), "warning") {
		t.Errorf("expected warning in %q", buf.String())
	}
}

func TestRunTruncatesContext(t *testing.T) {
	dir := t.TempDir()
	seedSelection(t, dir, []types.Candidate{
		{ID: "2301.00001", ArxivURL: "http://arxiv.org/abs/2301.00001", Score: 5},
	})

	chat := &fakeChat{}
	cfg := testSummarizeCfg()
	cfg.Prompts = []string{"Summarize."}
	cfg.MaxContextChars = 100

	long := strings.Repeat("é", 500)
	var buf bytes.Buffer
	if err := Run(context.Background(), chat, &fakeExtractor{text: long}, cfg, dir, &buf); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The budget counts runes, not bytes.
	system := chat.convs[0].Turns()[0]
	if n := utf8.RuneCountInString(system.Content); n != 100 {
		t.Errorf("system context rune count = %d, want 100", n)
	}
	if !utf8.ValidString(system.Content) {
		t.Error("truncation split a rune")
	}
}
