// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pdiddy/digest-engine/internal/extract"
	"github.com/pdiddy/digest-engine/internal/history"
	"github.com/pdiddy/digest-engine/internal/pipeline"
	"github.com/pdiddy/digest-engine/internal/podcast"
	"github.com/pdiddy/digest-engine/internal/search"
	"github.com/pdiddy/digest-engine/internal/selection"
	"github.com/pdiddy/digest-engine/internal/summarize"
	"github.com/pdiddy/digest-engine/internal/vault"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// stepByName maps a configured step name to a runnable pipeline step.
// The run command and the standalone subcommands share these runners.
func stepByName(name string, cfg types.PipelineConfig, w io.Writer) (pipeline.Step, error) {
	var run func(ctx context.Context) error
	switch name {
	case "search":
		run = func(ctx context.Context) error { return searchStep(ctx, cfg, w) }
	case "select":
		run = func(ctx context.Context) error { return selectStep(ctx, cfg, w) }
	case "summarize":
		run = func(ctx context.Context) error { return summarizeStep(ctx, cfg, w) }
	case "podcast":
		run = func(ctx context.Context) error { return podcastStep(ctx, cfg, w) }
	case "export":
		run = func(ctx context.Context) error { return exportStep(cfg, w) }
	default:
		return pipeline.Step{}, fmt.Errorf("unknown pipeline step %q", name)
	}
	return pipeline.Step{Name: name, Run: run}, nil
}

func searchStep(ctx context.Context, cfg types.PipelineConfig, w io.Writer) error {
	if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		return fmt.Errorf("creating workdir: %w", err)
	}
	hist, err := history.NewStore(cfg.WorkDir)
	if err != nil {
		return err
	}
	defer hist.Close()

	backend := &search.ArxivBackend{Client: &http.Client{Timeout: cfg.Search.Timeout}}
	return search.Run(ctx, backend, hist, cfg.Search, cfg.WorkDir, time.Now(), w)
}

func selectStep(ctx context.Context, cfg types.PipelineConfig, w io.Writer) error {
	hist, err := history.NewStore(cfg.WorkDir)
	if err != nil {
		return err
	}
	defer hist.Close()

	client := &http.Client{Timeout: cfg.Selection.Timeout}
	return selection.Run(ctx, client, hist, cfg.Selection, cfg.WorkDir, time.Now(), w)
}

func summarizeStep(ctx context.Context, cfg types.PipelineConfig, w io.Writer) error {
	extractor, err := extract.NewPdftotextExtractor()
	if err != nil {
		return err
	}
	chat := summarize.NewOpenAIChat(cfg.Summarize)
	return summarize.Run(ctx, chat, extractor, cfg.Summarize, cfg.WorkDir, w)
}

func podcastStep(ctx context.Context, cfg types.PipelineConfig, w io.Writer) error {
	if !cfg.Podcast.Enabled {
		fmt.Fprintln(w, "Podcast synthesis disabled, skipping.")
		return nil
	}
	svc := podcast.NewOpenAISpeech(cfg.Summarize.APIKey, cfg.Podcast)
	return podcast.Generate(ctx, svc, cfg.Podcast, cfg.WorkDir, time.Now(), w)
}

func exportStep(cfg types.PipelineConfig, w io.Writer) error {
	if !cfg.Vault.Enabled {
		fmt.Fprintln(w, "Vault export disabled, skipping.")
		return nil
	}
	v, err := vault.New(cfg.Vault.Dir)
	if err != nil {
		return err
	}
	terms := search.LoadTerms(cfg.Search.TermsFile, w)
	return vault.Run(v, terms, cfg.Vault, cfg.WorkDir, w)
}
