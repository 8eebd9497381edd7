// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// defaultPrompts is the ordered prompt list sent per paper when the
// config file provides none.
var defaultPrompts = []string{
	"Summarize the paper's motivation and key contributions.",
	"Describe the methodology in plain language.",
	"What are the main results, and what limitations do the authors acknowledge?",
}

// defaultFinalPrompt is the closing synthesis prompt.
const defaultFinalPrompt = "Synthesize the above information into a concise summary of the paper's key contributions and significance."

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.steps", []string{"search", "select", "summarize", "podcast", "export"})
	v.SetDefault("pipeline.workdir", "data")

	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("search.user_agent", "digest-engine/0.1")
	v.SetDefault("search.max_results", 100)
	v.SetDefault("search.categories", "cat:cs.CL OR cat:cs.LG")
	v.SetDefault("search.date_range_days", 7)
	v.SetDefault("search.restrict_to_most_recent", true)
	v.SetDefault("search.terms_file", "config/search_terms.txt")

	v.SetDefault("selection.timeout", 60*time.Second)
	v.SetDefault("selection.user_agent", "digest-engine/0.1")
	v.SetDefault("selection.number_of_papers_to_summarize", 5)

	v.SetDefault("summarize.model", "gpt-4o-mini")
	v.SetDefault("summarize.temperature", 0.7)
	v.SetDefault("summarize.max_retries", 3)
	v.SetDefault("summarize.retry_delay", time.Second)
	v.SetDefault("summarize.max_context_chars", 176000)
	v.SetDefault("summarize.prompts", defaultPrompts)
	v.SetDefault("summarize.final_prompt", defaultFinalPrompt)

	v.SetDefault("podcast.enabled", false)
	v.SetDefault("podcast.model", "tts-1")
	v.SetDefault("podcast.voice", "alloy")
	v.SetDefault("podcast.max_segment_chars", 4096)

	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.dir", "vault")
	v.SetDefault("vault.cleanup", false)
}

// loadConfig builds the pipeline configuration from viper and the loaded
// secrets. Stages receive explicit config structs; nothing reads viper
// after this point.
func loadConfig() types.PipelineConfig {
	v := viper.GetViper()
	setDefaults(v)

	cfg := types.PipelineConfig{
		Steps:   v.GetStringSlice("pipeline.steps"),
		WorkDir: v.GetString("pipeline.workdir"),
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("search.timeout"),
				UserAgent: v.GetString("search.user_agent"),
			},
			MaxResults:           v.GetInt("search.max_results"),
			Categories:           v.GetString("search.categories"),
			DateRangeDays:        v.GetInt("search.date_range_days"),
			RestrictToMostRecent: v.GetBool("search.restrict_to_most_recent"),
			TermsFile:            v.GetString("search.terms_file"),
		},
		Selection: types.SelectionConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("selection.timeout"),
				UserAgent: v.GetString("selection.user_agent"),
			},
			PapersToSummarize: v.GetInt("selection.number_of_papers_to_summarize"),
		},
		Summarize: types.SummarizeConfig{
			Model:           v.GetString("summarize.model"),
			Temperature:     float32(v.GetFloat64("summarize.temperature")),
			APIKey:          secretDefault("openai-api-key", v.GetString("summarize.api_key")),
			MaxRetries:      v.GetInt("summarize.max_retries"),
			RetryDelay:      v.GetDuration("summarize.retry_delay"),
			MaxContextChars: v.GetInt("summarize.max_context_chars"),
			Prompts:         v.GetStringSlice("summarize.prompts"),
			FinalPrompt:     v.GetString("summarize.final_prompt"),
		},
		Podcast: types.PodcastConfig{
			Enabled:         v.GetBool("podcast.enabled"),
			Model:           v.GetString("podcast.model"),
			Voice:           v.GetString("podcast.voice"),
			MaxSegmentChars: v.GetInt("podcast.max_segment_chars"),
		},
		Vault: types.VaultConfig{
			Enabled: v.GetBool("vault.enabled"),
			Dir:     v.GetString("vault.dir"),
			Cleanup: v.GetBool("vault.cleanup"),
		},
	}
	return cfg
}
