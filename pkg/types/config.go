// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "digest-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of feed entries requested per run (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Categories is the arXiv category filter expression
	// (e.g. "cat:cs.CL OR cat:cs.LG").
	Categories string `json:"categories" yaml:"categories"`

	// DateRangeDays is the width of the submission date window (default 7).
	DateRangeDays int `json:"date_range_days" yaml:"date_range_days"`

	// RestrictToMostRecent halts ingestion at the first result dated at or
	// before the window start, and records that date as the next run's
	// incremental start point.
	RestrictToMostRecent bool `json:"restrict_to_most_recent" yaml:"restrict_to_most_recent"`

	// TermsFile is the path to the newline-separated interest term list.
	TermsFile string `json:"terms_file" yaml:"terms_file"`
}

// SelectionConfig holds settings for the selection stage.
type SelectionConfig struct {
	HTTPConfig `yaml:",inline"`

	// PapersToSummarize is the top-K bound on the selection (default 5).
	PapersToSummarize int `json:"number_of_papers_to_summarize" yaml:"number_of_papers_to_summarize"`
}

// SummarizeConfig holds settings for the summarization stage.
type SummarizeConfig struct {
	// Model is the chat model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// Temperature is the sampling temperature for chat completions.
	Temperature float32 `json:"temperature" yaml:"temperature"`

	// APIKey is the authentication key for the chat API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of attempts per chat call (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RetryDelay is the fixed delay between chat call attempts (default 1s).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`

	// MaxContextChars is the hard cutoff applied to extracted paper text
	// before it becomes the conversation's system context (default 176000).
	MaxContextChars int `json:"max_context_chars" yaml:"max_context_chars"`

	// Prompts is the ordered list of user prompts sent per paper.
	Prompts []string `json:"prompts" yaml:"prompts"`

	// FinalPrompt is the closing synthesis prompt. Empty disables the
	// synthesis turn and the accumulated responses become the summary.
	FinalPrompt string `json:"final_prompt" yaml:"final_prompt"`
}

// PodcastConfig holds settings for the podcast stage.
type PodcastConfig struct {
	// Enabled controls whether the podcast step synthesizes audio.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Model is the text-to-speech model identifier (default "tts-1").
	Model string `json:"model" yaml:"model"`

	// Voice is the synthesis voice (default "alloy").
	Voice string `json:"voice" yaml:"voice"`

	// MaxSegmentChars bounds the text sent per synthesis call (default 4096).
	MaxSegmentChars int `json:"max_segment_chars" yaml:"max_segment_chars"`
}

// VaultConfig holds settings for the notes vault export stage.
type VaultConfig struct {
	// Enabled controls whether summaries are exported to the vault.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the vault directory receiving exported Markdown notes.
	Dir string `json:"dir" yaml:"dir"`

	// Cleanup clears the per-run PDF working directory after a
	// successful export.
	Cleanup bool `json:"cleanup" yaml:"cleanup"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	// Steps is the ordered list of step names the run command executes.
	Steps []string `json:"steps" yaml:"steps"`

	// WorkDir is the base directory for run artifacts (contains pdfs/,
	// summaries/, audio/, index/).
	WorkDir string `json:"workdir" yaml:"workdir"`

	Search    SearchConfig    `json:"search" yaml:"search"`
	Selection SelectionConfig `json:"selection" yaml:"selection"`
	Summarize SummarizeConfig `json:"summarize" yaml:"summarize"`
	Podcast   PodcastConfig   `json:"podcast" yaml:"podcast"`
	Vault     VaultConfig     `json:"vault" yaml:"vault"`
}
