// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package podcast synthesizes the newsletter digest into a segmented
// audio file.
package podcast

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/internal/extract"
	"github.com/pdiddy/digest-engine/internal/summarize"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// AudioDir is the working subdirectory holding synthesized audio.
const AudioDir = "audio"

const defaultMaxSegmentChars = 4096

// SpeechService synthesizes one text segment into an audio clip.
type SpeechService interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// SplitSegments splits the digest on the section delimiter and drops
// blank segments. Each returned segment is trimmed of surrounding
// whitespace.
func SplitSegments(digest string) []string {
	var segments []string
	for _, s := range strings.Split(digest, summarize.SectionDelimiter) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

// Generate synthesizes each digest segment into an MP3 clip, concatenates
// the clips into a dated podcast file, and removes the per-segment files.
// A missing digest is degraded input: it warns on w and produces nothing.
// Synthesis failures are fatal for the step.
func Generate(ctx context.Context, svc SpeechService, cfg types.PodcastConfig, workDir string, now time.Time, w io.Writer) error {
	digestPath := filepath.Join(workDir, summarize.SummariesDir, summarize.DigestFile)
	content, err := os.ReadFile(digestPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(w, "warning: digest %s not found, nothing to synthesize\n", digestPath)
			return nil
		}
		return fmt.Errorf("reading digest: %w", err)
	}

	segments := SplitSegments(string(content))
	if len(segments) == 0 {
		fmt.Fprintln(w, "Digest is empty, nothing to synthesize.")
		return nil
	}

	audioDir := filepath.Join(workDir, AudioDir)
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", audioDir, err)
	}

	maxChars := cfg.MaxSegmentChars
	if maxChars <= 0 {
		maxChars = defaultMaxSegmentChars
	}

	outPath := filepath.Join(audioDir, now.Format("2006-01-02")+"_newsletter_podcast.mp3")
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	var segmentFiles []string
	for i, segment := range segments {
		segment = extract.Truncate(segment, maxChars)

		fmt.Fprintf(w, "synthesizing segment %d/%d\n", i+1, len(segments))
		clip, err := svc.Synthesize(ctx, segment)
		if err != nil {
			return fmt.Errorf("synthesizing segment %d: %w", i+1, err)
		}

		segPath := filepath.Join(audioDir, fmt.Sprintf("segment_%d.mp3", i))
		if err := os.WriteFile(segPath, clip, 0o644); err != nil {
			return fmt.Errorf("writing segment %d: %w", i, err)
		}
		segmentFiles = append(segmentFiles, segPath)

		// MP3 frames are self-delimiting, so clips concatenate directly.
		if _, err := out.Write(clip); err != nil {
			return fmt.Errorf("appending segment %d: %w", i, err)
		}
	}

	for _, segPath := range segmentFiles {
		if err := os.Remove(segPath); err != nil {
			fmt.Fprintf(w, "warning: removing %s: %v\n", segPath, err)
		}
	}

	fmt.Fprintf(w, "Podcast saved to %s.\n", outPath)
	return nil
}
