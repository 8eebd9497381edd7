// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package podcast

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// OpenAISpeech implements SpeechService using the OpenAI speech API.
type OpenAISpeech struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

// NewOpenAISpeech creates a speech backend with the model and voice from
// the podcast configuration.
func NewOpenAISpeech(apiKey string, cfg types.PodcastConfig) *OpenAISpeech {
	model := cfg.Model
	if model == "" {
		model = string(openai.TTSModel1)
	}
	voice := cfg.Voice
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &OpenAISpeech{
		client: openai.NewClient(apiKey),
		model:  openai.SpeechModel(model),
		voice:  openai.SpeechVoice(voice),
	}
}

// Synthesize converts one text segment into MP3 audio bytes.
func (o *OpenAISpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: o.model,
		Input: text,
		Voice: o.voice,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: %w", err)
	}
	defer resp.Close()

	clip, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("reading audio response: %w", err)
	}
	return clip, nil
}
