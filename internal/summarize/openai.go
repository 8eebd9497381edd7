// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// maxResponseTokens bounds the length of one assistant response.
const maxResponseTokens = 1500

// OpenAIChat implements ChatService using the OpenAI chat completions API.
type OpenAIChat struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIChat creates a chat backend with the model and temperature
// from the summarize configuration.
func NewOpenAIChat(cfg types.SummarizeConfig) *OpenAIChat {
	return &OpenAIChat{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Complete sends the full conversation and returns the assistant response.
// Transient failures surface as errors; the caller's retry policy decides
// what to do with them.
func (o *OpenAIChat) Complete(ctx context.Context, conv Conversation) (string, error) {
	turns := conv.Turns()
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(t.Role),
			Content: t.Content,
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: o.temperature,
		MaxTokens:   maxResponseTokens,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
