// Package genai implements the free-text responder on the OpenAI chat completion API.
package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/altosdelrio/guest-concierge/internal/core"
)

// systemPrompt is the fixed instruction sent with every question. Calls are
// single-turn; no conversation history is carried between them.
const systemPrompt = "Eres un asistente amable para huéspedes en apartamentos de alquiler de corta estancia en Medellín. Responde de forma breve y cordial."

// chatService is the slice of the OpenAI client the responder needs. Mocked in tests.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Responder answers guest questions with single-turn chat completions.
type Responder struct {
	chat  chatService
	model openai.ChatModel
}

// NewResponder creates a Responder using the given API key.
func NewResponder(apiKey string) (*Responder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required but not set")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Responder{
		chat:  &client.Chat.Completions,
		model: openai.ChatModelGPT4oMini,
	}, nil
}

// Answer asks the model the guest's question. Failures come back wrapping
// core.ErrCompletionUnavailable so the dispatcher can fall back to canned text.
func (r *Responder) Answer(ctx context.Context, question string) (string, error) {
	completion, err := r.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: r.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(question),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrCompletionUnavailable, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", core.ErrCompletionUnavailable)
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
