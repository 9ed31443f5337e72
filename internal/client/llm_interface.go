package client

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned by every call of a hosted provider whose API
// key is not configured.
var ErrMissingAPIKey = errors.New("LLM API key not configured")

// ErrEmptyReply is returned when the provider answered without any text.
var ErrEmptyReply = errors.New("no response from valuation service")

// Request is one chat completion: a system instruction, a user prompt and
// the sampling settings.
type Request struct {
	System      string
	User        string
	Seed        int64
	Temperature float64
	MaxTokens   int
}

// LLMClient performs a single completion and returns the raw reply text.
// Implementations make exactly one attempt; retrying is left to the caller.
type LLMClient interface {
	Complete(ctx context.Context, req Request) (string, error)

	// Name identifies the provider, e.g. "openai".
	Name() string

	// Model is the provider model used for completions.
	Model() string
}

// Ensure every provider implements LLMClient
var (
	_ LLMClient = (*OpenAIClient)(nil)
	_ LLMClient = (*AnthropicClient)(nil)
	_ LLMClient = (*GeminiClient)(nil)
	_ LLMClient = (*OllamaClient)(nil)
)
