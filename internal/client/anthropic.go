package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel     = "claude-haiku-4-5"
	defaultAnthropicMaxTokens = 2048
)

// AnthropicClient uses the Messages API. It has no JSON mode and no seed, so
// the reply may arrive wrapped in prose; the normalizer strips it.
type AnthropicClient struct {
	client *anthropic.Client
	apiKey string
	model  string
	logger *slog.Logger
}

func NewAnthropicClient(apiKey, model string, timeout time.Duration, logger *slog.Logger) *AnthropicClient {
	if model == "" {
		model = defaultAnthropicModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	client := anthropic.NewClient(opts...)

	logger.Info("LLM client initialized",
		"provider", "anthropic",
		"model", model,
		"api_key_set", apiKey != "",
	)

	return &AnthropicClient{
		client: &client,
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}
}

func (c *AnthropicClient) Name() string  { return "anthropic" }
func (c *AnthropicClient) Model() string { return c.model }

func (c *AnthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("anthropic: %w", ErrMissingAPIKey)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
		// The Messages API caps temperature at 1.
		Temperature: anthropic.Float(min(req.Temperature, 1)),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	content := strings.TrimSpace(sb.String())
	if content == "" {
		return "", fmt.Errorf("anthropic: %w", ErrEmptyReply)
	}

	c.logger.Debug("LLM request completed",
		"provider", "anthropic",
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)

	return content, nil
}
