package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	defaultOpenAIModel = "gpt-4o"
	defaultGroqModel   = "llama-3.3-70b-versatile"
	groqAPIBase        = "https://api.groq.com/openai/v1"
)

// OpenAIConfig configures an OpenAI-compatible chat completion endpoint.
type OpenAIConfig struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIClient talks to OpenAI, or to any provider exposing the same chat
// completion API (Groq).
type OpenAIClient struct {
	client *openai.Client
	name   string
	apiKey string
	model  string
	logger *slog.Logger
}

// NewOpenAIClient creates a client for api.openai.com.
func NewOpenAIClient(apiKey, model string, timeout time.Duration, logger *slog.Logger) *OpenAIClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	return NewOpenAIClientWithConfig(OpenAIConfig{
		Name:    "openai",
		APIKey:  apiKey,
		Model:   model,
		Timeout: timeout,
	}, logger)
}

// NewGroqClient creates a client for Groq's OpenAI-compatible endpoint.
func NewGroqClient(apiKey, model string, timeout time.Duration, logger *slog.Logger) *OpenAIClient {
	if model == "" {
		model = defaultGroqModel
	}
	return NewOpenAIClientWithConfig(OpenAIConfig{
		Name:    "groq",
		APIKey:  apiKey,
		BaseURL: groqAPIBase,
		Model:   model,
		Timeout: timeout,
	}, logger)
}

// NewOpenAIClientWithConfig creates a client with custom config. SDK retries
// are disabled.
func NewOpenAIClientWithConfig(cfg OpenAIConfig, logger *slog.Logger) *OpenAIClient {
	if cfg.Name == "" {
		cfg.Name = "openai"
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	client := openai.NewClient(opts...)

	logger.Info("LLM client initialized",
		"provider", cfg.Name,
		"model", cfg.Model,
		"api_key_set", cfg.APIKey != "",
	)

	return &OpenAIClient{
		client: &client,
		name:   cfg.Name,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		logger: logger,
	}
}

func (c *OpenAIClient) Name() string  { return c.name }
func (c *OpenAIClient) Model() string { return c.model }

// Complete requests a JSON object reply with seeded sampling.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%s: %w", c.name, ErrMissingAPIKey)
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(req.Temperature),
		Seed:        openai.Int(req.Seed),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	startTime := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s API error: %w", c.name, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%s: %w", c.name, ErrEmptyReply)
	}

	c.logger.Debug("LLM request completed",
		"provider", c.name,
		"latency_ms", time.Since(startTime).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	return resp.Choices[0].Message.Content, nil
}
