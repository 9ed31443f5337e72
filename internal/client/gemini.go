package client

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient calls GenerateContent on the Gemini API in JSON mode.
type GeminiClient struct {
	client *genai.Client // nil when no API key is configured
	model  string
	logger *slog.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiClient, error) {
	if model == "" {
		model = defaultGeminiModel
	}

	c := &GeminiClient{
		model:  model,
		logger: logger,
	}

	if apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		c.client = client
	}

	logger.Info("LLM client initialized",
		"provider", "gemini",
		"model", model,
		"api_key_set", apiKey != "",
	)

	return c, nil
}

func (c *GeminiClient) Name() string  { return "gemini" }
func (c *GeminiClient) Model() string { return c.model }

func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}

	temperature := float32(req.Temperature)
	seed := int32(req.Seed)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       &temperature,
		Seed:              &seed,
		ResponseMIMEType:  "application/json",
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.User), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	content := resp.Text()
	if content == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyReply)
	}

	if resp.UsageMetadata != nil {
		c.logger.Debug("LLM request completed",
			"provider", "gemini",
			"prompt_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
		)
	}

	return content, nil
}
