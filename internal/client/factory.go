package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"vehicle-valuation-api/internal/config"
)

// New builds the client for cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (LLMClient, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "openai":
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model, cfg.Timeout, logger), nil
	case "groq":
		return NewGroqClient(cfg.GroqAPIKey, cfg.Model, cfg.Timeout, logger), nil
	case "anthropic":
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.Model, cfg.Timeout, logger), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model, logger)
	case "ollama":
		return NewOllamaClient(cfg.OllamaBaseURL, cfg.Model, cfg.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q (want openai, groq, anthropic, gemini or ollama)", cfg.Provider)
	}
}
