package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	APIPort   string `env:"API_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LLM       LLMConfig
	Valuation ValuationConfig
}

// LLMConfig selects the provider used for valuations. Only the key of the
// selected provider needs to be set.
type LLMConfig struct {
	Provider        string        `env:"LLM_PROVIDER" envDefault:"openai"`
	Model           string        `env:"LLM_MODEL"`
	Temperature     float64       `env:"LLM_TEMPERATURE" envDefault:"0.5"`
	Timeout         time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	MaxTokens       int           `env:"LLM_MAX_TOKENS" envDefault:"2048"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string        `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	GroqAPIKey      string        `env:"GROQ_API_KEY"`
	OllamaBaseURL   string        `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
}

type ValuationConfig struct {
	DefaultMarket     string `env:"VALUATION_DEFAULT_MARKET" envDefault:"europe"`
	Currency          string `env:"VALUATION_CURRENCY" envDefault:"EUR"`
	SyntheticFallback bool   `env:"VALUATION_SYNTHETIC_FALLBACK" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %v", cfg.LLM.Temperature)
	}

	return cfg, nil
}
