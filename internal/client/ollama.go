package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOllamaModel = "llama3.1:8b"
)

// OllamaClient handles communication with a local Ollama server
type OllamaClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	logger     *slog.Logger
}

// OllamaChatRequest represents an Ollama chat API request
type OllamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []OllamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format,omitempty"`
	Options  OllamaOptions   `json:"options,omitempty"`
}

// OllamaMessage represents a chat message
type OllamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OllamaOptions represents generation options
type OllamaOptions struct {
	Temperature float64 `json:"temperature"`
	Seed        int64   `json:"seed"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// OllamaChatResponse represents an Ollama chat API response
type OllamaChatResponse struct {
	Model     string        `json:"model"`
	CreatedAt string        `json:"created_at"`
	Message   OllamaMessage `json:"message"`
	Done      bool          `json:"done"`
	Error     string        `json:"error,omitempty"`

	// Timing info
	TotalDuration   int64 `json:"total_duration"`
	PromptEvalCount int   `json:"prompt_eval_count"`
	EvalCount       int   `json:"eval_count"`
}

// NewOllamaClient creates a new Ollama API client
func NewOllamaClient(baseURL, model string, timeout time.Duration, logger *slog.Logger) *OllamaClient {
	if model == "" {
		model = defaultOllamaModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	// Ensure baseURL doesn't have trailing slash
	baseURL = strings.TrimRight(baseURL, "/")

	client := &OllamaClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		model:   model,
		logger:  logger,
	}

	logger.Info("LLM client initialized",
		"provider", "ollama",
		"base_url", baseURL,
		"model", model,
	)

	return client
}

func (c *OllamaClient) Name() string  { return "ollama" }
func (c *OllamaClient) Model() string { return c.model }

// Complete makes a non-streaming chat request in JSON mode.
func (c *OllamaClient) Complete(ctx context.Context, r Request) (string, error) {
	req := OllamaChatRequest{
		Model: c.model,
		Messages: []OllamaMessage{
			{Role: "system", Content: r.System},
			{Role: "user", Content: r.User},
		},
		Stream: false,
		Format: "json",
		Options: OllamaOptions{
			Temperature: r.Temperature,
			Seed:        r.Seed,
			NumPredict:  r.MaxTokens,
		},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/api/chat"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama API error (status %d): %s", resp.StatusCode, string(body))
	}

	var ollamaResp OllamaChatResponse
	if err := json.Unmarshal(body, &ollamaResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if ollamaResp.Error != "" {
		return "", fmt.Errorf("Ollama API error: %s", ollamaResp.Error)
	}

	if strings.TrimSpace(ollamaResp.Message.Content) == "" {
		return "", fmt.Errorf("ollama: %w", ErrEmptyReply)
	}

	c.logger.Debug("LLM request completed",
		"provider", "ollama",
		"latency_ms", time.Since(startTime).Milliseconds(),
		"prompt_tokens", ollamaResp.PromptEvalCount,
		"eval_tokens", ollamaResp.EvalCount,
	)

	return ollamaResp.Message.Content, nil
}

// Ping checks if the Ollama server is reachable and the model is pulled
func (c *OllamaClient) Ping(ctx context.Context) error {
	url := c.baseURL + "/api/tags"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}

	// Check if model is available
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), c.model) {
		c.logger.Warn("model may not be pulled",
			"model", c.model,
			"available_models", string(body),
		)
	}

	return nil
}
