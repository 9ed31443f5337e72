package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-valuation-api/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRequest() Request {
	return Request{
		System:      "system",
		User:        "value this car",
		Seed:        1355,
		Temperature: 0.5,
		MaxTokens:   512,
	}
}

func TestOllamaClient_Complete(t *testing.T) {
	var got OllamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(OllamaChatResponse{
			Model:   got.Model,
			Message: OllamaMessage{Role: "assistant", Content: `{"value": 18000}`},
			Done:    true,
		})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL+"/", "", time.Second, discardLogger())
	reply, err := c.Complete(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, `{"value": 18000}`, reply)
	assert.Equal(t, defaultOllamaModel, got.Model)
	assert.Equal(t, "json", got.Format)
	assert.False(t, got.Stream)
	assert.Equal(t, int64(1355), got.Options.Seed)
	assert.Equal(t, 0.5, got.Options.Temperature)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "value this car", got.Messages[1].Content)
}

func TestOllamaClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "missing", time.Second, discardLogger())
	_, err := c.Complete(context.Background(), testRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestOllamaClient_EmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message": {"role": "assistant", "content": "  "}, "done": true}`)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "", time.Second, discardLogger())
	_, err := c.Complete(context.Background(), testRequest())

	assert.True(t, errors.Is(err, ErrEmptyReply))
}

func TestOllamaClient_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		io.WriteString(w, `{"models": [{"name": "llama3.1:8b"}]}`)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "", time.Second, discardLogger())
	assert.NoError(t, c.Ping(context.Background()))
}

func TestOpenAIClient_Complete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"value\": 18000}"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`)
	}))
	defer srv.Close()

	c := NewOpenAIClientWithConfig(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, discardLogger())

	reply, err := c.Complete(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, `{"value": 18000}`, reply)
	assert.Equal(t, defaultOpenAIModel, body["model"])
	assert.Equal(t, float64(1355), body["seed"])
	assert.Equal(t, 0.5, body["temperature"])
	assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])
}

func TestOpenAIClient_ServerErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"error": {"message": "overloaded", "type": "server_error"}}`)
	}))
	defer srv.Close()

	c := NewOpenAIClientWithConfig(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL}, discardLogger())
	_, err := c.Complete(context.Background(), testRequest())

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestHostedClients_MissingAPIKey(t *testing.T) {
	gemini, err := NewGeminiClient(context.Background(), "", "", discardLogger())
	require.NoError(t, err)

	clients := []LLMClient{
		NewOpenAIClient("", "", time.Second, discardLogger()),
		NewGroqClient("", "", time.Second, discardLogger()),
		NewAnthropicClient("", "", time.Second, discardLogger()),
		gemini,
	}

	for _, c := range clients {
		t.Run(c.Name(), func(t *testing.T) {
			_, err := c.Complete(context.Background(), testRequest())
			assert.True(t, errors.Is(err, ErrMissingAPIKey), "got %v", err)
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		provider  string
		wantName  string
		wantModel string
	}{
		{"", "openai", defaultOpenAIModel},
		{"OpenAI", "openai", defaultOpenAIModel},
		{"groq", "groq", defaultGroqModel},
		{"anthropic", "anthropic", defaultAnthropicModel},
		{"gemini", "gemini", defaultGeminiModel},
		{"ollama", "ollama", defaultOllamaModel},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			c, err := New(context.Background(), config.LLMConfig{Provider: tt.provider}, discardLogger())
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name())
			assert.Equal(t, tt.wantModel, c.Model())
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.LLMConfig{Provider: "mistral"}, discardLogger())
	assert.Error(t, err)
}
