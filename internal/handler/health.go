package handler

import (
	"log/slog"
	"net/http"
	"time"

	"vehicle-valuation-api/internal/model"
)

// ProviderInfo describes the configured LLM provider.
type ProviderInfo interface {
	Name() string
	Model() string
}

type HealthHandler struct {
	provider ProviderInfo
}

func NewHealthHandler(provider ProviderInfo) *HealthHandler {
	return &HealthHandler{provider: provider}
}

// Check reports liveness only; the provider is not called.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, slog.Default(), http.StatusOK, model.HealthResponse{
		Status:    "ok",
		Provider:  h.provider.Name(),
		Model:     h.provider.Model(),
		Timestamp: time.Now(),
	})
}
