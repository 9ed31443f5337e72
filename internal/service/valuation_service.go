package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vehicle-valuation-api/internal/client"
	"vehicle-valuation-api/internal/model"
	"vehicle-valuation-api/internal/prompt"
	"vehicle-valuation-api/internal/valuation"
)

// UpstreamKind classifies a failed valuation.
type UpstreamKind string

const (
	KindTransport UpstreamKind = "transport"
	KindMalformed UpstreamKind = "malformed"
	KindInvalid   UpstreamKind = "invalid"
)

// UpstreamError wraps every failure caused by the LLM provider. All kinds
// are reported the same way to end users: a generic failure they may retry.
type UpstreamError struct {
	Kind UpstreamKind
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("valuation failed (%s): %v", e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ValuationConfig holds the sampling settings passed to the provider.
type ValuationConfig struct {
	Currency    string
	Temperature float64
	MaxTokens   int
}

type ValuationService struct {
	llm        client.LLMClient
	normalizer *valuation.Normalizer
	cfg        ValuationConfig
	logger     *slog.Logger
}

func NewValuationService(llm client.LLMClient, normalizer *valuation.Normalizer, cfg ValuationConfig, logger *slog.Logger) *ValuationService {
	return &ValuationService{
		llm:        llm,
		normalizer: normalizer,
		cfg:        cfg,
		logger:     logger,
	}
}

// Valuate performs one LLM call for q and normalizes the reply. It never
// retries.
func (s *ValuationService) Valuate(ctx context.Context, q model.VehicleQuery) (*model.ValuationRecord, error) {
	logger := s.logger.With(
		"valuation_id", uuid.NewString(),
		"vehicle", q.Label(),
		"market", q.Country,
	)

	p := prompt.Build(q, s.cfg.Currency)

	logger.Info("requesting market-based valuation",
		"provider", s.llm.Name(),
		"model", s.llm.Model(),
		"seed", p.Seed,
	)

	startTime := time.Now()
	raw, err := s.llm.Complete(ctx, client.Request{
		System:      p.System,
		User:        p.User,
		Seed:        p.Seed,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		logger.Error("LLM request failed", "error", err)
		return nil, &UpstreamError{Kind: KindTransport, Err: err}
	}

	record, err := s.normalizer.Normalize(raw, q)
	if err != nil {
		var malformed *valuation.MalformedReplyError
		if errors.As(err, &malformed) {
			logger.Error("failed to parse model reply", "error", err, "raw", malformed.Raw)
			return nil, &UpstreamError{Kind: KindMalformed, Err: err}
		}
		logger.Error("invalid valuation in model reply", "error", err)
		return nil, &UpstreamError{Kind: KindInvalid, Err: err}
	}

	logger.Info("valuation completed",
		"value", record.Value,
		"confidence", record.Confidence,
		"listings", len(record.ComparableListings),
		"latency_ms", time.Since(startTime).Milliseconds(),
	)

	return record, nil
}
