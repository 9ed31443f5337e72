package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-valuation-api/internal/client"
	"vehicle-valuation-api/internal/model"
	"vehicle-valuation-api/internal/valuation"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
	last  client.Request
}

func (f *fakeLLM) Complete(_ context.Context, req client.Request) (string, error) {
	f.calls++
	f.last = req
	return f.reply, f.err
}

func (f *fakeLLM) Name() string  { return "fake" }
func (f *fakeLLM) Model() string { return "fake-1" }

func newTestService(llm client.LLMClient) *ValuationService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	normalizer := valuation.NewNormalizer(valuation.Options{Currency: "EUR"}, logger)
	return NewValuationService(llm, normalizer, ValuationConfig{Currency: "EUR", Temperature: 0.5, MaxTokens: 1024}, logger)
}

func bmwQuery() model.VehicleQuery {
	return model.VehicleQuery{
		Make:      "BMW",
		Model:     "320d",
		Year:      2018,
		Mileage:   80000,
		Condition: model.ConditionGood,
		Country:   "germany",
	}
}

func TestValuate_Success(t *testing.T) {
	llm := &fakeLLM{reply: `{"value": 18000}`}

	rec, err := newTestService(llm).Valuate(context.Background(), bmwQuery())
	require.NoError(t, err)

	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, int64(1355), llm.last.Seed)
	assert.Equal(t, 0.5, llm.last.Temperature)
	assert.Equal(t, 1024, llm.last.MaxTokens)
	assert.NotEmpty(t, llm.last.System)
	assert.Contains(t, llm.last.User, "2018 BMW 320d")
	assert.Equal(t, model.PriceRange{Min: 16200, Max: 19800}, rec.Range)
}

func TestValuate_Errors(t *testing.T) {
	tests := []struct {
		name string
		llm  *fakeLLM
		want UpstreamKind
	}{
		{"transport", &fakeLLM{err: errors.New("connection refused")}, KindTransport},
		{"missing key", &fakeLLM{err: client.ErrMissingAPIKey}, KindTransport},
		{"malformed", &fakeLLM{reply: "I cannot value this car."}, KindMalformed},
		{"invalid", &fakeLLM{reply: `{"value": -1}`}, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(tt.llm).Valuate(context.Background(), bmwQuery())

			var upstream *UpstreamError
			require.True(t, errors.As(err, &upstream), "got %v", err)
			assert.Equal(t, tt.want, upstream.Kind)
			assert.Equal(t, 1, tt.llm.calls)
		})
	}
}

func TestValuate_WrapsNormalizerErrors(t *testing.T) {
	_, err := newTestService(&fakeLLM{reply: "{"}).Valuate(context.Background(), bmwQuery())

	var malformed *valuation.MalformedReplyError
	assert.True(t, errors.As(err, &malformed))
}
