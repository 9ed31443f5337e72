package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "LLM_PROVIDER", "LLM_TEMPERATURE", "LLM_TIMEOUT", "VALUATION_CURRENCY", "VALUATION_SYNTHETIC_FALLBACK")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 0.5, cfg.LLM.Temperature)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "EUR", cfg.Valuation.Currency)
	assert.False(t, cfg.Valuation.SyntheticFallback)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("VALUATION_DEFAULT_MARKET", "france")
	t.Setenv("VALUATION_SYNTHETIC_FALLBACK", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "france", cfg.Valuation.DefaultMarket)
	assert.True(t, cfg.Valuation.SyntheticFallback)
}

func TestLoad_RejectsTemperatureOutOfRange(t *testing.T) {
	t.Setenv("LLM_TEMPERATURE", "3.5")

	_, err := Load()
	assert.Error(t, err)
}

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}
