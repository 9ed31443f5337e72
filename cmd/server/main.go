package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vehicle-valuation-api/internal/client"
	"vehicle-valuation-api/internal/config"
	"vehicle-valuation-api/internal/handler"
	"vehicle-valuation-api/internal/service"
	"vehicle-valuation-api/internal/valuation"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger
	logger := setupLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting vehicle-valuation-api",
		"provider", cfg.LLM.Provider,
		"default_market", cfg.Valuation.DefaultMarket,
		"currency", cfg.Valuation.Currency,
		"synthetic_fallback", cfg.Valuation.SyntheticFallback,
	)

	ctx := context.Background()

	// LLM client
	llm, err := client.New(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Error("failed to create LLM client", "error", err)
		os.Exit(1)
	}

	if ollama, ok := llm.(*client.OllamaClient); ok {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := ollama.Ping(pingCtx); err != nil {
			logger.Warn("ollama not reachable, valuations will fail until it is", "error", err)
		}
		cancel()
	}

	// Service
	normalizer := valuation.NewNormalizer(valuation.Options{
		Currency:          cfg.Valuation.Currency,
		SyntheticFallback: cfg.Valuation.SyntheticFallback,
	}, logger)

	valuationSvc := service.NewValuationService(llm, normalizer, service.ValuationConfig{
		Currency:    cfg.Valuation.Currency,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, logger)

	// Handlers
	router := handler.NewRouter(
		handler.NewValuationHandler(valuationSvc, cfg.Valuation.DefaultMarket, logger),
		handler.NewHealthHandler(llm),
		cfg.LLM.Timeout+10*time.Second,
	)

	// Server
	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 20*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server started", "port", cfg.APIPort, "model", llm.Model())
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}

// setupLogger creates a structured logger with the specified level
func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
