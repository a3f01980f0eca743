package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/fdg312/fitness-coach/internal/config"
	"github.com/fdg312/fitness-coach/internal/httpserver"
	"github.com/fdg312/fitness-coach/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	printStartupBanner(logger, cfg)
	for _, w := range cfg.Warnings {
		logger.Warn().Msg(w)
	}

	server := httpserver.New(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
		return
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := <-errCh; err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
	}
	logger.Info().Msg("server stopped")
}

// printStartupBanner logs a one-time summary of the resolved configuration.
// No secrets are ever printed, only masked indicators ("set" / "not set").
func printStartupBanner(logger zerolog.Logger, cfg *config.Config) {
	logger.Info().
		Str("env", cfg.Env).
		Str("addr", cfg.Addr()).
		Str("log_level", cfg.LogLevel).
		Str("log_format", cfg.LogFormat).
		Msg("fitness coach api")

	logger.Info().
		Str("ai_mode", cfg.AIMode).
		Str("ai_model", cfg.AIModel).
		Str("ai_base_url", cfg.AIBaseURL).
		Str("openrouter_api_key", logging.SetOrNot(cfg.OpenRouterAPIKey)).
		Str("key_source", nonEmptyOrDash(cfg.KeySource)).
		Int("ai_timeout_seconds", cfg.AITimeoutSeconds).
		Int("ai_history_limit", cfg.AIHistoryLimit).
		Bool("ai_available", cfg.AIAvailable()).
		Msg("ai")

	logger.Info().
		Int("default_steps_goal", cfg.DefaultStepsGoal).
		Msg("health")
}

func nonEmptyOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
