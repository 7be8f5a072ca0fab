package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/vahti-io/vahti/internal/config"
	"github.com/vahti-io/vahti/telemetry"
)

// initTelemetry initializes OTEL tracing when enabled.
// Can be disabled with VAHTI_TELEMETRY_DISABLED=true.
func initTelemetry(ctx context.Context, cfg *config.Config, logger zerolog.Logger) func() {
	if !cfg.OTEL.Enabled || os.Getenv("VAHTI_TELEMETRY_DISABLED") == "true" {
		return func() {}
	}

	shutdown, err := telemetry.InitOTEL(ctx, telemetry.Config{
		ServiceName:    "vahti",
		ServiceVersion: version,
		Environment:    os.Getenv("VAHTI_ENVIRONMENT"),
		OTELEndpoint:   cfg.OTEL.Endpoint,
		Insecure:       cfg.OTEL.Insecure,
	})
	if err != nil {
		// Telemetry is optional, run without it
		logger.Warn().Err(err).Msg("telemetry initialization failed, running without it")
		return func() {}
	}

	logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("telemetry enabled")

	return func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("telemetry shutdown error")
		}
	}
}
