package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/vahti-io/vahti/internal/daemon"
	"github.com/vahti-io/vahti/naming"
	"github.com/vahti-io/vahti/providers/aws"
	"github.com/vahti-io/vahti/reconcile"
)

var (
	daemonInterval    time.Duration
	daemonMetricsAddr string
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Reconcile continuously on an interval",
	Long: `Run the combined reconcile cycle on an interval.

Cycle metrics are exposed on a Prometheus /metrics endpoint. Each
cycle behaves exactly like a single 'vahti reconcile' run.

Examples:
  vahti daemon --interval 5m --metrics :9090`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().DurationVar(&daemonInterval, "interval", 0, "Cycle interval (default from config)")
	daemonCmd.Flags().StringVar(&daemonMetricsAddr, "metrics", "", "Metrics server address (default from config)")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	if daemonInterval > 0 {
		cfg.Daemon.Interval = daemonInterval
	}
	if daemonMetricsAddr != "" {
		cfg.Daemon.MetricsAddr = daemonMetricsAddr
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdown := initTelemetry(ctx, cfg, logger)
	defer shutdown()

	promExporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(promExporter)))

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		logger.Info().Str("addr", cfg.Daemon.MetricsAddr).Msg("starting metrics server")
		server := &http.Server{Addr: cfg.Daemon.MetricsAddr, ReadHeaderTimeout: 5 * time.Second}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	provider, err := aws.New(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("failed to create aws provider: %w", err)
	}

	metrics, err := daemon.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to create daemon metrics: %w", err)
	}

	run := func(ctx context.Context) (*reconcile.RunSummary, error) {
		convention := cfg.Convention(naming.ConventionPrefix)
		plan := buildPlan(ctx, cfg, provider, convention, logger)
		summary := applyPlan(ctx, cfg, provider, plan, logger)
		finishRun(ctx, cfg, provider, summary, logger)
		return summary, nil
	}

	logger.Info().
		Str("region", cfg.Region).
		Dur("interval", cfg.Daemon.Interval).
		Msg("vahti daemon starting")

	return daemon.New(cfg.Daemon.Interval, run, metrics, logger).Start(ctx)
}
