package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vahti-io/vahti/executor"
	"github.com/vahti-io/vahti/history"
	"github.com/vahti-io/vahti/internal/config"
	"github.com/vahti-io/vahti/inventory"
	"github.com/vahti-io/vahti/naming"
	"github.com/vahti-io/vahti/notify"
	"github.com/vahti-io/vahti/providers/aws"
	"github.com/vahti-io/vahti/reconcile"
	"github.com/vahti-io/vahti/telemetry"
)

// buildPlan snapshots both inventories and computes the action sets.
func buildPlan(ctx context.Context, cfg *config.Config, provider *aws.Provider, convention naming.Convention, logger zerolog.Logger) *reconcile.Plan {
	ctx, span := telemetry.Tracer.Start(ctx, "vahti.build_plan", trace.WithAttributes(
		attribute.String("cloud.region", cfg.Region),
		attribute.String("naming.convention", string(convention)),
	))
	defer span.End()

	fetcher := inventory.NewFetcher(provider, convention, logger)
	queues := fetcher.Queues(ctx)
	alarms := fetcher.ManagedAlarms(ctx)

	plan := reconcile.Compute(queues, alarms, cfg.Region, convention, cfg.ThresholdPolicy())

	logger.Info().
		Int("queues", len(queues)).
		Int("managed_alarms", len(alarms)).
		Int("creates", len(plan.Creates)).
		Int("deletes", len(plan.Deletes)).
		Int("unchanged", plan.Unchanged).
		Msg("plan computed")

	span.SetAttributes(
		attribute.Int("plan.creates", len(plan.Creates)),
		attribute.Int("plan.deletes", len(plan.Deletes)),
	)

	return &plan
}

// applyPlan executes the plan sequentially and returns the summary.
func applyPlan(ctx context.Context, cfg *config.Config, provider *aws.Provider, plan *reconcile.Plan, logger zerolog.Logger) *reconcile.RunSummary {
	ctx, span := telemetry.Tracer.Start(ctx, "vahti.apply_plan")
	defer span.End()

	engine := executor.NewEngine(provider, executor.Options{
		PeriodSeconds: cfg.AlarmPeriodSeconds,
		TopicARN:      cfg.NotificationTopic,
	}, logger)

	return engine.Apply(ctx, plan)
}

// finishRun handles the post-apply side effects: the history record and
// the outcome notification. Both are best effort.
func finishRun(ctx context.Context, cfg *config.Config, provider *aws.Provider, summary *reconcile.RunSummary, logger zerolog.Logger) {
	if cfg.HistoryDir != "" {
		recordHistory(cfg.HistoryDir, summary, logger)
	}

	notifier := notify.New(provider, cfg.NotificationTopic, logger)
	notifier.PublishSummary(ctx, summary)
}

func recordHistory(dir string, summary *reconcile.RunSummary, logger zerolog.Logger) {
	store, err := history.Open(dir)
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("history store unavailable, skipping record")
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Record(summary); err != nil {
		logger.Warn().Err(err).Msg("failed to record run history")
	}
}

// reportSummary writes the final summary to the diagnostic stream and
// maps the failure count onto the process exit code.
func reportSummary(summary *reconcile.RunSummary) {
	fmt.Fprint(os.Stderr, summary.Render())

	if summary.FailureCount() > 0 {
		os.Exit(1)
	}
}
