package daemon

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/vahti-io/vahti/reconcile"
)

// Metrics holds daemon metrics following OTEL semantic conventions.
type Metrics struct {
	cycles        metric.Int64Counter
	cycleDuration metric.Float64Histogram
	alarmActions  metric.Int64Counter
	failedActions metric.Int64Counter
}

// NewMetrics registers the daemon's instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("vahti.daemon")

	cycles, err := meter.Int64Counter(
		"vahti.daemon.cycles",
		metric.WithDescription("Number of reconciliation cycles"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	cycleDuration, err := meter.Float64Histogram(
		"vahti.daemon.cycle.duration",
		metric.WithDescription("Duration of reconciliation cycles"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	alarmActions, err := meter.Int64Counter(
		"vahti.alarm.actions",
		metric.WithDescription("Number of alarm create/delete actions applied"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, err
	}

	failedActions, err := meter.Int64Counter(
		"vahti.alarm.failures",
		metric.WithDescription("Number of failed alarm operations"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		cycles:        cycles,
		cycleDuration: cycleDuration,
		alarmActions:  alarmActions,
		failedActions: failedActions,
	}, nil
}

// RecordCycle records the outcome of one completed cycle.
func (m *Metrics) RecordCycle(ctx context.Context, summary *reconcile.RunSummary, duration time.Duration) {
	status := "ok"
	if summary.FailureCount() > 0 {
		status = "partial_failure"
	}

	m.cycles.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
		attribute.String("cloud.region", summary.Region),
	))
	m.cycleDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("status", status),
	))
	m.alarmActions.Add(ctx, int64(len(summary.Created)), metric.WithAttributes(
		attribute.String("action", "create"),
	))
	m.alarmActions.Add(ctx, int64(len(summary.Deleted)), metric.WithAttributes(
		attribute.String("action", "delete"),
	))
	m.failedActions.Add(ctx, int64(summary.FailureCount()))
}

// RecordCycleError records a cycle that failed before producing a summary.
func (m *Metrics) RecordCycleError(ctx context.Context) {
	m.cycles.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "error")))
}
