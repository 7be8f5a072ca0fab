// Package daemon runs the reconciliation cycle on an interval.
package daemon

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/vahti-io/vahti/reconcile"
)

// RunFunc executes one full reconciliation cycle.
type RunFunc func(ctx context.Context) (*reconcile.RunSummary, error)

// Daemon repeats a reconciliation run on a fixed interval. Each cycle
// is still fully sequential; the ticker only schedules, never overlaps.
type Daemon struct {
	interval  time.Duration
	run       RunFunc
	metrics   *Metrics
	logger    zerolog.Logger
	startTime time.Time
	runCount  atomic.Int64
}

// New creates a daemon. Metrics may be nil.
func New(interval time.Duration, run RunFunc, metrics *Metrics, logger zerolog.Logger) *Daemon {
	return &Daemon{
		interval:  interval,
		run:       run,
		metrics:   metrics,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Start runs one cycle immediately, then on every tick until the
// context is cancelled. The interval is checked before the first
// cycle so a misconfigured daemon never touches the cloud.
func (d *Daemon) Start(ctx context.Context) error {
	if d.interval <= 0 {
		return fmt.Errorf("daemon interval must be positive, got %s", d.interval)
	}

	d.runOnce(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Int64("cycles", d.runCount.Load()).Msg("daemon stopping")
			return nil
		case <-ticker.C:
			d.runOnce(ctx)
		}
	}
}

func (d *Daemon) runOnce(ctx context.Context) {
	d.runCount.Add(1)
	start := time.Now()

	summary, err := d.run(ctx)
	duration := time.Since(start)

	if err != nil {
		d.logger.Error().Err(err).Msg("reconciliation cycle failed")
		if d.metrics != nil {
			d.metrics.RecordCycleError(ctx)
		}
		return
	}

	d.logger.Info().
		Int("created", len(summary.Created)).
		Int("deleted", len(summary.Deleted)).
		Int("unchanged", summary.Unchanged).
		Int("failed", summary.FailureCount()).
		Dur("duration", duration).
		Msg("reconciliation cycle complete")

	if d.metrics != nil {
		d.metrics.RecordCycle(ctx, summary, duration)
	}
}

// CycleCount returns the number of cycles started so far.
func (d *Daemon) CycleCount() int64 {
	return d.runCount.Load()
}

// Uptime returns how long the daemon has been running.
func (d *Daemon) Uptime() time.Duration {
	return time.Since(d.startTime)
}
