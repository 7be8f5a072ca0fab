// Package executor applies a reconciliation plan against CloudWatch.
package executor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vahti-io/vahti/providers/aws"
	"github.com/vahti-io/vahti/reconcile"
)

// ManagedByTag marks alarms created by this tool.
const ManagedByTag = "Automation"

// AlarmAPI is the slice of the AWS provider the executor needs.
type AlarmAPI interface {
	PutQueueDepthAlarm(ctx context.Context, alarm aws.QueueDepthAlarm) error
	DeleteAlarm(ctx context.Context, name string) error
	TagAlarm(ctx context.Context, name string, tags map[string]string) error
}

// Options configure alarm creation.
type Options struct {
	PeriodSeconds int
	TopicARN      string
}

// Engine executes plan actions one at a time. There is no retry and no
// parallel dispatch; a failed action is counted and the loop moves on.
type Engine struct {
	api     AlarmAPI
	options Options
	logger  zerolog.Logger
}

// NewEngine creates an executor engine.
func NewEngine(api AlarmAPI, options Options, logger zerolog.Logger) *Engine {
	return &Engine{api: api, options: options, logger: logger}
}

// Apply runs every create then every delete in the plan and returns the
// accumulated summary. Successfully applied actions stay applied even
// when later actions fail; the only failure signal is the summary's
// failure count.
func (e *Engine) Apply(ctx context.Context, plan *reconcile.Plan) *reconcile.RunSummary {
	start := time.Now()
	summary := &reconcile.RunSummary{
		Region:    plan.Region,
		StartedAt: start,
		Unchanged: plan.Unchanged,
	}

	for _, create := range plan.Creates {
		e.applyCreate(ctx, create, summary)
	}
	for _, alarmName := range plan.Deletes {
		e.applyDelete(ctx, alarmName, summary)
	}

	summary.Duration = time.Since(start)
	return summary
}

func (e *Engine) applyCreate(ctx context.Context, create reconcile.CreateAction, summary *reconcile.RunSummary) {
	err := e.api.PutQueueDepthAlarm(ctx, aws.QueueDepthAlarm{
		AlarmName:     create.AlarmName,
		QueueName:     create.QueueName,
		Threshold:     create.Threshold,
		PeriodSeconds: e.options.PeriodSeconds,
		TopicARN:      e.options.TopicARN,
	})
	if err != nil {
		e.logger.Error().Err(err).Str("alarm", create.AlarmName).Msg("create alarm failed")
		summary.RecordFailure("CREATE", create.AlarmName)
		return
	}

	e.logger.Info().
		Str("alarm", create.AlarmName).
		Str("queue", create.QueueName).
		Int("threshold", create.Threshold).
		Msg("alarm created")
	summary.RecordCreated(create.AlarmName)

	e.tagCreatedAlarm(ctx, create)
}

// tagCreatedAlarm is fire-and-forget: a tagging failure is logged but
// never counted against the run.
func (e *Engine) tagCreatedAlarm(ctx context.Context, create reconcile.CreateAction) {
	tags := map[string]string{
		"ManagedBy": ManagedByTag,
		"Queue":     create.QueueName,
	}
	if err := e.api.TagAlarm(ctx, create.AlarmName, tags); err != nil {
		e.logger.Warn().Err(err).Str("alarm", create.AlarmName).Msg("tagging failed, continuing")
	}
}

func (e *Engine) applyDelete(ctx context.Context, alarmName string, summary *reconcile.RunSummary) {
	if err := e.api.DeleteAlarm(ctx, alarmName); err != nil {
		e.logger.Error().Err(err).Str("alarm", alarmName).Msg("delete alarm failed")
		summary.RecordFailure("DELETE", alarmName)
		return
	}

	e.logger.Info().Str("alarm", alarmName).Msg("orphaned alarm deleted")
	summary.RecordDeleted(alarmName)
}
