// Package notify publishes run outcomes to SNS, best effort.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vahti-io/vahti/reconcile"
)

// Publisher is the slice of the AWS provider the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, topicARN, subject, body string) error
}

// Notifier sends the run summary to a topic. Publish failures are
// logged and dropped; notification never affects the run outcome.
type Notifier struct {
	publisher Publisher
	topicARN  string
	logger    zerolog.Logger
}

// New creates a notifier. An empty topic ARN disables publishing.
func New(publisher Publisher, topicARN string, logger zerolog.Logger) *Notifier {
	return &Notifier{publisher: publisher, topicARN: topicARN, logger: logger}
}

// PublishSummary sends the rendered summary, best effort.
func (n *Notifier) PublishSummary(ctx context.Context, summary *reconcile.RunSummary) {
	if n.topicARN == "" {
		n.logger.Debug().Msg("no notification topic configured, skipping publish")
		return
	}

	subject := fmt.Sprintf("SQS alarm reconciliation (%s): %d created, %d deleted, %d failed",
		summary.Region, len(summary.Created), len(summary.Deleted), summary.FailureCount())

	if err := n.publisher.Publish(ctx, n.topicARN, subject, summary.Render()); err != nil {
		n.logger.Warn().Err(err).Str("topic", n.topicARN).Msg("summary publish failed, continuing")
		return
	}
	n.logger.Info().Str("topic", n.topicARN).Msg("summary published")
}
