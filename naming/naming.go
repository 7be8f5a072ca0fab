// Package naming maps queue names to alarm names and back.
//
// Two conventions exist because the two run modes grew up separately:
// the combined reconcile run prefixes alarms with "SQS-HighMessageCount-",
// the plan/apply pair suffixes them with "-cloudwatch-alarm". They are not
// interchangeable; the convention in force is always selected explicitly.
package naming

import (
	"fmt"
	"strings"
)

const (
	// AlarmPrefix is the marker used by the prefix convention.
	AlarmPrefix = "SQS-HighMessageCount-"
	// AlarmSuffix is the marker used by the suffix convention.
	AlarmSuffix = "-cloudwatch-alarm"
)

// Convention identifies which alarm naming scheme is in force for a run.
type Convention string

const (
	ConventionPrefix Convention = "prefix"
	ConventionSuffix Convention = "suffix"
)

// ParseConvention validates a convention string from config.
func ParseConvention(s string) (Convention, error) {
	switch Convention(s) {
	case ConventionPrefix, ConventionSuffix:
		return Convention(s), nil
	default:
		return "", fmt.Errorf("unknown naming convention %q (want prefix or suffix)", s)
	}
}

// Marker returns the literal prefix or suffix string for the convention.
func (c Convention) Marker() string {
	if c == ConventionSuffix {
		return AlarmSuffix
	}
	return AlarmPrefix
}

// AlarmName derives the alarm name for a queue under this convention.
func (c Convention) AlarmName(queue string) string {
	if c == ConventionSuffix {
		return queue + AlarmSuffix
	}
	return AlarmPrefix + queue
}

// QueueName derives the queue name back from an alarm name. Alarm names
// that do not carry the convention's marker never reach this function;
// they are filtered out by Matches at fetch time.
func (c Convention) QueueName(alarm string) string {
	if c == ConventionSuffix {
		return strings.TrimSuffix(alarm, AlarmSuffix)
	}
	return strings.TrimPrefix(alarm, AlarmPrefix)
}

// Matches reports whether an alarm name was produced by this convention.
func (c Convention) Matches(alarm string) bool {
	if c == ConventionSuffix {
		return strings.HasSuffix(alarm, AlarmSuffix) && len(alarm) > len(AlarmSuffix)
	}
	return strings.HasPrefix(alarm, AlarmPrefix) && len(alarm) > len(AlarmPrefix)
}

// QueueNameFromURL extracts the queue name from an SQS queue URL,
// e.g. https://sqs.us-east-1.amazonaws.com/123456789012/orders-dlq.
func QueueNameFromURL(queueURL string) (string, error) {
	if queueURL == "" {
		return "", fmt.Errorf("empty queue URL")
	}
	parts := strings.Split(queueURL, "/")
	name := parts[len(parts)-1]
	if name == "" {
		return "", fmt.Errorf("queue URL %q has no name segment", queueURL)
	}
	return name, nil
}

// deadLetterSuffixes are matched case-sensitively, anchored at end of name.
var deadLetterSuffixes = []string{"-dlq", "-dead-letter", "_dlq"}

// IsDeadLetter reports whether a queue name marks a dead-letter queue.
func IsDeadLetter(queue string) bool {
	for _, suffix := range deadLetterSuffixes {
		if strings.HasSuffix(queue, suffix) {
			return true
		}
	}
	return false
}

// ThresholdPolicy selects the alarm threshold for a queue.
type ThresholdPolicy struct {
	// Default applies to normal queues. Dead-letter queues always
	// alert on any backlog at all.
	Default int
}

// Threshold returns 1 for dead-letter queues, the configured default
// otherwise.
func (p ThresholdPolicy) Threshold(queue string) int {
	if IsDeadLetter(queue) {
		return 1
	}
	return p.Default
}
