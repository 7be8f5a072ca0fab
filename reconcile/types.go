package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/vahti-io/vahti/naming"
)

// CreateAction is one alarm to create for a queue lacking one.
type CreateAction struct {
	QueueName string
	AlarmName string
	Threshold int
}

// Plan holds the two independent action sets computed from one pair of
// inventory snapshots.
type Plan struct {
	Region     string
	Convention naming.Convention
	Creates    []CreateAction
	Deletes    []string // orphaned alarm names
	Unchanged  int      // queues that already have their alarm
}

// IsEmpty reports whether the plan contains no actions.
func (p *Plan) IsEmpty() bool {
	return len(p.Creates) == 0 && len(p.Deletes) == 0
}

// RunSummary accumulates the outcome of one apply pass. Built
// incrementally, consumed once by the notification step.
type RunSummary struct {
	Region    string        `json:"region"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Created   []string      `json:"created,omitempty"`
	Deleted   []string      `json:"deleted,omitempty"`
	Unchanged int           `json:"unchanged"`
	Failed    []string      `json:"failed,omitempty"` // "CREATE:<alarm>" or "DELETE:<alarm>" labels
}

// FailureCount drives the process exit code.
func (s *RunSummary) FailureCount() int {
	return len(s.Failed)
}

// RecordCreated marks an alarm as created.
func (s *RunSummary) RecordCreated(alarmName string) {
	s.Created = append(s.Created, alarmName)
}

// RecordDeleted marks an alarm as deleted.
func (s *RunSummary) RecordDeleted(alarmName string) {
	s.Deleted = append(s.Deleted, alarmName)
}

// RecordFailure marks an operation as failed, labeled by kind and name.
func (s *RunSummary) RecordFailure(kind, alarmName string) {
	s.Failed = append(s.Failed, kind+":"+alarmName)
}

// Render produces the human-readable summary used for the diagnostic
// stream and the notification body.
func (s *RunSummary) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Alarm reconciliation in %s finished in %s\n", s.Region, s.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "created=%d deleted=%d unchanged=%d failed=%d\n",
		len(s.Created), len(s.Deleted), s.Unchanged, len(s.Failed))

	writeSection(&b, "Created", s.Created)
	writeSection(&b, "Deleted", s.Deleted)
	writeSection(&b, "Failed", s.Failed)

	return b.String()
}

func writeSection(b *strings.Builder, title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, name := range names {
		fmt.Fprintf(b, "  %s\n", name)
	}
}
