// Package inventory snapshots the current queue and alarm sets.
package inventory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vahti-io/vahti/naming"
	"github.com/vahti-io/vahti/providers/aws"
)

// ControlPlane is the slice of the AWS provider the fetcher needs.
type ControlPlane interface {
	ListQueueNames(ctx context.Context) ([]string, error)
	ListAlarms(ctx context.Context, prefix string) ([]aws.Alarm, error)
}

// Fetcher retrieves queue and alarm inventories.
//
// Fetch failures degrade to an empty inventory instead of failing the
// run. That conflates "nothing exists" with "the call failed" and turns
// a transient API error into a no-op reconcile; it is a known risk kept
// for operational compatibility, surfaced only as a warning log.
type Fetcher struct {
	cp         ControlPlane
	convention naming.Convention
	logger     zerolog.Logger
}

// NewFetcher creates a fetcher for the given convention.
func NewFetcher(cp ControlPlane, convention naming.Convention, logger zerolog.Logger) *Fetcher {
	return &Fetcher{cp: cp, convention: convention, logger: logger}
}

// Queues returns the names of all queues in the region, or an empty set
// when the listing fails.
func (f *Fetcher) Queues(ctx context.Context) []string {
	names, err := f.cp.ListQueueNames(ctx)
	if err != nil {
		f.logger.Warn().Err(err).Msg("queue listing failed, treating inventory as empty")
		return nil
	}
	return names
}

// ManagedAlarms returns the names of alarms that carry the active naming
// convention's marker, or an empty set when the listing fails. Foreign
// alarms are invisible to reconciliation.
func (f *Fetcher) ManagedAlarms(ctx context.Context) []string {
	// The prefix convention can be pushed down to the API; the suffix
	// convention has to be filtered locally.
	prefix := ""
	if f.convention == naming.ConventionPrefix {
		prefix = f.convention.Marker()
	}

	alarms, err := f.cp.ListAlarms(ctx, prefix)
	if err != nil {
		f.logger.Warn().Err(err).Msg("alarm listing failed, treating inventory as empty")
		return nil
	}

	var names []string
	for _, alarm := range alarms {
		if f.convention.Matches(alarm.Name) {
			names = append(names, alarm.Name)
		}
	}
	return names
}
