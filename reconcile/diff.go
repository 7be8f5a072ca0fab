// Package reconcile computes the create/delete sets that bring the
// alarm inventory into correspondence with the queue inventory.
package reconcile

import (
	"sort"

	"github.com/vahti-io/vahti/naming"
)

// Compute diffs the two snapshots. Membership is purely name-based:
// a queue whose derived alarm name is absent needs a create, an alarm
// whose derived queue name is absent is orphaned and needs a delete.
// The two sets are independent; results are sorted only for stable
// plan and log output.
func Compute(queues, alarms []string, region string, convention naming.Convention, policy naming.ThresholdPolicy) Plan {
	queueSet := buildNameSet(queues)
	alarmSet := buildNameSet(alarms)

	plan := Plan{
		Region:     region,
		Convention: convention,
	}

	for queue := range queueSet {
		if _, exists := alarmSet[convention.AlarmName(queue)]; exists {
			plan.Unchanged++
			continue
		}
		plan.Creates = append(plan.Creates, CreateAction{
			QueueName: queue,
			AlarmName: convention.AlarmName(queue),
			Threshold: policy.Threshold(queue),
		})
	}

	for alarm := range alarmSet {
		if _, exists := queueSet[convention.QueueName(alarm)]; !exists {
			plan.Deletes = append(plan.Deletes, alarm)
		}
	}

	sort.Slice(plan.Creates, func(i, j int) bool {
		return plan.Creates[i].QueueName < plan.Creates[j].QueueName
	})
	sort.Strings(plan.Deletes)

	return plan
}

// buildNameSet deduplicates a name list into a membership set.
func buildNameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
