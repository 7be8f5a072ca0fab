// Package planfile serializes reconciliation plans to the flat text
// artifact consumed by the apply step.
//
// The format is fixed; downstream tooling parses it line by line:
//
//	REGION=us-east-1
//	ALARM_PREFIX=SQS-HighMessageCount-
//	---CREATE---
//	queueName|alarmName|threshold
//	---DELETE---
//	alarmName
//	---SUMMARY---
//	CREATE_COUNT=1
//	DELETE_COUNT=1
//
// The convention line is ALARM_SUFFIX= for the suffix convention. The
// file is truncated and rewritten on every run; a single writer is
// assumed.
package planfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vahti-io/vahti/naming"
	"github.com/vahti-io/vahti/reconcile"
)

const (
	markerCreate  = "---CREATE---"
	markerDelete  = "---DELETE---"
	markerSummary = "---SUMMARY---"
)

// Format renders a plan in the artifact format. The same rendering is
// written to the plan file and printed to stdout.
func Format(plan *reconcile.Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "REGION=%s\n", plan.Region)
	if plan.Convention == naming.ConventionSuffix {
		fmt.Fprintf(&b, "ALARM_SUFFIX=%s\n", naming.AlarmSuffix)
	} else {
		fmt.Fprintf(&b, "ALARM_PREFIX=%s\n", naming.AlarmPrefix)
	}

	b.WriteString(markerCreate + "\n")
	for _, create := range plan.Creates {
		fmt.Fprintf(&b, "%s|%s|%d\n", create.QueueName, create.AlarmName, create.Threshold)
	}

	b.WriteString(markerDelete + "\n")
	for _, alarm := range plan.Deletes {
		b.WriteString(alarm + "\n")
	}

	b.WriteString(markerSummary + "\n")
	fmt.Fprintf(&b, "CREATE_COUNT=%d\n", len(plan.Creates))
	fmt.Fprintf(&b, "DELETE_COUNT=%d\n", len(plan.Deletes))

	return b.String()
}

// Write persists the plan, overwriting any previous artifact.
func Write(path string, plan *reconcile.Plan) error {
	if err := os.WriteFile(path, []byte(Format(plan)), 0644); err != nil {
		return fmt.Errorf("write plan file: %w", err)
	}
	return nil
}

// Load reads and parses a plan artifact from disk.
func Load(path string) (*reconcile.Plan, error) {
	file, err := os.Open(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("open plan file: %w", err)
	}
	defer func() { _ = file.Close() }()

	plan, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse plan file %s: %w", path, err)
	}
	return plan, nil
}

type section int

const (
	sectionHeader section = iota
	sectionCreate
	sectionDelete
	sectionSummary
)

// Parse reads a plan artifact. The parsed plan reproduces exactly the
// action sets that were serialized. Both summary counts are required
// and must match the parsed sections, so a truncated artifact is
// rejected rather than partially applied.
func Parse(r io.Reader) (*reconcile.Plan, error) {
	plan := &reconcile.Plan{}
	current := sectionHeader
	createCount, deleteCount := -1, -1

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		switch line {
		case markerCreate:
			current = sectionCreate
			continue
		case markerDelete:
			current = sectionDelete
			continue
		case markerSummary:
			current = sectionSummary
			continue
		}

		var err error
		switch current {
		case sectionHeader:
			err = parseHeaderLine(plan, line)
		case sectionCreate:
			err = parseCreateLine(plan, line)
		case sectionDelete:
			plan.Deletes = append(plan.Deletes, line)
		case sectionSummary:
			err = parseSummaryLine(line, &createCount, &deleteCount)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}

	if plan.Region == "" {
		return nil, fmt.Errorf("plan has no REGION line")
	}
	if plan.Convention == "" {
		return nil, fmt.Errorf("plan has no convention line")
	}
	if createCount < 0 || deleteCount < 0 {
		return nil, fmt.Errorf("plan has no summary counts, artifact truncated?")
	}
	if createCount != len(plan.Creates) {
		return nil, fmt.Errorf("CREATE_COUNT=%d but %d create lines", createCount, len(plan.Creates))
	}
	if deleteCount != len(plan.Deletes) {
		return nil, fmt.Errorf("DELETE_COUNT=%d but %d delete lines", deleteCount, len(plan.Deletes))
	}

	return plan, nil
}

func parseHeaderLine(plan *reconcile.Plan, line string) error {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return fmt.Errorf("malformed header line %q", line)
	}
	switch key {
	case "REGION":
		plan.Region = value
	case "ALARM_PREFIX":
		plan.Convention = naming.ConventionPrefix
	case "ALARM_SUFFIX":
		plan.Convention = naming.ConventionSuffix
	default:
		return fmt.Errorf("unknown header key %q", key)
	}
	return nil
}

func parseCreateLine(plan *reconcile.Plan, line string) error {
	fields := strings.Split(line, "|")
	if len(fields) != 3 {
		return fmt.Errorf("malformed create line %q", line)
	}
	if fields[0] == "" || fields[1] == "" {
		return fmt.Errorf("empty name in create line %q", line)
	}
	threshold, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("bad threshold in create line %q: %w", line, err)
	}
	plan.Creates = append(plan.Creates, reconcile.CreateAction{
		QueueName: fields[0],
		AlarmName: fields[1],
		Threshold: threshold,
	})
	return nil
}

func parseSummaryLine(line string, createCount, deleteCount *int) error {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return fmt.Errorf("malformed summary line %q", line)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("bad count in summary line %q: %w", line, err)
	}
	switch key {
	case "CREATE_COUNT":
		*createCount = n
	case "DELETE_COUNT":
		*deleteCount = n
	default:
		return fmt.Errorf("unknown summary key %q", key)
	}
	return nil
}
