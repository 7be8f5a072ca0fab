package planfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vahti-io/vahti/naming"
	"github.com/vahti-io/vahti/reconcile"
)

func samplePlan() *reconcile.Plan {
	return &reconcile.Plan{
		Region:     "us-east-1",
		Convention: naming.ConventionSuffix,
		Creates: []reconcile.CreateAction{
			{QueueName: "orders", AlarmName: "orders-cloudwatch-alarm", Threshold: 5},
			{QueueName: "orders-dlq", AlarmName: "orders-dlq-cloudwatch-alarm", Threshold: 1},
		},
		Deletes: []string{"gone-cloudwatch-alarm"},
	}
}

func TestFormat(t *testing.T) {
	got := Format(samplePlan())

	want := strings.Join([]string{
		"REGION=us-east-1",
		"ALARM_SUFFIX=-cloudwatch-alarm",
		"---CREATE---",
		"orders|orders-cloudwatch-alarm|5",
		"orders-dlq|orders-dlq-cloudwatch-alarm|1",
		"---DELETE---",
		"gone-cloudwatch-alarm",
		"---SUMMARY---",
		"CREATE_COUNT=2",
		"DELETE_COUNT=1",
	}, "\n") + "\n"

	assert.Equal(t, want, got)
}

func TestFormatPrefixConvention(t *testing.T) {
	plan := &reconcile.Plan{Region: "eu-west-1", Convention: naming.ConventionPrefix}

	got := Format(plan)
	assert.Contains(t, got, "ALARM_PREFIX=SQS-HighMessageCount-\n")
	assert.Contains(t, got, "CREATE_COUNT=0\n")
}

func TestRoundTrip(t *testing.T) {
	plan := samplePlan()

	parsed, err := Parse(strings.NewReader(Format(plan)))
	require.NoError(t, err)

	assert.Equal(t, plan.Region, parsed.Region)
	assert.Equal(t, plan.Convention, parsed.Convention)
	assert.Equal(t, plan.Creates, parsed.Creates)
	assert.Equal(t, plan.Deletes, parsed.Deletes)
}

func TestWriteOverwritesPreviousArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.txt")

	big := samplePlan()
	require.NoError(t, Write(path, big))

	small := &reconcile.Plan{Region: "us-east-1", Convention: naming.ConventionSuffix}
	require.NoError(t, Write(path, small))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.Creates)
	assert.Empty(t, loaded.Deletes)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestParseRejectsCountMismatch(t *testing.T) {
	content := strings.Join([]string{
		"REGION=us-east-1",
		"ALARM_SUFFIX=-cloudwatch-alarm",
		"---CREATE---",
		"orders|orders-cloudwatch-alarm|5",
		"---DELETE---",
		"---SUMMARY---",
		"CREATE_COUNT=2",
		"DELETE_COUNT=0",
	}, "\n")

	_, err := Parse(strings.NewReader(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CREATE_COUNT")
}

func TestParseRejectsTruncatedArtifact(t *testing.T) {
	full := Format(samplePlan())

	// Cut everything from the summary marker on, as a partial write
	// or truncated download would.
	truncated := full[:strings.Index(full, markerSummary)]

	_, err := Parse(strings.NewReader(truncated))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary")
}

func TestParseRejectsPartialSummary(t *testing.T) {
	content := strings.Join([]string{
		"REGION=us-east-1",
		"ALARM_SUFFIX=-cloudwatch-alarm",
		"---CREATE---",
		"---DELETE---",
		"---SUMMARY---",
		"CREATE_COUNT=0",
	}, "\n")

	_, err := Parse(strings.NewReader(content))
	require.Error(t, err)
}

func TestParseRejectsMalformedLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing region",
			content: "ALARM_SUFFIX=-cloudwatch-alarm\n---CREATE---\n---DELETE---\n",
		},
		{
			name:    "missing convention",
			content: "REGION=us-east-1\n---CREATE---\n---DELETE---\n",
		},
		{
			name:    "bad create line",
			content: "REGION=us-east-1\nALARM_PREFIX=SQS-HighMessageCount-\n---CREATE---\norders|only-two\n",
		},
		{
			name:    "bad threshold",
			content: "REGION=us-east-1\nALARM_PREFIX=SQS-HighMessageCount-\n---CREATE---\na|b|many\n",
		},
		{
			name:    "empty queue name",
			content: "REGION=us-east-1\nALARM_PREFIX=SQS-HighMessageCount-\n---CREATE---\n|SQS-HighMessageCount-orders|5\n",
		},
		{
			name:    "empty alarm name",
			content: "REGION=us-east-1\nALARM_PREFIX=SQS-HighMessageCount-\n---CREATE---\norders||5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.content))
			require.Error(t, err)
		})
	}
}

func TestWrittenFileIsPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.txt")
	require.NoError(t, Write(path, samplePlan()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "REGION="))
}
