package naming

import "testing"

func TestQueueNameFromURL(t *testing.T) {
	tests := []struct {
		name     string
		queueURL string
		want     string
		wantErr  bool
	}{
		{
			name:     "standard queue URL",
			queueURL: "https://sqs.us-east-1.amazonaws.com/123456789012/orders",
			want:     "orders",
		},
		{
			name:     "dead letter queue URL",
			queueURL: "https://sqs.eu-west-1.amazonaws.com/987654321098/orders-dlq",
			want:     "orders-dlq",
		},
		{
			name:     "bare name",
			queueURL: "payments",
			want:     "payments",
		},
		{
			name:     "empty input",
			queueURL: "",
			wantErr:  true,
		},
		{
			name:     "trailing slash",
			queueURL: "https://sqs.us-east-1.amazonaws.com/123456789012/",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QueueNameFromURL(tt.queueURL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("QueueNameFromURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("QueueNameFromURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConventionRoundTrip(t *testing.T) {
	queues := []string{"orders", "orders-dlq", "payments_dlq", "a", "x-dead-letter"}

	for _, convention := range []Convention{ConventionPrefix, ConventionSuffix} {
		for _, queue := range queues {
			alarm := convention.AlarmName(queue)
			if !convention.Matches(alarm) {
				t.Errorf("%s: alarm %q does not match own convention", convention, alarm)
			}
			if got := convention.QueueName(alarm); got != queue {
				t.Errorf("%s: QueueName(AlarmName(%q)) = %q", convention, queue, got)
			}
		}
	}
}

func TestConventionMatches(t *testing.T) {
	tests := []struct {
		name       string
		convention Convention
		alarm      string
		want       bool
	}{
		{"prefix match", ConventionPrefix, "SQS-HighMessageCount-orders", true},
		{"prefix mismatch", ConventionPrefix, "orders-cloudwatch-alarm", false},
		{"prefix bare marker", ConventionPrefix, "SQS-HighMessageCount-", false},
		{"suffix match", ConventionSuffix, "orders-cloudwatch-alarm", true},
		{"suffix mismatch", ConventionSuffix, "SQS-HighMessageCount-orders", false},
		{"suffix bare marker", ConventionSuffix, "-cloudwatch-alarm", false},
		{"unrelated alarm", ConventionPrefix, "CPUUtilization-web", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.convention.Matches(tt.alarm); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.alarm, got, tt.want)
			}
		})
	}
}

func TestParseConvention(t *testing.T) {
	if _, err := ParseConvention("prefix"); err != nil {
		t.Errorf("ParseConvention(prefix) error = %v", err)
	}
	if _, err := ParseConvention("suffix"); err != nil {
		t.Errorf("ParseConvention(suffix) error = %v", err)
	}
	if _, err := ParseConvention("guess"); err == nil {
		t.Error("ParseConvention(guess) expected error")
	}
}

func TestIsDeadLetter(t *testing.T) {
	tests := []struct {
		queue string
		want  bool
	}{
		{"orders-dlq", true},
		{"orders-dead-letter", true},
		{"orders_dlq", true},
		{"orders", false},
		{"orders-dlq-replay", false}, // suffix must be anchored
		{"orders-DLQ", false},        // case-sensitive
		{"dlq", false},               // marker alone, no separator
		{"orders-deadletter", false},
	}

	for _, tt := range tests {
		t.Run(tt.queue, func(t *testing.T) {
			if got := IsDeadLetter(tt.queue); got != tt.want {
				t.Errorf("IsDeadLetter(%q) = %v, want %v", tt.queue, got, tt.want)
			}
		})
	}
}

func TestThresholdPolicy(t *testing.T) {
	policy := ThresholdPolicy{Default: 5}

	if got := policy.Threshold("orders-dlq"); got != 1 {
		t.Errorf("Threshold(orders-dlq) = %d, want 1", got)
	}
	if got := policy.Threshold("orders_dlq"); got != 1 {
		t.Errorf("Threshold(orders_dlq) = %d, want 1", got)
	}
	if got := policy.Threshold("orders-dead-letter"); got != 1 {
		t.Errorf("Threshold(orders-dead-letter) = %d, want 1", got)
	}
	if got := policy.Threshold("orders"); got != 5 {
		t.Errorf("Threshold(orders) = %d, want 5", got)
	}

	custom := ThresholdPolicy{Default: 25}
	if got := custom.Threshold("orders"); got != 25 {
		t.Errorf("Threshold(orders) with default 25 = %d", got)
	}
}
