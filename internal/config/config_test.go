package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vahti-io/vahti/naming"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, 5, cfg.AlarmThreshold)
	assert.Equal(t, 60, cfg.AlarmPeriodSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5*time.Minute, cfg.Daemon.Interval)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vahti.toml")
	content := `
region = "eu-west-1"
alarm_threshold = 10
notification_topic = "arn:aws:sns:eu-west-1:123456789012:ops"
naming_convention = "suffix"

[daemon]
interval = "1m"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, 10, cfg.AlarmThreshold)
	assert.Equal(t, "arn:aws:sns:eu-west-1:123456789012:ops", cfg.NotificationTopic)
	assert.Equal(t, time.Minute, cfg.Daemon.Interval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, naming.ConventionSuffix, cfg.Convention(naming.ConventionPrefix))
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vahti.toml")
	require.NoError(t, os.WriteFile(path, []byte(`region = "eu-west-1"`), 0644))

	t.Setenv("VAHTI_REGION", "ap-southeast-2")
	t.Setenv("VAHTI_ALARM_THRESHOLD", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ap-southeast-2", cfg.Region)
	assert.Equal(t, 3, cfg.AlarmThreshold)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative threshold", `alarm_threshold = -1`},
		{"explicit zero threshold", `alarm_threshold = 0`},
		{"explicit zero period", `alarm_period_seconds = 0`},
		{"unknown convention", `naming_convention = "guess"`},
		{"bad interval", "[daemon]\ninterval = \"soon\""},
		{"zero interval", "[daemon]\ninterval = \"0s\""},
		{"negative interval", "[daemon]\ninterval = \"-1m\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vahti.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestEnvZeroThresholdRejected(t *testing.T) {
	t.Setenv("VAHTI_ALARM_THRESHOLD", "0")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestConventionFallback(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, naming.ConventionPrefix, cfg.Convention(naming.ConventionPrefix))
	assert.Equal(t, naming.ConventionSuffix, cfg.Convention(naming.ConventionSuffix))

	cfg.NamingConvention = "prefix"
	assert.Equal(t, naming.ConventionPrefix, cfg.Convention(naming.ConventionSuffix))
}
