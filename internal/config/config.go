// Package config handles TOML and environment configuration for Vahti.
//
// Precedence, lowest to highest: built-in defaults, TOML file, VAHTI_*
// environment variables. A .env file in the working directory is loaded
// into the environment first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/vahti-io/vahti/naming"
)

// Defaults.
const (
	DefaultRegion        = "us-east-1"
	DefaultThreshold     = 5
	DefaultPeriodSeconds = 60
)

// Config is the root configuration structure.
type Config struct {
	Region             string `toml:"region"`
	AlarmThreshold     int    `toml:"alarm_threshold"`
	AlarmPeriodSeconds int    `toml:"alarm_period_seconds"`
	NotificationTopic  string `toml:"notification_topic"`
	NamingConvention   string `toml:"naming_convention"`
	HistoryDir         string `toml:"history_dir"`

	OTEL   OTELConfig   `toml:"otel"`
	Daemon DaemonConfig `toml:"daemon"`
	Log    LogConfig    `toml:"log"`
}

// OTELConfig holds OpenTelemetry settings.
type OTELConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
	Insecure bool   `toml:"insecure"`
}

// DaemonConfig holds daemon-mode settings.
type DaemonConfig struct {
	IntervalStr string `toml:"interval"`
	Interval    time.Duration
	MetricsAddr string `toml:"metrics_addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Load builds the configuration. An empty path skips the TOML file.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case, not an error
	_ = godotenv.Load()

	cfg := &Config{}
	set := map[string]bool{}

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		for _, key := range meta.Keys() {
			set[key.String()] = true
		}
	}

	applyEnv(cfg, set)
	applyDefaults(cfg, set)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, set map[string]bool) {
	setString(&cfg.Region, "VAHTI_REGION")
	if setInt(&cfg.AlarmThreshold, "VAHTI_ALARM_THRESHOLD") {
		set["alarm_threshold"] = true
	}
	if setInt(&cfg.AlarmPeriodSeconds, "VAHTI_ALARM_PERIOD_SECONDS") {
		set["alarm_period_seconds"] = true
	}
	setString(&cfg.NotificationTopic, "VAHTI_NOTIFICATION_TOPIC")
	setString(&cfg.NamingConvention, "VAHTI_NAMING_CONVENTION")
	setString(&cfg.HistoryDir, "VAHTI_HISTORY_DIR")
	setString(&cfg.Log.Level, "VAHTI_LOG_LEVEL")
	setString(&cfg.OTEL.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func setInt(target *int, key string) bool {
	value := os.Getenv(key)
	if value == "" {
		return false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	*target = n
	return true
}

// applyDefaults fills values the file and environment left unset. An
// explicit zero is kept so Validate rejects it instead of silently
// rewriting it.
func applyDefaults(cfg *Config, set map[string]bool) {
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.AlarmThreshold == 0 && !set["alarm_threshold"] {
		cfg.AlarmThreshold = DefaultThreshold
	}
	if cfg.AlarmPeriodSeconds == 0 && !set["alarm_period_seconds"] {
		cfg.AlarmPeriodSeconds = DefaultPeriodSeconds
	}
	if cfg.Daemon.IntervalStr == "" {
		cfg.Daemon.IntervalStr = "5m"
	}
	if cfg.Daemon.MetricsAddr == "" {
		cfg.Daemon.MetricsAddr = ":9090"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.AlarmThreshold < 1 {
		return fmt.Errorf("alarm_threshold must be a positive integer, got %d", c.AlarmThreshold)
	}
	if c.AlarmPeriodSeconds < 1 {
		return fmt.Errorf("alarm_period_seconds must be a positive integer, got %d", c.AlarmPeriodSeconds)
	}
	if c.NamingConvention != "" {
		if _, err := naming.ParseConvention(c.NamingConvention); err != nil {
			return err
		}
	}

	interval, err := time.ParseDuration(c.Daemon.IntervalStr)
	if err != nil {
		return fmt.Errorf("parse daemon interval %q: %w", c.Daemon.IntervalStr, err)
	}
	if interval <= 0 {
		return fmt.Errorf("daemon interval must be positive, got %q", c.Daemon.IntervalStr)
	}
	c.Daemon.Interval = interval

	return nil
}

// Convention resolves the naming convention for a run mode. The
// configured value wins; otherwise each mode keeps its historical
// default. The two conventions are not interchangeable.
func (c *Config) Convention(fallback naming.Convention) naming.Convention {
	if c.NamingConvention == "" {
		return fallback
	}
	convention, err := naming.ParseConvention(c.NamingConvention)
	if err != nil {
		return fallback
	}
	return convention
}

// ThresholdPolicy returns the policy backed by the configured default.
func (c *Config) ThresholdPolicy() naming.ThresholdPolicy {
	return naming.ThresholdPolicy{Default: c.AlarmThreshold}
}
