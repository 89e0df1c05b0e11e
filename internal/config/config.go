// Package config provides configuration loading for the reflector demo
// binary. Settings come from a YAML file, overridden by environment
// variables, overridden by flags (flag merging happens in the CLI layer).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "REFLECTOR_"

// Config is the demo/server configuration file schema.
type Config struct {
	// Addr is the inspector API listen address.
	Addr string `yaml:"addr"`

	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogPretty enables human-readable console logs.
	LogPretty bool `yaml:"log_pretty"`

	// StreamIntervalMs is the websocket push cadence in milliseconds.
	StreamIntervalMs int `yaml:"stream_interval_ms"`

	Profiler ProfilerConfig `yaml:"profiler"`
}

// ProfilerConfig mirrors the profiler construction options.
type ProfilerConfig struct {
	// RingSize is the number of frames retained (default 600, ~10s at 60Hz).
	RingSize int `yaml:"ring_size"`

	// MaxZonesPerFrame is the per-frame zone record cap.
	MaxZonesPerFrame int `yaml:"max_zones_per_frame"`

	// MinRecordedDurationUs is the floor in microseconds below which a
	// zone is not recorded (0 records everything).
	MinRecordedDurationUs int `yaml:"min_recorded_duration_us"`

	// HistoryWindow caps per-zone history samples in snapshots.
	HistoryWindow int `yaml:"history_window"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		Addr:             "127.0.0.1:7700",
		LogLevel:         "info",
		LogPretty:        true,
		StreamIntervalMs: 500,
		Profiler: ProfilerConfig{
			RingSize:         600,
			MaxZonesPerFrame: 256,
			HistoryWindow:    200,
		},
	}
}

// StreamInterval returns the websocket push cadence as a duration.
func (c Config) StreamInterval() time.Duration {
	return time.Duration(c.StreamIntervalMs) * time.Millisecond
}

// MinRecordedDuration returns the zone floor as a duration.
func (c ProfilerConfig) MinRecordedDuration() time.Duration {
	return time.Duration(c.MinRecordedDurationUs) * time.Microsecond
}

// Load reads configuration: defaults, then the YAML file at path (skipped
// when path is empty or the file does not exist), then env overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Missing file is fine: defaults + env apply.
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides config fields from REFLECTOR_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v, ok := envInt(EnvPrefix + "STREAM_INTERVAL_MS"); ok {
		cfg.StreamIntervalMs = v
	}
	if v, ok := envInt(EnvPrefix + "RING_SIZE"); ok {
		cfg.Profiler.RingSize = v
	}
	if v, ok := envInt(EnvPrefix + "MAX_ZONES_PER_FRAME"); ok {
		cfg.Profiler.MaxZonesPerFrame = v
	}
	if v, ok := envInt(EnvPrefix + "MIN_RECORDED_DURATION_US"); ok {
		cfg.Profiler.MinRecordedDurationUs = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// validate rejects settings the server cannot start with. Profiler values
// are not validated here: the profiler clamps them itself.
func (c Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.StreamIntervalMs <= 0 {
		return fmt.Errorf("stream_interval_ms must be positive, got %d", c.StreamIntervalMs)
	}
	return nil
}
