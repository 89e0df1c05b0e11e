package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_LevelFiltering(t *testing.T) {
	cases := []struct {
		level      string
		suppressed string
		logged     string
	}{
		{"debug", "", "debug message"},
		{"info", "debug message", "info message"},
		{"warn", "info message", "warn message"},
		{"error", "warn message", "error message"},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tc.level, Output: &buf})

			logger.Debug().Msg("debug message")
			logger.Info().Msg("info message")
			logger.Warn().Msg("warn message")
			logger.Error().Msg("error message")

			output := buf.String()
			if tc.suppressed != "" && strings.Contains(output, tc.suppressed) {
				t.Errorf("Expected %q to be suppressed at %s level", tc.suppressed, tc.level)
			}
			if !strings.Contains(output, tc.logged) {
				t.Errorf("Expected %q to be logged at %s level", tc.logged, tc.level)
			}
		})
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "verbose", Output: &buf})

	if logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level fallback, got %v", logger.GetLevel())
	}
}

func TestNew_NilOutputDoesNotPanic(t *testing.T) {
	logger := New(Config{Level: "error", Output: nil})
	logger.Error().Msg("goes to stderr")
}

func TestNew_PrettyOutputContainsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Pretty: true, Output: &buf})

	logger.Info().Msg("frame budget exceeded")

	if !strings.Contains(buf.String(), "frame budget exceeded") {
		t.Error("Expected pretty output to contain the message")
	}
}

func TestNewWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithComponent(Config{Level: "info", Output: &buf}, "inspector")

	logger.Info().Msg("listening")

	output := buf.String()
	if !strings.Contains(output, "inspector") {
		t.Error("Expected log line to carry the component field")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("Expected default level 'info', got %q", cfg.Level)
	}
	if !cfg.Pretty {
		t.Error("Expected pretty output by default")
	}
}
