package profiler

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultRingSize keeps ~10s of history at 60Hz.
	DefaultRingSize = 600

	// DefaultMaxZonesPerFrame caps zone records per frame; records beyond
	// the cap are silently dropped.
	DefaultMaxZonesPerFrame = 256

	// DefaultHistoryWindow is the number of per-frame samples reported per
	// zone in a snapshot, independent of the ring's internal capacity.
	DefaultHistoryWindow = 200
)

// Config contains profiler construction options.
type Config struct {
	// RingSize is the number of frames retained in the ring buffer.
	RingSize int

	// MaxZonesPerFrame is the per-frame zone record cap. Zones recorded
	// beyond the cap within a single frame are dropped without error.
	MaxZonesPerFrame int

	// MinRecordedDuration is the floor below which a completed zone is not
	// recorded. Zero records everything.
	MinRecordedDuration time.Duration

	// HistoryWindow caps the per-zone history length in snapshots.
	HistoryWindow int

	// Logger is the logger instance (optional, defaults to zerolog.Nop()).
	// The frame hot path never logs; only construction does.
	Logger zerolog.Logger
}

// DefaultConfig returns a default profiler configuration.
func DefaultConfig() Config {
	return Config{
		RingSize:         DefaultRingSize,
		MaxZonesPerFrame: DefaultMaxZonesPerFrame,
		HistoryWindow:    DefaultHistoryWindow,
	}
}

// withDefaults clamps out-of-range values to their defaults. The profiler
// never fails construction: an instrumented application must not be taken
// down by a bad profiler setting.
func (c Config) withDefaults() Config {
	if c.RingSize < 2 {
		c.RingSize = DefaultRingSize
	}
	if c.MaxZonesPerFrame < 1 {
		c.MaxZonesPerFrame = DefaultMaxZonesPerFrame
	}
	if c.HistoryWindow < 1 {
		c.HistoryWindow = DefaultHistoryWindow
	}
	if c.MinRecordedDuration < 0 {
		c.MinRecordedDuration = 0
	}
	return c
}
