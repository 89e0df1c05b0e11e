package profiler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Profiler records per-frame zone timings into a fixed-capacity ring buffer
// and serves aggregated snapshots to readers.
//
// Exactly one goroutine at a time is expected to call BeginFrame and to use
// the profiler's own StartZone for the current frame (typically the main
// simulation loop). Worker goroutines measure their own zones through
// independent Thread handles (see NewThread). Snapshot may be called from
// any number of goroutines concurrently with the frame loop.
type Profiler struct {
	cfg    Config
	logger zerolog.Logger

	names *NameTable

	ring []frame
	head atomic.Uint32

	// prevStartMicros is owned by the frame-loop goroutine.
	prevStartMicros uint64

	// frameThread tracks nesting depth for the goroutine driving the frame
	// loop; its counter is reset on every BeginFrame.
	frameThread *Thread

	// EMA baselines indexed by nameId, maintained on the read side. The
	// mutex serializes concurrent Snapshot callers; the write path never
	// touches it.
	emaMu sync.Mutex
	ema   []float64

	epoch time.Time
	clock func() time.Time

	minMicros uint32
}

// New creates a profiler with the given configuration. Construction never
// fails: out-of-range settings are clamped to defaults.
func New(cfg Config) *Profiler {
	cfg = cfg.withDefaults()

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}
	logger = logger.With().Str("component", "profiler").Logger()

	p := &Profiler{
		cfg:       cfg,
		logger:    logger,
		names:     NewNameTable(),
		ring:      newRing(cfg.RingSize, cfg.MaxZonesPerFrame),
		epoch:     time.Now(),
		clock:     time.Now,
		minMicros: uint32(cfg.MinRecordedDuration.Microseconds()),
	}
	p.frameThread = &Thread{p: p}

	logger.Debug().
		Int("ring_size", cfg.RingSize).
		Int("max_zones_per_frame", cfg.MaxZonesPerFrame).
		Dur("min_recorded_duration", cfg.MinRecordedDuration).
		Msg("Profiler created")

	return p
}

// nowMicros returns microseconds since the profiler epoch, offset by one so
// that zero stays reserved for never-written ring slots.
func (p *Profiler) nowMicros() uint64 {
	return uint64(p.clock().Sub(p.epoch).Microseconds()) + 1
}

// RegisterName interns a zone label and returns its stable id. Idempotent
// and thread-safe; call sites should cache the result.
func (p *Profiler) RegisterName(label string) uint16 {
	return p.names.Intern(label)
}

// BeginFrame finalizes the previous frame's duration, advances the write
// head to a fresh slot and resets the frame goroutine's nesting depth.
// Call exactly once per application frame, always from the same goroutine.
//
// The head store publishes the new slot to readers: a reader that observes
// the new head value also observes the slot's cleared fields.
func (p *Profiler) BeginFrame() {
	now := p.nowMicros()

	head := p.head.Load()
	if p.prevStartMicros != 0 {
		p.ring[head].durationMicros = now - p.prevStartMicros
	}

	next := (head + 1) % uint32(len(p.ring))
	p.ring[next].reset(now)
	p.prevStartMicros = now

	p.head.Store(next)

	p.frameThread.depth = 0
}

// CurrentDepth returns the nesting depth of the frame-loop goroutine.
func (p *Profiler) CurrentDepth() uint16 {
	return p.frameThread.depth
}

// StartZone opens a measured scope on the frame-loop goroutine. The
// returned Zone must be ended exactly once, typically via defer.
func (p *Profiler) StartZone(nameID uint16) Zone {
	return p.frameThread.StartZone(nameID)
}

// NewThread returns an independent nesting-depth tracker for a worker
// goroutine. Worker depths are not reset by BeginFrame since they track
// their own call stacks; their zones feed the same active frame slot.
func (p *Profiler) NewThread() *Thread {
	return &Thread{p: p}
}

// record appends a completed zone to the active frame. Never blocks and
// never fails: when the frame is already at capacity the record is dropped,
// a documented limitation under extreme fan-out.
func (p *Profiler) record(nameID, depth uint16, durationMicros uint32) {
	if durationMicros < p.minMicros {
		return
	}

	f := &p.ring[p.head.Load()]
	idx := f.count
	if idx >= uint32(len(f.records)) {
		return
	}
	f.records[idx] = ZoneRecord{NameID: nameID, Depth: depth, DurationMicros: durationMicros}
	f.count = idx + 1
}

// Thread tracks the current zone nesting depth for one goroutine, starting
// at 0. It carries no ownership, only a counter; mismatched Start/End pairs
// are a caller contract, not runtime-checked.
type Thread struct {
	p     *Profiler
	depth uint16
}

// Depth returns the goroutine's current nesting depth.
func (t *Thread) Depth() uint16 {
	return t.depth
}

// StartZone opens a measured scope on this goroutine.
func (t *Thread) StartZone(nameID uint16) Zone {
	z := Zone{
		t:           t,
		nameID:      nameID,
		depth:       t.depth,
		startMicros: t.p.nowMicros(),
	}
	t.depth++
	return z
}

// Zone is a scoped measurement. End computes the elapsed duration,
// decrements the owning goroutine's depth and hands the record to the ring.
// The contract "duration is recorded exactly once per started zone,
// regardless of how the scope is exited" is load-bearing: pair every
// StartZone with a deferred End.
type Zone struct {
	t           *Thread
	nameID      uint16
	depth       uint16
	startMicros uint64
}

// End closes the zone and records it into the current frame.
func (z Zone) End() {
	elapsed := z.t.p.nowMicros() - z.startMicros
	z.t.depth--
	z.t.p.record(z.nameID, z.depth, uint32(elapsed))
}
