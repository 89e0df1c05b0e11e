// Package mockdata provides a synthetic host application: a small fixed
// scene graph and a simulated 60Hz game loop feeding the profiler. It
// exists so the inspector front-end can be developed against realistic
// data without embedding the library in a real application.
package mockdata

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/reflector-dev/reflector-go/pkg/profiler"
	"github.com/reflector-dev/reflector-go/pkg/reflector"
)

const targetFrameTime = time.Second / 60

// Host is a mock embedding application. It implements the reflector
// provider interfaces and drives the profiler from Run.
type Host struct {
	logger zerolog.Logger
	rng    *rand.Rand

	scene    []reflector.SceneNode
	entities map[uint64]reflector.EntityInfo

	mu   sync.Mutex
	perf reflector.PerfMetrics
	tick uint64
}

// New creates a mock host with a deterministic scene. The seed drives the
// simulated per-frame load so runs are reproducible.
func New(logger zerolog.Logger, seed int64) *Host {
	h := &Host{
		logger:   logger.With().Str("component", "mockdata").Logger(),
		rng:      rand.New(rand.NewSource(seed)),
		entities: make(map[uint64]reflector.EntityInfo),
	}
	h.buildScene()
	h.perf = reflector.PerfMetrics{FPS: 60, FrameTimeMs: 16.6, EntityCount: len(h.scene)}
	return h
}

// buildScene assembles the fixed entity tree the inspector will explore.
func (h *Host) buildScene() {
	h.scene = []reflector.SceneNode{
		{ID: 1, ParentID: 0, Type: "Scene", Name: "main"},
		{ID: 10, ParentID: 1, Type: "Layer", Name: "world"},
		{ID: 11, ParentID: 10, Type: "Sprite", Name: "player"},
		{ID: 12, ParentID: 10, Type: "Sprite", Name: "enemy-01"},
		{ID: 13, ParentID: 10, Type: "Sprite", Name: "enemy-02"},
		{ID: 14, ParentID: 10, Type: "TileMap", Name: "terrain"},
		{ID: 20, ParentID: 1, Type: "Layer", Name: "ui"},
		{ID: 21, ParentID: 20, Type: "Label", Name: "score"},
		{ID: 22, ParentID: 20, Type: "Panel"},
	}

	h.entities[1] = reflector.EntityInfo{
		ID: 1, Type: "Scene", Name: "main",
		Properties: []reflector.Property{
			reflector.StringProperty("state", "running"),
			reflector.ColorProperty("clearColor", "#1a1a2e"),
		},
	}
	h.entities[11] = reflector.EntityInfo{
		ID: 11, Type: "Sprite", Name: "player",
		Properties: []reflector.Property{
			reflector.FloatProperty("x", 128),
			reflector.FloatProperty("y", 96),
			reflector.IntProperty("hp", 100),
			reflector.ColorProperty("tint", "#ffffff"),
			reflector.Points2DProperty("path", [][2]float64{{0, 0}, {64, 32}, {128, 96}}),
		},
	}
	h.entities[12] = reflector.EntityInfo{
		ID: 12, Type: "Sprite", Name: "enemy-01",
		Properties: []reflector.Property{
			reflector.FloatProperty("x", 300),
			reflector.FloatProperty("y", 200),
			reflector.IntProperty("hp", 40),
		},
	}
	h.entities[14] = reflector.EntityInfo{
		ID: 14, Type: "TileMap", Name: "terrain",
		Properties: []reflector.Property{
			reflector.IntProperty("width", 256),
			reflector.IntProperty("height", 128),
			reflector.StringProperty("tileset", "overworld.png"),
		},
	}
	for _, n := range h.scene {
		if _, ok := h.entities[n.ID]; !ok {
			h.entities[n.ID] = reflector.EntityInfo{ID: n.ID, Type: n.Type, Name: n.Name}
		}
	}
}

// Perf implements reflector.PerfProvider.
func (h *Host) Perf() reflector.PerfMetrics {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.perf
}

// Scene implements reflector.SceneProvider.
func (h *Host) Scene() []reflector.SceneNode {
	return h.scene
}

// Entity implements reflector.EntityProvider.
func (h *Host) Entity(id uint64) (reflector.EntityInfo, bool) {
	e, ok := h.entities[id]
	return e, ok
}

// Run drives a simulated 60Hz game loop until the context is cancelled.
// Each iteration opens nested zones with plausible durations: a heartbeat
// of steady frames with occasional physics spikes, which is exactly the
// shape the EMA baseline exists to expose.
func (h *Host) Run(ctx context.Context, p *profiler.Profiler) {
	update := p.RegisterName("update")
	physics := p.RegisterName("physics")
	collision := p.RegisterName("collision")
	render := p.RegisterName("render")
	audio := p.RegisterName("audio")

	h.logger.Info().Msg("Mock game loop started")

	frameStart := time.Now()
	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Uint64("frames", h.tick).Msg("Mock game loop stopped")
			return
		default:
		}

		p.BeginFrame()

		zone := p.StartZone(update)
		h.simulateWork(600, 200)
		zone.End()

		zone = p.StartZone(physics)
		h.simulatePhysics(p, collision)
		zone.End()

		zone = p.StartZone(render)
		h.simulateWork(2000, 800)
		zone.End()

		zone = p.StartZone(audio)
		h.simulateWork(150, 80)
		zone.End()

		h.endFrame(&frameStart)
	}
}

// simulatePhysics occasionally spikes and always nests a collision pass, so
// depth filtering has something to ignore.
func (h *Host) simulatePhysics(p *profiler.Profiler, collision uint16) {
	baseMicros := 1200
	if h.rng.Intn(240) == 0 { // roughly every 4 seconds
		baseMicros = 9000
	}
	h.simulateWork(baseMicros, 300)

	zone := p.StartZone(collision)
	h.simulateWork(400, 150)
	zone.End()
}

// simulateWork sleeps for base +/- jitter microseconds.
func (h *Host) simulateWork(baseMicros, jitterMicros int) {
	d := baseMicros
	if jitterMicros > 0 {
		d += h.rng.Intn(2*jitterMicros) - jitterMicros
	}
	if d > 0 {
		time.Sleep(time.Duration(d) * time.Microsecond)
	}
}

// endFrame sleeps out the remainder of the frame budget and refreshes the
// published perf metrics.
func (h *Host) endFrame(frameStart *time.Time) {
	elapsed := time.Since(*frameStart)
	if remaining := targetFrameTime - elapsed; remaining > 0 {
		time.Sleep(remaining)
	}

	frameTime := time.Since(*frameStart)
	*frameStart = time.Now()

	h.mu.Lock()
	h.tick++
	ms := float64(frameTime.Microseconds()) / 1000.0
	h.perf = reflector.PerfMetrics{
		FPS:         math.Round(1000.0/ms*10) / 10,
		FrameTimeMs: math.Round(ms*100) / 100,
		EntityCount: len(h.scene),
	}
	h.mu.Unlock()
}
