// Package profiler implements the frame profiler core: a fixed-capacity
// ring buffer of per-frame zone timings with a lock-free hot path and a
// read-side aggregator that produces smoothed per-zone time series.
//
// The intended usage pattern is one Profiler per embedding application.
// The application calls BeginFrame once per iteration of its main loop and
// wraps measured work in zones:
//
//	p := profiler.New(profiler.DefaultConfig())
//	physicsID := p.RegisterName("physics")
//
//	for running {
//		p.BeginFrame()
//
//		zone := p.StartZone(physicsID)
//		stepPhysics()
//		zone.End()
//	}
//
// Snapshot may be called concurrently from any goroutine (typically a
// reporting loop) without blocking the frame loop.
package profiler
