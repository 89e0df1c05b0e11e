package profiler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findZone(t *testing.T, snap Snapshot, name string) ZoneStats {
	t.Helper()
	for _, z := range snap.Zones {
		if z.Name == name {
			return z
		}
	}
	t.Fatalf("zone %q not found in snapshot", name)
	return ZoneStats{}
}

func TestSnapshot_EmptyBeforeAnyCompletedFrame(t *testing.T) {
	p, _ := newTestProfiler(Config{RingSize: 4, MaxZonesPerFrame: 4})
	p.RegisterName("render")

	// No frame has completed yet: the only written slot is the head.
	p.BeginFrame()

	snap := p.Snapshot()
	require.NotNil(t, snap.Zones)
	assert.Empty(t, snap.Zones)
}

func TestSnapshot_EndToEndScenario(t *testing.T) {
	// ringSize=4: record one depth-0 zone "A" of 1000µs in frames 1-3,
	// nothing in frame 4. After the 4th BeginFrame the snapshot must
	// report a 3-entry history of [1.0, 1.0, 1.0] ms, oldest to newest,
	// with the active 4th slot excluded entirely.
	p, clock := newTestProfiler(Config{RingSize: 4, MaxZonesPerFrame: 8})
	id := p.RegisterName("A")

	for i := 0; i < 3; i++ {
		clock.advance(16 * time.Millisecond)
		p.BeginFrame()

		zone := p.StartZone(id)
		clock.advance(1000 * time.Microsecond)
		zone.End()
	}
	clock.advance(16 * time.Millisecond)
	p.BeginFrame()

	snap := p.Snapshot()
	require.Len(t, snap.Zones, 1)

	a := snap.Zones[0]
	assert.Equal(t, "A", a.Name)
	assert.Nil(t, a.Parent)
	assert.Equal(t, []float64{1.0, 1.0, 1.0}, a.History)
}

func TestSnapshot_DepthZeroOnlyAggregation(t *testing.T) {
	p, _ := newTestProfiler(Config{RingSize: 4, MaxZonesPerFrame: 8})
	parent := p.RegisterName("update")
	child := p.RegisterName("collision")

	p.BeginFrame()
	p.record(parent, 0, 5000)
	p.BeginFrame()

	before := findZone(t, p.Snapshot(), "update")
	require.Equal(t, []float64{5.0}, before.History)

	// Same shape plus a nested child: the parent's aggregated total must
	// not change, and the child contributes nothing at depth 1.
	p.record(parent, 0, 5000)
	p.record(child, 1, 3000)
	p.BeginFrame()

	snap := p.Snapshot()
	after := findZone(t, snap, "update")
	assert.Equal(t, []float64{5.0, 5.0}, after.History)

	childStats := findZone(t, snap, "collision")
	assert.Equal(t, []float64{0.0, 0.0}, childStats.History, "depth>0 records are excluded")
}

func TestSnapshot_StopsAtUninitializedSlot(t *testing.T) {
	p, _ := newTestProfiler(Config{RingSize: 8, MaxZonesPerFrame: 4})
	id := p.RegisterName("A")

	// Two completed frames in an 8-slot ring: the walk must stop at the
	// first never-written slot instead of reporting phantom zeros.
	p.BeginFrame()
	p.record(id, 0, 2000)
	p.BeginFrame()
	p.record(id, 0, 4000)
	p.BeginFrame()

	a := findZone(t, p.Snapshot(), "A")
	assert.Equal(t, []float64{2.0, 4.0}, a.History)
}

func TestSnapshot_PresentAllZeroHistoryIncluded(t *testing.T) {
	p, _ := newTestProfiler(Config{RingSize: 4, MaxZonesPerFrame: 4})
	p.RegisterName("idle")

	p.BeginFrame()
	p.BeginFrame()

	// "idle" never recorded a sample but the visible window exists, so it
	// is reported with a zero history rather than omitted.
	zone := findZone(t, p.Snapshot(), "idle")
	assert.Equal(t, []float64{0.0}, zone.History)
	assert.Equal(t, 0.0, zone.EMA)
}

func TestSnapshot_EMABootstrapsToFirstNonzeroSample(t *testing.T) {
	p, _ := newTestProfiler(Config{RingSize: 8, MaxZonesPerFrame: 4})
	id := p.RegisterName("render")

	p.BeginFrame()
	p.record(id, 0, 7250)
	p.BeginFrame()

	zone := findZone(t, p.Snapshot(), "render")
	assert.Equal(t, 7.25, zone.EMA, "EMA equals the first nonzero sample, not a ramp from 0")
}

func TestSnapshot_EMAClampsSpikes(t *testing.T) {
	p, _ := newTestProfiler(Config{RingSize: 8, MaxZonesPerFrame: 4})
	id := p.RegisterName("render")

	// Baseline 4ms, then a 100ms spike (far above 2.5x the baseline).
	p.BeginFrame()
	p.record(id, 0, 4000)
	p.BeginFrame()
	p.record(id, 0, 100000)
	p.BeginFrame()

	zone := findZone(t, p.Snapshot(), "render")

	// The folded value is clamped to 2.5*4 = 10ms:
	// ema = 4 + alpha*(10-4) = 4.012, not 4 + alpha*(100-4).
	assert.InDelta(t, 4.012, zone.EMA, 1e-9)
}

func TestSnapshot_EMARoundedToThreeDecimals(t *testing.T) {
	p, _ := newTestProfiler(Config{RingSize: 8, MaxZonesPerFrame: 4})
	id := p.RegisterName("render")

	p.BeginFrame()
	p.record(id, 0, 1234)
	p.BeginFrame()
	p.record(id, 0, 1235)
	p.BeginFrame()

	zone := findZone(t, p.Snapshot(), "render")
	assert.Equal(t, zone.EMA, float64(int(zone.EMA*1000+0.5))/1000)
}

func TestSnapshot_HistoryCappedToWindow(t *testing.T) {
	p, _ := newTestProfiler(Config{RingSize: 16, MaxZonesPerFrame: 4, HistoryWindow: 5})
	id := p.RegisterName("A")

	for i := 1; i <= 12; i++ {
		p.BeginFrame()
		p.record(id, 0, uint32(i*1000))
	}
	p.BeginFrame()

	a := findZone(t, p.Snapshot(), "A")
	assert.Equal(t, []float64{8, 9, 10, 11, 12}, a.History, "window keeps the newest samples")
}

func TestSnapshot_OverflowDoesNotCorruptOtherZones(t *testing.T) {
	p, _ := newTestProfiler(Config{RingSize: 4, MaxZonesPerFrame: 2})
	a := p.RegisterName("A")
	b := p.RegisterName("B")

	p.BeginFrame()
	p.record(a, 0, 1000)
	p.record(b, 0, 2000)
	for i := 0; i < 50; i++ {
		p.record(b, 0, 9000) // dropped: frame is full
	}
	p.BeginFrame()

	snap := p.Snapshot()
	assert.Equal(t, []float64{1.0}, findZone(t, snap, "A").History)
	assert.Equal(t, []float64{2.0}, findZone(t, snap, "B").History)
}

func TestSnapshot_ConcurrentReportingCallers(t *testing.T) {
	p, _ := newTestProfiler(Config{RingSize: 32, MaxZonesPerFrame: 16})
	id := p.RegisterName("update")

	for i := 0; i < 500; i++ {
		p.BeginFrame()
		p.record(id, 0, 1000)
	}

	// Concurrent reporting goroutines; the EMA mutex serializes them.
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = p.Snapshot()
			}
		}()
	}

	wg.Wait()

	zone := findZone(t, p.Snapshot(), "update")
	assert.NotEmpty(t, zone.History)
}
