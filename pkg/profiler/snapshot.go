package profiler

import "math"

// EMA tuning. Alpha keeps the baseline slow to track sustained regressions
// on purpose: the baseline answers "is this frame anomalously slow relative
// to its own normal". The clamp keeps a single abnormal spike from dragging
// the baseline disproportionately.
const (
	emaAlpha          = 0.002
	emaSpikeClampMult = 2.5
	emaBootstrapEps   = 0.001
)

// ZoneStats is the aggregated view of one zone: its per-frame depth-0 time
// in milliseconds, oldest to newest, and the smoothed EMA baseline rounded
// to 3 decimal digits. Parent is always null in the current design: zones
// are flat in the output, only nesting-depth-filtered on input.
type ZoneStats struct {
	Name    string    `json:"name"`
	Parent  *string   `json:"parent"`
	History []float64 `json:"history"`
	EMA     float64   `json:"ema"`
}

// Snapshot is the serializable aggregation result.
type Snapshot struct {
	Zones []ZoneStats `json:"zones"`
}

// Snapshot walks the completed frames in the ring and reconstructs a
// per-zone time series with an updated EMA baseline. It never blocks the
// frame loop; the only locks taken are the brief NameTable copy and the
// aggregator's own EMA mutex, which serializes concurrent Snapshot callers.
//
// Only depth-0 records contribute to a zone's per-frame sum, so a parent
// zone's time is never double-counted together with zones nested inside
// it. This assumes depth-0 labels are mutually exclusive top-level
// categories; two depth-0 zones open concurrently on different goroutines
// are summed as if sequential, which can overstate total frame cost. That
// is a documented modeling assumption.
func (p *Profiler) Snapshot() Snapshot {
	head := p.head.Load()
	names := p.names.Labels()

	if len(names) == 0 {
		return Snapshot{Zones: []ZoneStats{}}
	}

	p.emaMu.Lock()
	defer p.emaMu.Unlock()

	if len(p.ema) < len(names) {
		p.ema = append(p.ema, make([]float64, len(names)-len(p.ema))...)
	}

	// The slot at head is being written and is excluded; only the
	// ringSize-1 most recent completed frames are visible.
	ringSize := uint32(len(p.ring))
	maxFrames := ringSize - 1

	histories := make([][]float64, len(names))
	frameSums := make([]float64, len(names))

	// Walk newest to oldest, stopping at the first uninitialized slot:
	// older slots hold no data until the ring wraps.
	for i := uint32(1); i <= maxFrames; i++ {
		f := &p.ring[(head+ringSize-i)%ringSize]
		if f.startMicros == 0 {
			break
		}

		for z := range frameSums {
			frameSums[z] = 0
		}
		for r := uint32(0); r < f.count; r++ {
			rec := f.records[r]
			if int(rec.NameID) < len(names) && rec.Depth == 0 {
				frameSums[rec.NameID] += float64(rec.DurationMicros) / 1000.0
			}
		}

		for z := range names {
			histories[z] = append(histories[z], frameSums[z])
		}
	}

	// Histories were built newest-first; callers want oldest to newest.
	for _, h := range histories {
		for l, r := 0, len(h)-1; l < r; l, r = l+1, r-1 {
			h[l], h[r] = h[r], h[l]
		}
	}

	for z := range names {
		for _, v := range histories[z] {
			clamped := math.Min(v, p.ema[z]*emaSpikeClampMult)
			if p.ema[z] < emaBootstrapEps {
				// Bootstrap straight to the first observed nonzero value
				// instead of ramping up from zero.
				p.ema[z] = v
			} else {
				p.ema[z] += emaAlpha * (clamped - p.ema[z])
			}
		}
	}

	zones := make([]ZoneStats, 0, len(names))
	for z, name := range names {
		// A zone with an empty visible history was never observed in the
		// window; present-but-all-zero histories are still reported.
		if len(histories[z]) == 0 {
			continue
		}

		zones = append(zones, ZoneStats{
			Name:    name,
			Parent:  nil,
			History: capHistory(histories[z], p.cfg.HistoryWindow),
			EMA:     math.Round(p.ema[z]*1000) / 1000,
		})
	}

	return Snapshot{Zones: zones}
}

// capHistory trims a history to its most recent window samples.
func capHistory(h []float64, window int) []float64 {
	if len(h) <= window {
		return h
	}
	return h[len(h)-window:]
}
