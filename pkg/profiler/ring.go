package profiler

// ZoneRecord is one completed measured scope within a frame. Immutable once
// written. DurationMicros is whole microseconds in a uint32, which wraps for
// zones lasting longer than ~71 minutes; that is a documented limit, not a
// checked condition.
type ZoneRecord struct {
	NameID         uint16
	Depth          uint16
	DurationMicros uint32
}

// frame holds all zones recorded between two consecutive BeginFrame calls.
//
// A slot moves through three states: uninitialized (startMicros == 0, the
// ring has not wrapped this far yet), active (the write head points at it)
// and completed (readable). Reuse after a wrap discards the prior contents;
// a slot never returns to uninitialized once written.
type frame struct {
	startMicros    uint64
	durationMicros uint64
	count          uint32
	records        []ZoneRecord // len == MaxZonesPerFrame, preallocated
}

// reset prepares a slot for a new frame. Prior records are left in place
// and masked by count; they are overwritten as the new frame records zones.
func (f *frame) reset(startMicros uint64) {
	f.startMicros = startMicros
	f.durationMicros = 0
	f.count = 0
}

// newRing preallocates all frame slots and their record arrays. Slots are
// never individually allocated or freed afterwards.
func newRing(ringSize, maxZonesPerFrame int) []frame {
	ring := make([]frame, ringSize)
	for i := range ring {
		ring[i].records = make([]ZoneRecord, maxZonesPerFrame)
	}
	return ring
}
