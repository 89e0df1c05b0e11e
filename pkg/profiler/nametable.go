package profiler

import "sync"

// NameTable interns zone labels into small stable numeric identifiers
// shared across goroutines. Ids are assigned monotonically, never change
// and are never reused; the table only grows and lives for the process
// lifetime. There is no bound on growth: registering unbounded distinct
// labels grows memory unboundedly, which is a caller responsibility.
//
// Contention on the internal mutex is expected only during application
// warmup when new labels are first seen; call sites cache their resolved
// id after first use.
type NameTable struct {
	mu    sync.Mutex
	names []string
	index map[string]uint16
}

// NewNameTable creates an empty name table.
func NewNameTable() *NameTable {
	return &NameTable{
		names: make([]string, 0, 64),
		index: make(map[string]uint16, 64),
	}
}

// Intern returns the stable id for label, assigning a new one on first use.
// Thread-safe and idempotent: the same label always yields the same id.
func (t *NameTable) Intern(label string) uint16 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.index[label]; ok {
		return id
	}

	id := uint16(len(t.names))
	t.names = append(t.names, label)
	t.index[label] = id
	return id
}

// Len returns the number of interned labels.
func (t *NameTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.names)
}

// Labels returns a copy of all interned labels, indexed by id.
func (t *NameTable) Labels() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}
