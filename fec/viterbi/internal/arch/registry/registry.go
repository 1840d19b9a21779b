// Package registry holds the trellis kernels available to the viterbi
// package and the state those kernels advance.
//
// Backend packages register an OpEntry from init(). The decoder picks the
// highest-priority entry the CPU supports, or a named one on request.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-fec/internal/cpu"
)

// UpdateFn advances t by nbits trellis steps, consuming 3*nbits symbols.
// Callers validate lengths and trace capacity beforehand.
type UpdateFn func(t *Trellis, symbols []byte, nbits int)

// OpEntry is one registered trellis kernel.
type OpEntry struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Update    UpdateFn
}

// OpRegistry stores available kernels.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool
}

// Global is the default kernel registry.
var Global = &OpRegistry{}

// Register adds a kernel.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority kernel supported by features.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.sortOnce()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel) {
			return entry
		}
	}

	return nil
}

// ByName returns the kernel registered under name, regardless of CPU support.
func (r *OpRegistry) ByName(name string) *OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].Name == name {
			entry := r.entries[i]
			return &entry
		}
	}

	return nil
}

func (r *OpRegistry) sortOnce() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sorted {
		return
	}

	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
	r.sorted = true
}

// ListEntries returns a copy of entries sorted by priority.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.sortOnce()

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]OpEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Reset clears all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
