// Package instant implements the label-keyed store of monotonic start-times
// behind the create_instant / elapsed_since tools. Entries live for the whole
// process: there is no eviction, and an identifier stays resolvable until
// shutdown.
package instant

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/matiasleandrokruk/kairos/pkg/uuid"
)

// ErrInstantNotFound is returned by Elapsed for an unknown identifier.
var ErrInstantNotFound = errors.New("instant not found")

// entry is one recorded point in time. Immutable after creation.
type entry struct {
	label     string
	startedAt time.Time
}

// Registry is a concurrency-safe mapping from opaque identifiers to recorded
// instants. Create takes the write lock, Elapsed only the read lock; no
// operation spans more than one map access.
//
// The zero value is not usable; construct with New or NewWithClock.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New returns a Registry measuring against the real clock.
// time.Time values from time.Now carry a monotonic reading, so elapsed
// durations are immune to wall-clock adjustments.
func New() *Registry {
	return NewWithClock(time.Now)
}

// NewWithClock returns a Registry using now as its clock source.
// Tests inject a fake clock here to make elapsed durations deterministic.
func NewWithClock(now func() time.Time) *Registry {
	return &Registry{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Create records the current moment under a freshly generated identifier and
// returns that identifier. The label is free-form and not validated; empty is
// fine. Identifiers are never reused, so an insert can never overwrite an
// existing entry.
func (r *Registry) Create(label string) string {
	id := uuid.NewV4().String()
	startedAt := r.now()

	r.mu.Lock()
	r.entries[id] = entry{label: label, startedAt: startedAt}
	r.mu.Unlock()

	return id
}

// Elapsed returns the label recorded under id and the duration between the
// recorded moment and now. Reads never mutate the registry: the same
// identifier resolves for the lifetime of the process.
// Returns ErrInstantNotFound (wrapped with the offending id) when id is
// unknown.
func (r *Registry) Elapsed(id string) (string, time.Duration, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return "", 0, fmt.Errorf("%w: no instant recorded for instance id %q", ErrInstantNotFound, id)
	}
	return e.label, r.now().Sub(e.startedAt), nil
}

// Len returns the number of recorded instants.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// FormatMMSS formats d as zero-padded minutes and seconds, e.g. "05:09" for
// 309 seconds. The minutes field is not capped at 59: 3661 seconds formats as
// "61:01". Negative durations (possible only through scheduling jitter with a
// fake clock) clamp to "00:00".
func FormatMMSS(d time.Duration) string {
	totalSecs := int64(d / time.Second)
	if totalSecs < 0 {
		totalSecs = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSecs/60, totalSecs%60)
}
