package services

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/folio-labs/folio-core/internal/core/domain"
)

// ChangeTracker is a bounded, newest-first change log.
// Entry IDs are ULIDs from a monotonic source, so they sort in insertion order.
type ChangeTracker struct {
	mu       sync.RWMutex
	entries  []*domain.ChangeLogEntry // oldest first
	capacity int
	entropy  *ulid.MonotonicEntropy
	now      func() time.Time
}

// NewChangeTracker creates a tracker keeping at most capacity entries
// (default: domain.DefaultChangeLogCapacity).
func NewChangeTracker(capacity int) *ChangeTracker {
	if capacity <= 0 {
		capacity = domain.DefaultChangeLogCapacity
	}
	return &ChangeTracker{
		capacity: capacity,
		entropy:  ulid.Monotonic(rand.Reader, 0),
		now:      time.Now,
	}
}

// Record appends an entry, dropping the oldest once the log is full.
// before is the document as it was just before the event.
func (t *ChangeTracker) Record(action domain.ChangeAction, details string, before domain.ContentDocument) *domain.ChangeLogEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	entry := &domain.ChangeLogEntry{
		ID:        ulid.MustNew(ulid.Timestamp(now), t.entropy).String(),
		Timestamp: now,
		Action:    action,
		Details:   details,
		Before:    before,
	}

	t.entries = append(t.entries, entry)
	if over := len(t.entries) - t.capacity; over > 0 {
		t.entries = append([]*domain.ChangeLogEntry(nil), t.entries[over:]...)
	}
	changeLogEntries.Set(float64(len(t.entries)))
	return entry
}

// Entries returns entries matching filter, newest first.
func (t *ChangeTracker) Entries(filter string) []*domain.ChangeLogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*domain.ChangeLogEntry, 0, len(t.entries))
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Matches(filter) {
			out = append(out, t.entries[i])
		}
	}
	return out
}

// Get finds an entry by ID
func (t *ChangeTracker) Get(id string) (*domain.ChangeLogEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, e := range t.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Len returns the number of entries held
func (t *ChangeTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
