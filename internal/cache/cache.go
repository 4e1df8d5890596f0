// Package cache provides the single-slot TTL cache guarding dashboard
// upstream fetches.
package cache

import (
	"sync"
	"time"
)

// Slot holds one value with an expiry. Reads and replacements are
// mutex-guarded; concurrent fillers after expiry each fetch upstream and the
// last write wins, which is acceptable for an idempotent re-fetch.
type Slot[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	value   T
	setAt   time.Time
	present bool
}

func NewSlot[T any](ttl time.Duration) *Slot[T] {
	return &Slot[T]{ttl: ttl, now: time.Now}
}

// Get returns the cached value if it is present and fresh.
func (s *Slot[T]) Get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.present || s.now().Sub(s.setAt) >= s.ttl {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Set replaces the slot wholesale and restarts the TTL.
func (s *Slot[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = v
	s.setAt = s.now()
	s.present = true
}

// Clear empties the slot.
func (s *Slot[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	s.value = zero
	s.present = false
}
