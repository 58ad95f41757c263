// Package cache provides the read-side cache backing the service layer.
package cache

import (
	"sync"
	"time"
)

// Snapshot is a single-value cache with TTL. The service keeps the full
// transaction history in one, so repeated reads between writes skip the
// database. Writers invalidate it.
type Snapshot[T any] struct {
	mu        sync.Mutex
	ttl       time.Duration
	value     T
	valid     bool
	expiresAt time.Time
}

func NewSnapshot[T any](ttl time.Duration) *Snapshot[T] {
	return &Snapshot[T]{ttl: ttl}
}

// Get returns the cached value if it is still fresh.
func (s *Snapshot[T]) Get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if !s.valid {
		return zero, false
	}
	if time.Now().After(s.expiresAt) {
		s.valid = false
		s.value = zero
		return zero, false
	}
	return s.value, true
}

// Set stores a fresh value.
func (s *Snapshot[T]) Set(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.valid = true
	s.expiresAt = time.Now().Add(s.ttl)
}

// Invalidate drops the cached value.
func (s *Snapshot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.value = zero
	s.valid = false
}
