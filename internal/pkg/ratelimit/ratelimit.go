// Package ratelimit implements a fixed-window request counter keyed by client.
// Window state lives behind the Store interface so a deployment can swap the
// process-local map for a shared redis store without touching the gate.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store tracks request counts per client key within fixed windows.
type Store interface {
	// Hit records one request for key at time now and reports whether it is
	// allowed under the given limit. The read-check-increment sequence is
	// atomic per key.
	Hit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Limiter enforces a fixed-window limit over a Store.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

// New creates a Limiter. Limit and window are fixed per process configuration.
func New(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// Allow reports whether a request from key may proceed.
// Store errors fail open: a broken limiter backend must not take the read API down.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if key == "" {
		return true
	}
	allowed, err := l.store.Hit(ctx, key, l.limit, l.window)
	if err != nil {
		return true
	}
	return allowed
}

// Limit returns the configured per-window request limit.
func (l *Limiter) Limit() int { return l.limit }

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration { return l.window }

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryStore is a process-local Store. Entries are replaced in place when
// their window has expired and are never proactively evicted, so memory is
// bounded by the number of distinct keys seen. State resets on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Hit(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		s.entries[key] = &entry{count: 1, resetAt: now.Add(window)}
		return true, nil
	}
	if e.count >= limit {
		return false, nil
	}
	e.count++
	return true, nil
}
