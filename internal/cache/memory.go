package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Cache safe for concurrent use. Expiry is lazy:
// entries are only dropped when touched by a read, a write, or Cleanup;
// there is no background timer.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory constructs an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewMemoryWithClock constructs a cache with an injectable clock for tests.
func NewMemoryWithClock(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get returns the payload for key, treating an expired entry as a miss.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.payload, true, nil
}

// Set stores payload under key with the given TTL, overwriting any previous
// entry.
func (m *Memory) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{
		payload:   append([]byte(nil), payload...),
		createdAt: m.now(),
		ttl:       ttl,
	}
	return nil
}

// Cleanup removes all expired entries and reports how many were dropped.
func (m *Memory) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	dropped := 0
	for key, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, key)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of live plus not-yet-evicted entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

var _ Cache = (*Memory)(nil)
