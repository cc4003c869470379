// Package cache implements the two-tier response cache: a fast in-process
// TTL map optionally backed by a shared redis tier.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	storedAt  time.Time
	expiresAt time.Time
}

// Stats tracks local tier effectiveness.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// Memory is the in-process tier. Entries expire lazily: an expired entry is
// dropped on the Get that observes it.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	stats   Stats
	now     func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the stored value, or false on a miss or an expired entry.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		m.count(func(s *Stats) { s.Misses++ })
		return nil, false
	}

	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; another Get may have replaced it.
		if cur, ok := m.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
			m.stats.Evictions++
		}
		m.stats.Misses++
		m.mu.Unlock()
		return nil, false
	}

	m.count(func(s *Stats) { s.Hits++ })
	return e.value, true
}

// Set stores value under key for ttl. A non-positive ttl is rejected
// silently; cache entries always carry a positive lifetime.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	now := m.now()
	m.mu.Lock()
	m.entries[key] = entry{
		value:     value,
		storedAt:  now,
		expiresAt: now.Add(ttl),
	}
	m.mu.Unlock()
}

// Clear drops every entry whose key starts with prefix, bypassing TTL.
// An empty prefix clears everything. Returns the number of dropped entries.
func (m *Memory) Clear(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for key := range m.entries {
		if prefix == "" || strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
			dropped++
		}
	}
	return dropped
}

// Delete removes a single entry.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Len returns the current entry count, expired entries included until a Get
// evicts them.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Stats returns a copy of the hit/miss counters.
func (m *Memory) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

func (m *Memory) count(f func(*Stats)) {
	m.mu.Lock()
	f(&m.stats)
	m.mu.Unlock()
}
