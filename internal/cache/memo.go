// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package cache provides the in-process data structures behind poster
// memoization and title lookup.
package cache

import (
	"sync"

	"github.com/tomtom215/marquee/internal/metrics"
)

// Memo is a thread-safe, grow-only map from key to a computed value.
//
// Entries are never expired or evicted: once a key is stored, every later
// Get returns the same value for the life of the process. A stored zero
// value is a real entry, distinct from an absent key.
type Memo[K comparable, V any] struct {
	name    string
	mu      sync.RWMutex
	entries map[K]V

	statsMu sync.Mutex
	stats   Stats
}

// Stats is a snapshot of cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	TotalKeys int64
}

// NewMemo creates an empty memo. name labels the cache_* Prometheus series.
//
//	posters := cache.NewMemo[int64, poster.Result]("poster")
//	if r, ok := posters.Get(id); ok {
//	    return r
//	}
func NewMemo[K comparable, V any](name string) *Memo[K, V] {
	return &Memo[K, V]{
		name:    name,
		entries: make(map[K]V),
	}
}

// Get returns the stored value and whether the key was present.
func (m *Memo[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	v, ok := m.entries[key]
	m.mu.RUnlock()

	m.record(ok)
	return v, ok
}

// Peek is Get without touching hit/miss statistics.
func (m *Memo[K, V]) Peek(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (m *Memo[K, V]) Set(key K, value V) {
	m.mu.Lock()
	m.entries[key] = value
	n := int64(len(m.entries))
	m.mu.Unlock()

	m.statsMu.Lock()
	m.stats.TotalKeys = n
	m.statsMu.Unlock()
	metrics.CacheEntries.WithLabelValues(m.name).Set(float64(n))
}

// SetIfAbsent stores value only when key has no entry and returns the
// value now held for key.
func (m *Memo[K, V]) SetIfAbsent(key K, value V) V {
	m.mu.Lock()
	if existing, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return existing
	}
	m.entries[key] = value
	n := int64(len(m.entries))
	m.mu.Unlock()

	m.statsMu.Lock()
	m.stats.TotalKeys = n
	m.statsMu.Unlock()
	metrics.CacheEntries.WithLabelValues(m.name).Set(float64(n))
	return value
}

// Len returns the number of stored entries.
func (m *Memo[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// GetStats returns a snapshot of the counters.
func (m *Memo[K, V]) GetStats() Stats {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return m.stats
}

// HitRate returns hits as a percentage of lookups, or 0 with no lookups.
func (m *Memo[K, V]) HitRate() float64 {
	s := m.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

func (m *Memo[K, V]) record(hit bool) {
	m.statsMu.Lock()
	if hit {
		m.stats.Hits++
	} else {
		m.stats.Misses++
	}
	m.statsMu.Unlock()
	metrics.RecordCacheLookup(m.name, hit)
}
