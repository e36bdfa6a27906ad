package cache

import (
	"sync"
	"time"
)

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLMap is a process-local map whose entries expire after a fixed TTL. It
// fronts redis so hot fingerprints skip the network round trip.
type TTLMap[V any] struct {
	mu       sync.RWMutex
	data     map[string]ttlEntry[V]
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// NewTTLMap bounds the map to capacity entries; when full, expired entries
// are swept and, if none expired, the write is dropped.
func NewTTLMap[V any](ttl time.Duration, capacity int) *TTLMap[V] {
	return &TTLMap[V]{
		data:     make(map[string]ttlEntry[V]),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

func (m *TTLMap[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		if current, ok := m.data[key]; ok && m.now().After(current.expiresAt) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return zero, false
	}
	return entry.value, true
}

func (m *TTLMap[V]) Set(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists && m.capacity > 0 && len(m.data) >= m.capacity {
		m.sweepLocked()
		if len(m.data) >= m.capacity {
			return
		}
	}
	m.data[key] = ttlEntry[V]{
		value:     value,
		expiresAt: m.now().Add(m.ttl),
	}
}

func (m *TTLMap[V]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

func (m *TTLMap[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *TTLMap[V]) sweepLocked() {
	now := m.now()
	for key, entry := range m.data {
		if now.After(entry.expiresAt) {
			delete(m.data, key)
		}
	}
}
