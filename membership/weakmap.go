package membership

import (
	"runtime"
	"sync"
	"weak"
)

// weakMap associates values with keys by pointer identity without
// keeping the keys alive. An entry removes itself once its key becomes
// unreachable, so the map never pins a key and never grows past the set
// of live keys.
type weakMap[K any, V any] struct {
	mu      sync.Mutex
	entries map[weak.Pointer[K]]V
}

func newWeakMap[K any, V any]() *weakMap[K, V] {
	return &weakMap[K, V]{entries: make(map[weak.Pointer[K]]V)}
}

// Get returns the value stored under key's identity.
func (m *weakMap[K, V]) Get(key *K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[weak.Make(key)]
	return v, ok
}

// Set stores value under key's identity, replacing any prior value.
// The first Set for a key registers a cleanup that drops the entry when
// the key is collected.
func (m *weakMap[K, V]) Set(key *K, value V) {
	ptr := weak.Make(key)

	m.mu.Lock()
	defer m.mu.Unlock()

	_, existed := m.entries[ptr]
	m.entries[ptr] = value
	if existed {
		return
	}

	runtime.AddCleanup(key, func(p weak.Pointer[K]) {
		m.mu.Lock()
		delete(m.entries, p)
		m.mu.Unlock()
	}, ptr)
}

// GetOrInsert returns the value stored under key's identity, computing
// and inserting it when absent. The compute runs under the map lock, so
// at most one value is ever created per key identity; loaded reports
// whether an existing value was returned.
func (m *weakMap[K, V]) GetOrInsert(key *K, compute func() V) (value V, loaded bool) {
	ptr := weak.Make(key)

	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.entries[ptr]; ok {
		return v, true
	}

	v := compute()
	m.entries[ptr] = v
	runtime.AddCleanup(key, func(p weak.Pointer[K]) {
		m.mu.Lock()
		delete(m.entries, p)
		m.mu.Unlock()
	}, ptr)
	return v, false
}

// Len returns the number of live entries.
func (m *weakMap[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
