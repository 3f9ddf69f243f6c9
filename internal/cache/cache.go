// Package cache provides a small thread-safe LRU cache with TTL expiration.
// The retrieval responder uses it to memoise formatted answers for repeated
// queries; the corpus is immutable for the process lifetime, so entries only
// ever expire, never invalidate.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// Memory is a thread-safe in-memory LRU cache with TTL expiration.
type Memory[V any] struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*list.Element
	evictList *list.List
}

// NewMemory creates an LRU cache holding at most capacity entries, each
// expiring ttl after insertion.
func NewMemory[V any](capacity int, ttl time.Duration) *Memory[V] {
	return &Memory[V]{
		capacity:  capacity,
		ttl:       ttl,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
	}
}

// Get returns the cached value for key, or false if missing or expired.
func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	elem, ok := m.items[key]
	if !ok {
		return zero, false
	}
	ent := elem.Value.(*entry[V])
	if time.Now().After(ent.expiresAt) {
		m.removeElement(elem)
		return zero, false
	}
	m.evictList.MoveToFront(elem)
	return ent.value, true
}

// Set stores a value under key with the configured TTL, evicting the least
// recently used entry when the cache is full.
func (m *Memory[V]) Set(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = value
		ent.expiresAt = time.Now().Add(m.ttl)
		m.evictList.MoveToFront(elem)
		return
	}

	if m.evictList.Len() >= m.capacity {
		if oldest := m.evictList.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}
	elem := m.evictList.PushFront(&entry[V]{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(m.ttl),
	})
	m.items[key] = elem
}

// Delete removes key from the cache if present.
func (m *Memory[V]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if elem, ok := m.items[key]; ok {
		m.removeElement(elem)
	}
}

// Len returns the number of entries currently held, including expired
// entries not yet evicted.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evictList.Len()
}

// Clear drops every entry.
func (m *Memory[V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]*list.Element)
	m.evictList.Init()
}

func (m *Memory[V]) removeElement(elem *list.Element) {
	m.evictList.Remove(elem)
	delete(m.items, elem.Value.(*entry[V]).key)
}
