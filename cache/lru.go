// Package cache provides the bounded in-memory stores backing icon
// loading: a least-recently-used cache of decoded resources and a memo
// of resource ids that are known to fail.
package cache

import (
	"container/list"
	"sync"
)

// DefaultCapacity is used by New when given a non-positive capacity.
const DefaultCapacity = 100

// Cache is a thread-safe key/value store bounded to a fixed number of
// entries. Inserting beyond the bound evicts the least recently used
// entry. All methods may be called from any goroutine; each takes the
// cache mutex for the duration of the call and no method hands out
// references into internal storage.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	entries  map[K]*list.Element
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New returns an empty cache holding at most capacity entries.
// Non-positive capacities fall back to DefaultCapacity.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[K, V]{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[K]*list.Element, capacity),
	}
}

// Get returns the value cached for key and marks it most recently
// used. The boolean reports whether key was present; a miss is not an
// error, it only means "not cached".
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry[K, V]).value, true
}

// Put inserts or overwrites the value for key, marking it most
// recently used. Inserting a new key at capacity evicts the least
// recently used entry first, so the bound holds after every call.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry[K, V]).key)
		}
	}
	c.entries[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[K]*list.Element, c.capacity)
}

// Len reports the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
