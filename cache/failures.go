package cache

import "sync"

// Failures records resource ids that failed to load. Entries are
// permanent for the session: once an id is recorded it is never
// fetched again until an explicit Clear. This bounds worst-case
// network load when a provider serves broken icon URLs.
type Failures[K comparable] struct {
	mu  sync.Mutex
	ids map[K]struct{}
}

// NewFailures returns an empty failure memo.
func NewFailures[K comparable]() *Failures[K] {
	return &Failures[K]{ids: make(map[K]struct{})}
}

// Add records key as failed.
func (f *Failures[K]) Add(key K) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids[key] = struct{}{}
}

// Has reports whether key has failed before.
func (f *Failures[K]) Has(key K) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[key]
	return ok
}

// Clear forgets every recorded failure.
func (f *Failures[K]) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = make(map[K]struct{})
}

// Len reports the number of recorded failures.
func (f *Failures[K]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ids)
}
