// Package update relays UI-mutation closures from background
// goroutines to the single goroutine that owns UI state. Workers never
// touch widgets; they submit closures here and the UI goroutine drains
// them between frames.
package update

import (
	"log"
	"sync"
	"time"
)

// Mode selects how the relay hands closures to the consumer.
type Mode uint8

const (
	// Immediate relays every closure as its own unit as soon as the
	// consumer is ready for it.
	Immediate Mode = iota
	// Batched coalesces up to BatchSize closures per interval tick and
	// relays them as one unit. This keeps the UI goroutine responsive
	// when hundreds of icon loads complete in a burst.
	Batched
)

// Defaults for Batched mode.
const (
	DefaultBatchSize     = 10
	DefaultBatchInterval = 50 * time.Millisecond
)

// Queue carries zero-argument closures from any goroutine to the one
// goroutine that may mutate UI state. Closures are handed over
// strictly in submission order, within a unit and across units.
//
// The consumer receives from Updates and runs each unit with Apply.
type Queue struct {
	mode     Mode
	size     int
	interval time.Duration

	mu      sync.Mutex
	pending []func()
	closed  bool

	wake chan struct{}
	out  chan []func()
	quit chan struct{}
	once sync.Once
}

// NewQueue starts a relay goroutine in the given mode. The size and
// interval apply to Batched mode; non-positive values fall back to the
// defaults.
func NewQueue(mode Mode, size int, interval time.Duration) *Queue {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if interval <= 0 {
		interval = DefaultBatchInterval
	}
	q := &Queue{
		mode:     mode,
		size:     size,
		interval: interval,
		wake:     make(chan struct{}, 1),
		out:      make(chan []func()),
		quit:     make(chan struct{}),
	}
	go q.relay()
	return q
}

// Submit enqueues fn for application on the consumer goroutine. Safe
// to call from any goroutine. Closures submitted after Close are
// dropped.
func (q *Queue) Submit(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Updates returns the channel the consumer receives closure units on.
// In Immediate mode every unit holds exactly one closure.
func (q *Queue) Updates() <-chan []func() {
	return q.out
}

// Apply runs every closure of a unit in order. Each closure runs under
// its own panic guard so one bad closure cannot halt the drain; panics
// are logged and the rest of the unit still runs. Returns the number
// of closures run.
func (q *Queue) Apply(batch []func()) int {
	for _, fn := range batch {
		runGuarded(fn)
	}
	return len(batch)
}

func runGuarded(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ui update panicked: %v", r)
		}
	}()
	fn()
}

// Close stops the relay. Closures not yet handed to the consumer are
// dropped; the interface they would have mutated is going away anyway.
func (q *Queue) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.pending = nil
		q.mu.Unlock()
		close(q.quit)
	})
}

func (q *Queue) relay() {
	if q.mode == Batched {
		q.relayBatched()
		return
	}
	q.relayImmediate()
}

func (q *Queue) relayImmediate() {
	for {
		fn, ok := q.pop()
		if !ok {
			select {
			case <-q.wake:
				continue
			case <-q.quit:
				return
			}
		}
		select {
		case q.out <- []func(){fn}:
		case <-q.quit:
			return
		}
	}
}

func (q *Queue) relayBatched() {
	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			batch := q.take(q.size)
			if len(batch) == 0 {
				continue
			}
			select {
			case q.out <- batch:
			case <-q.quit:
				return
			}
		case <-q.quit:
			return
		}
	}
}

// pop removes and returns the oldest pending closure.
func (q *Queue) pop() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil, false
	}
	fn := q.pending[0]
	q.pending = q.pending[1:]
	return fn, true
}

// take removes and returns up to max of the oldest pending closures.
func (q *Queue) take(max int) []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.pending)
	if n == 0 {
		return nil
	}
	if n > max {
		n = max
	}
	batch := make([]func(), n)
	copy(batch, q.pending[:n])
	q.pending = q.pending[n:]
	return batch
}
