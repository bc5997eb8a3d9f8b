package async

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/VodenoFF/IPTV-Player/cache"
)

// Task identifies one pending resource fetch. The id is the resource
// identifier (an icon URL); a task is consumed exactly once by a
// worker.
type Task struct {
	ID string
}

// Outcome reports the result of one task. Err is nil exactly when
// Image holds a decoded value.
type Outcome struct {
	ID    string
	Image image.Image
	Err   error
}

// Defaults used by NewLoader when options are left zero.
const (
	DefaultWorkers = 4
	DefaultTimeout = 5 * time.Second
)

// Options configures a Loader.
type Options struct {
	// Cache receives successfully decoded images. Required.
	Cache *cache.Cache[string, image.Image]
	// Failed memoizes ids whose fetch failed, permanently for the
	// session. Required.
	Failed *cache.Failures[string]
	// Fetch performs the blocking fetch+decode. Defaults to
	// NewImageFetcher(nil, DefaultIconBox).
	Fetch FetchFunc
	// OnOutcome is called from worker goroutines with every fetch
	// outcome. It must not mutate UI state directly; hand any
	// mutation to the update queue.
	OnOutcome func(Outcome)
	// Workers fixes the pool size. Defaults to DefaultWorkers.
	Workers int
	// Timeout bounds one fetch. Defaults to DefaultTimeout. A timed
	// out fetch is a permanent failure like any other.
	Timeout time.Duration
}

// Loader coordinates asynchronous icon loading. Request puts a task on
// an unbounded pending queue; a dispatcher goroutine feeds the worker
// pool from it so callers never block, and the pool bounds how many
// fetches run at once.
type Loader struct {
	cache     *cache.Cache[string, image.Image]
	failed    *cache.Failures[string]
	fetch     FetchFunc
	onOutcome func(Outcome)
	timeout   time.Duration
	pool      *FixedPool

	mu       sync.Mutex
	refresh  sync.Cond
	pending  []Task
	inflight map[string]struct{}
	closed   bool

	done chan struct{}
}

// NewLoader starts a loader and its dispatcher. It panics if the cache
// or the failure memo is missing, as that is a construction-time
// programmer error rather than a runtime condition.
func NewLoader(opts Options) *Loader {
	if opts.Cache == nil {
		panic("async: NewLoader requires a cache")
	}
	if opts.Failed == nil {
		panic("async: NewLoader requires a failure memo")
	}
	if opts.Fetch == nil {
		opts.Fetch = NewImageFetcher(nil, DefaultIconBox)
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	l := &Loader{
		cache:     opts.Cache,
		failed:    opts.Failed,
		fetch:     opts.Fetch,
		onOutcome: opts.OnOutcome,
		timeout:   opts.Timeout,
		pool:      &FixedPool{Workers: opts.Workers},
		inflight:  make(map[string]struct{}),
		done:      make(chan struct{}),
	}
	l.refresh.L = &l.mu
	go l.run()
	return l
}

// Request schedules a fetch for id unless it is empty, already cached,
// memoized as failed, or already in flight. It reports whether a task
// was actually enqueued.
func (l *Loader) Request(id string) bool {
	if id == "" {
		return false
	}
	if l.failed.Has(id) {
		return false
	}
	if _, ok := l.cache.Get(id); ok {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	if _, ok := l.inflight[id]; ok {
		return false
	}
	l.inflight[id] = struct{}{}
	l.pending = append(l.pending, Task{ID: id})
	l.refresh.Signal()
	return true
}

// Pending reports how many tasks are queued but not yet handed to a
// worker.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Shutdown stops the dispatcher and the worker pool, waiting up to
// timeout in total. In-flight fetches are not interrupted beyond their
// own deadline; if the wait expires the stragglers are abandoned
// (fail-open) and the error reports it.
func (l *Loader) Shutdown(timeout time.Duration) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.pending = nil
	l.mu.Unlock()
	l.refresh.Signal()

	deadline := time.Now().Add(timeout)
	select {
	case <-l.done:
	case <-time.After(timeout):
		err := fmt.Errorf("icon loader: dispatcher still busy after %v, abandoning workers", timeout)
		log.Print(err)
		return err
	}
	if err := l.pool.Close(time.Until(deadline)); err != nil {
		err = fmt.Errorf("icon loader: %w", err)
		log.Print(err)
		return err
	}
	return nil
}

// run dispatches pending tasks to the worker pool until Shutdown. The
// handoff blocks while every worker is busy, so at most Workers
// fetches run concurrently while the pending queue absorbs bursts.
func (l *Loader) run() {
	defer close(l.done)
	l.mu.Lock()
	defer l.mu.Unlock()
	for {
		for len(l.pending) == 0 && !l.closed {
			l.refresh.Wait()
		}
		if l.closed {
			return
		}
		t := l.pending[0]
		l.pending = l.pending[1:]
		l.mu.Unlock()
		l.pool.Schedule(func() { l.process(t) })
		l.mu.Lock()
	}
}

// process runs one task on a worker goroutine. Any failure, including
// a panic out of a misbehaving decoder, converts to the memoized
// failure outcome; errors never cross the goroutine boundary.
func (l *Loader) process(t Task) {
	defer l.finish(t.ID)
	defer func() {
		if r := recover(); r != nil {
			l.failed.Add(t.ID)
			l.report(Outcome{ID: t.ID, Err: fmt.Errorf("icon fetch panicked: %v", r)})
		}
	}()
	if l.failed.Has(t.ID) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	img, err := l.fetch(ctx, t.ID)
	if err != nil {
		l.failed.Add(t.ID)
		l.report(Outcome{ID: t.ID, Err: err})
		return
	}
	l.cache.Put(t.ID, img)
	l.report(Outcome{ID: t.ID, Image: img})
}

func (l *Loader) finish(id string) {
	l.mu.Lock()
	delete(l.inflight, id)
	l.mu.Unlock()
}

func (l *Loader) report(o Outcome) {
	if l.onOutcome != nil {
		l.onOutcome(o)
	}
}
