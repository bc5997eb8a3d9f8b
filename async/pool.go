// Package async loads channel icons in the background: a fixed worker
// pool pulls fetch tasks off a shared queue, fetches and decodes each
// image, records the result in the resource cache or the failure memo,
// and reports an outcome per task. Workers never touch UI state.
package async

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Scheduler schedules work according to some strategy. Implementations
// can pick the best way to distribute work for a given application.
type Scheduler interface {
	// Schedule a piece of work. This method is allowed to block.
	Schedule(func())
}

// FixedPool is a fixed-size worker pool: a configured number of
// long-lived goroutines range over a shared queue. Scheduling blocks
// while every worker is busy, which keeps the pool's memory bounded.
//
// Closing the queue is the stop signal: each worker exits once the
// queue drains.
type FixedPool struct {
	// Workers specifies the number of concurrent workers in this pool.
	// Defaults to runtime.NumCPU when non-positive.
	Workers int

	once  sync.Once
	queue chan func()
	wg    sync.WaitGroup
}

// Schedule work to be executed by the available workers. This is a
// blocking call if all workers are busy. Schedule must not be called
// after Close.
func (p *FixedPool) Schedule(work func()) {
	p.once.Do(p.start)
	p.queue <- work
}

func (p *FixedPool) start() {
	if p.Workers <= 0 {
		p.Workers = runtime.NumCPU()
	}
	p.queue = make(chan func())
	p.wg.Add(p.Workers)
	for ii := 0; ii < p.Workers; ii++ {
		go func() {
			defer p.wg.Done()
			for w := range p.queue {
				if w != nil {
					w()
				}
			}
		}()
	}
}

// Close stops the workers once already-queued work drains, waiting up
// to timeout for them to exit. In-flight work is not interrupted; if
// the deadline passes the stragglers are abandoned and an error is
// returned so the caller can log it and proceed with teardown.
func (p *FixedPool) Close(timeout time.Duration) error {
	p.once.Do(p.start)
	close(p.queue)
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("worker pool: workers still busy after %v", timeout)
	}
}
