package async

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFixedPoolRunsAllWork(t *testing.T) {
	p := &FixedPool{Workers: 3}
	var ran int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		p.Schedule(func() {
			defer wg.Done()
			atomic.AddInt32(&ran, 1)
		})
	}
	wg.Wait()
	if got := atomic.LoadInt32(&ran); got != 20 {
		t.Errorf("expected 20 units of work to run, got %d", got)
	}
	if err := p.Close(time.Second); err != nil {
		t.Errorf("expected an idle pool to close cleanly, got %v", err)
	}
}

func TestFixedPoolBoundsConcurrency(t *testing.T) {
	p := &FixedPool{Workers: 2}
	var active, peak int32
	release := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go p.Schedule(func() {
			defer wg.Done()
			n := atomic.AddInt32(&active, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			<-release
			atomic.AddInt32(&active, -1)
		})
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	if got := atomic.LoadInt32(&peak); got > 2 {
		t.Errorf("expected at most 2 concurrent workers, observed %d", got)
	}
	if err := p.Close(time.Second); err != nil {
		t.Errorf("expected a drained pool to close cleanly, got %v", err)
	}
}

func TestFixedPoolCloseTimesOut(t *testing.T) {
	p := &FixedPool{Workers: 1}
	release := make(chan struct{})
	p.Schedule(func() { <-release })
	if err := p.Close(10 * time.Millisecond); err == nil {
		t.Error("expected close to report a worker still busy")
	}
	close(release)
}

func TestFixedPoolCloseWithoutUse(t *testing.T) {
	p := &FixedPool{Workers: 2}
	if err := p.Close(time.Second); err != nil {
		t.Errorf("expected an unused pool to close cleanly, got %v", err)
	}
}
