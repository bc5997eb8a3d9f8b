// Package profile selects a pkg/profile mode from a flag value.
package profile

import (
	"github.com/pkg/profile"
)

// Opt names a profiling mode.
type Opt string

const (
	None      Opt = "none"
	CPU       Opt = "cpu"
	Memory    Opt = "mem"
	Block     Opt = "block"
	Goroutine Opt = "goroutine"
	Mutex     Opt = "mutex"
	Trace     Opt = "trace"
)

// Profiler runs one profiling mode for the life of the process.
type Profiler struct {
	Type    Opt
	starter func(p *profile.Profile)
	stopper func()
}

// NewProfiler picks the profiling mode matching the option. Unknown
// options profile nothing.
func (p Opt) NewProfiler() Profiler {
	switch p {
	case CPU:
		return Profiler{Type: p, starter: profile.CPUProfile}
	case Memory:
		return Profiler{Type: p, starter: profile.MemProfile}
	case Block:
		return Profiler{Type: p, starter: profile.BlockProfile}
	case Goroutine:
		return Profiler{Type: p, starter: profile.GoroutineProfile}
	case Mutex:
		return Profiler{Type: p, starter: profile.MutexProfile}
	case Trace:
		return Profiler{Type: p, starter: profile.TraceProfile}
	}
	return Profiler{Type: None}
}

// Start begins profiling.
func (pfn *Profiler) Start() {
	if pfn.starter != nil {
		pfn.stopper = profile.Start(pfn.starter).Stop
	}
}

// Stop ends profiling and writes the profile out.
func (pfn *Profiler) Stop() {
	if pfn.stopper != nil {
		pfn.stopper()
	}
}
