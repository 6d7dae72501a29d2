package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Tangerg/lynx/async/pkg/safe"
)

// goroutinePoolScheduler spawns one panic-recovering goroutine per task. It
// mirrors the teacher's "no pool given" default (future.PoolOfGoroutines /
// pkg/sync's bare go-routine path): no caps, no queuing, just safe.Go.
type goroutinePoolScheduler struct{}

func (goroutinePoolScheduler) Execute(task func()) {
	safe.Go(task)
}

func (goroutinePoolScheduler) Schedule(task func(), delay time.Duration) (cancel func()) {
	timer := time.AfterFunc(delay, func() { safe.Go(task) })
	return func() { timer.Stop() }
}

var (
	defaultOnce sync.Once
	defaultVal  atomic.Value // holds Scheduler
)

// SetDefault installs s as the process-wide default Scheduler. It only has
// an effect the first time it is called before Default/Global has resolved
// one; the default is decided once and cached for the life of the process
// (spec §4.8: "resolved once, lazily, and cached").
func SetDefault(s Scheduler) {
	defaultOnce.Do(func() {
		defaultVal.Store(&s)
	})
}

// Default returns the process-wide default Scheduler, resolving it lazily
// the first time it's needed. Absent a prior SetDefault call, it falls back
// to goroutinePoolScheduler, the teacher's own "one goroutine per task"
// default.
func Default() Scheduler {
	defaultOnce.Do(func() {
		var s Scheduler = goroutinePoolScheduler{}
		defaultVal.Store(&s)
	})
	return *defaultVal.Load().(*Scheduler)
}

// Global is Default under the name spec §3 and §4.8 use for it: the
// process-wide scheduler that handles listeners attached when no scheduler
// is otherwise known. The two names refer to the same resolved instance.
func Global() Scheduler {
	return Default()
}
