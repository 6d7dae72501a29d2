package scheduler

import (
	"time"

	concpool "github.com/sourcegraph/conc/pool"
	"github.com/alitto/pond/v2"
	"github.com/gammazero/workerpool"
	"github.com/panjf2000/ants/v2"

	"github.com/Tangerg/lynx/async/future"
)

// PoolScheduler adapts any "submit a func()" goroutine-pool backend into a
// Scheduler. Delayed tasks are timed with time.AfterFunc and only handed to
// the pool once the delay elapses, so a pool worker is never tied up idly
// waiting out a timeout.
type PoolScheduler struct {
	submit func(func())
}

func (p *PoolScheduler) Execute(task func()) {
	p.submit(task)
}

func (p *PoolScheduler) Schedule(task func(), delay time.Duration) (cancel func()) {
	timer := time.AfterFunc(delay, func() { p.submit(task) })
	return func() { timer.Stop() }
}

// FromFuturePool adapts the future package's own Pool interface (the same
// one future.NewFutureAndRunWithPool accepts) into a Scheduler.
func FromFuturePool(p future.Pool) Scheduler {
	if p == nil {
		panic("future pool is nil")
	}
	return &PoolScheduler{submit: p.Go}
}

// FromAntsPool adapts a panjf2000/ants worker pool. A rejected Submit is
// surfaced as ErrRejected so callers fall back per the Scheduler contract
// instead of silently losing the task.
func FromAntsPool(p *ants.Pool) Scheduler {
	if p == nil {
		panic("ants pool is nil")
	}
	return &PoolScheduler{submit: func(f func()) {
		if err := p.Submit(f); err != nil {
			panic(ErrRejected)
		}
	}}
}

// FromWorkerpool adapts a gammazero/workerpool pool.
func FromWorkerpool(p *workerpool.WorkerPool) Scheduler {
	if p == nil {
		panic("worker pool is nil")
	}
	return &PoolScheduler{submit: p.Submit}
}

// FromConcPool adapts a sourcegraph/conc pool.
func FromConcPool(p *concpool.Pool) Scheduler {
	if p == nil {
		panic("conc pool is nil")
	}
	return &PoolScheduler{submit: p.Go}
}

// FromPondPool adapts an alitto/pond/v2 pool.
func FromPondPool(p pond.Pool) Scheduler {
	if p == nil {
		panic("pond pool is nil")
	}
	return &PoolScheduler{submit: func(f func()) { p.Submit(f) }}
}
