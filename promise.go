package async

import "github.com/Tangerg/lynx/async/scheduler"

// Promise is the write-side handle to a result cell: same identity as its
// Future, additionally exposing the writer operations (spec §3). A Promise
// embeds Future so every read operation is available directly on it.
type Promise[T any] struct {
	Future[T]
}

// NewPromise creates a fresh, incomplete Promise. sched is optional; if
// omitted, the process-wide scheduler.Global() is used (spec §4.8, §6).
func NewPromise[T any](sched ...scheduler.Scheduler) Promise[T] {
	return Promise[T]{Future: newFuture(newCell[T](firstScheduler(sched)))}
}

// NewInterruptiblePromise is NewPromise plus a hook invoked only when
// Cancel(mayInterrupt=true) succeeds in transitioning the cell (spec §4.5:
// "task-backed futures may opt into interruption").
func NewInterruptiblePromise[T any](interrupt func(mayInterrupt bool), sched ...scheduler.Scheduler) Promise[T] {
	c := newCell[T](firstScheduler(sched))
	c.interruptTask = interrupt
	return Promise[T]{Future: newFuture(c)}
}

// Succeeded returns an already-successful Future, the
// equivalent of the host's Future.successful / CompletableFuture.completedFuture.
func Succeeded[T any](v T, sched ...scheduler.Scheduler) Future[T] {
	p := NewPromise[T](sched...)
	p.TrySuccess(v)
	return p.Future
}

// Failed returns an already-failed Future.
func Failed[T any](err error, sched ...scheduler.Scheduler) Future[T] {
	p := NewPromise[T](sched...)
	p.TryFailure(err)
	return p.Future
}

// TrySuccess attempts the INCOMPLETE/UNCANCELLABLE -> SUCCESS(v)
// transition. Returns false if the cell was already terminal.
func (p Promise[T]) TrySuccess(v T) bool { return p.cell.trySuccess(v) }

// TryFailure attempts the INCOMPLETE/UNCANCELLABLE -> FAILURE(err)
// transition. Returns false if the cell was already terminal.
func (p Promise[T]) TryFailure(err error) bool { return p.cell.tryFailure(err) }

// SetSuccess is TrySuccess but panics if the cell was already terminal
// (spec §4.1: "`set*` throws if already terminal").
func (p Promise[T]) SetSuccess(v T) {
	if !p.TrySuccess(v) {
		panic("async: promise already completed")
	}
}

// SetFailure is TryFailure but panics if the cell was already terminal.
func (p Promise[T]) SetFailure(err error) {
	if !p.TryFailure(err) {
		panic("async: promise already completed")
	}
}

// SetUncancellable latches the cell so Cancel subsequently fails, per the
// truth table in spec §4.1: true on a genuine transition, true if already
// uncancellable or already terminal-and-not-cancelled, false only if
// already cancelled.
func (p Promise[T]) SetUncancellable() bool { return p.cell.setUncancellable() }

// NotifyProgress runs every attached progressive listener with percent and
// extra, ahead of eventual completion (spec §3, §5). It has no effect once
// the cell is terminal.
func (p Promise[T]) NotifyProgress(percent float64, extra any) {
	if p.cell.isDone() {
		return
	}
	p.cell.notifyProgress(percent, extra)
}
