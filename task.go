package async

import (
	"github.com/Tangerg/lynx/async/pkg/assert"
	"github.com/Tangerg/lynx/async/scheduler"
)

// Task is the computation a FutureTask runs, grounded on the teacher's own
// future.Task[V] signature: it receives a channel closed to signal
// cancellation rather than a context, and is expected to observe it
// cooperatively (spec §4.6: "cancellation may interrupt the running thread
// if mayInterrupt was true").
type Task[T any] func(interrupt <-chan struct{}) (T, error)

// FutureTask wraps a Task so Execute arranges for it to run on a scheduler
// and settle a Promise with the outcome exactly once; further completion
// attempts by the task after cancellation are ignored via the Promise's
// ordinary try* semantics (spec §4.6).
type FutureTask[T any] struct {
	Promise[T]
	task      Task[T]
	interrupt chan struct{}
}

// NewFutureTask builds a FutureTask bound to sched (or scheduler.Global()
// if nil). The task does not start running until Execute is called.
func NewFutureTask[T any](task Task[T], sched scheduler.Scheduler) *FutureTask[T] {
	assert.Assert(task != nil, "async: task is nil")
	ft := &FutureTask[T]{
		task:      task,
		interrupt: make(chan struct{}),
	}
	ft.Promise = NewInterruptiblePromise[T](func(mayInterrupt bool) {
		if mayInterrupt {
			closeOnce(ft.interrupt)
		}
	}, sched)
	return ft
}

// Execute arranges for the task to run on the FutureTask's scheduler. If
// the task's promise was already cancelled before Execute runs, the task
// never starts.
func (ft *FutureTask[T]) Execute() {
	ft.Scheduler().Execute(func() {
		if ft.cell.isDone() {
			return
		}
		v, err := safeCallTask(ft.task, ft.interrupt)
		if err != nil {
			ft.TryFailure(err)
			return
		}
		ft.TrySuccess(v)
	})
}

func safeCallTask[T any](task Task[T], interrupt <-chan struct{}) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	return task(interrupt)
}

// closeOnce closes ch, tolerating being called more than once (Cancel's
// interruptTask hook can only fire once in practice since the underlying
// cell only transitions once, but this keeps FutureTask safe even if reused
// in a way that isn't).
func closeOnce(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}
