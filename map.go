package async

import "github.com/Tangerg/lynx/async/scheduler"

// derive builds the Promise[U] backing a 1:1 combinator over source: same
// scheduler by default, and bidirectional cancellation wiring (spec §4.3:
// "the derived future's scheduler is, by default, the source's scheduler.
// Cancellation of the derived future propagates to the source (and
// vice-versa for 1:1 combinators)").
//
// Cancelling source naturally cancels derived too: the OnCompleted listener
// below observes IsCancelled and forwards source's CancellationCause
// verbatim via TryFailure, which is itself recognized as a cancellation by
// IsCancellation.
func derive[T, U any](source Future[T], sched ...scheduler.Scheduler) Promise[U] {
	chosen := firstScheduler(sched)
	if chosen == nil {
		chosen = source.Scheduler()
	}
	derived := NewPromise[U](chosen)
	derived.cell.setOnCancelUpward(func() { source.Cancel(false) })
	return derived
}

// Map runs fn on source's success value, on source's scheduler; the derived
// future succeeds with fn's return or fails with fn's returned error.
// Failure/cancellation of source propagates verbatim (spec §4.3).
func Map[T, U any](source Future[T], fn func(T) (U, error)) Future[U] {
	derived := derive[T, U](source)
	source.OnCompleted(func(done Future[T]) {
		switch {
		case done.IsSuccess():
			v, err := safeCall1(fn, done.GetNow())
			if err != nil {
				derived.TryFailure(err)
				return
			}
			derived.TrySuccess(v)
		default:
			derived.TryFailure(done.GetCause())
		}
	})
	return derived.Future
}

// MapNull runs consumer (if non-nil) on source's success, discarding its
// return; the derived future always succeeds with U's zero value on source
// success, regardless of what consumer does, unless consumer panics/errors
// (spec §4.3: "derived future completes with null (success) regardless").
func MapNull[T, U any](source Future[T], consumer func(T) error) Future[U] {
	derived := derive[T, U](source)
	source.OnCompleted(func(done Future[T]) {
		switch {
		case done.IsSuccess():
			if consumer != nil {
				if err := safeCall0(func() error { return consumer(done.GetNow()) }); err != nil {
					derived.TryFailure(err)
					return
				}
			}
			var zero U
			derived.TrySuccess(zero)
		default:
			derived.TryFailure(done.GetCause())
		}
	})
	return derived.Future
}

// safeCall1 invokes fn, translating a panic into an error so combinators
// never let a user mapping function's panic escape into dispatch.go's
// listener (it already recovers, but a combinator's own failure belongs to
// the derived future, not a generic "listener panicked" WARN log).
func safeCall1[T, U any](fn func(T) (U, error), v T) (u U, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	return fn(v)
}

func safeCall0(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	return fn()
}

func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &ExecutionFailure{Cause: errorFromAny(r)}
}
