package async

import (
	"time"

	"github.com/Tangerg/lynx/async/pkg/result"
	"github.com/Tangerg/lynx/async/scheduler"
)

// Future is the read-only view of a result cell (spec §3, §6). It carries
// an immutable reference to the scheduler listeners dispatch on and a
// pointer to the shared cell; copying a Future copies the view, never the
// cell.
type Future[T any] struct {
	cell *cell[T]
}

// newFuture wraps an existing cell. Internal: external callers only ever
// obtain a Future via NewPromise(...).Future or a combinator.
func newFuture[T any](c *cell[T]) Future[T] {
	return Future[T]{cell: c}
}

// IsDone reports whether the cell has reached a terminal state.
func (f Future[T]) IsDone() bool { return f.cell.isDone() }

// IsSuccess reports whether the cell's terminal state is SUCCESS.
func (f Future[T]) IsSuccess() bool { return f.cell.isSuccess() }

// IsFailed reports whether the cell's terminal state is FAILURE, including
// cancellation.
func (f Future[T]) IsFailed() bool { return f.cell.isFailed() }

// IsCancelled reports whether the cell failed specifically via Cancel.
func (f Future[T]) IsCancelled() bool { return f.cell.isCancelled() }

// IsCancellable reports whether the cell is still INCOMPLETE (Cancel would
// have a chance to succeed; UNCANCELLABLE and terminal cells are not).
func (f Future[T]) IsCancellable() bool { return f.cell.isCancellable() }

// GetNow returns the success value, or T's zero value if there isn't one
// yet (or ever). It never blocks and never returns an error (spec §4.1).
func (f Future[T]) GetNow() T { return f.cell.getNow() }

// Obtain is GetNow but reports ErrResultRequired instead of silently
// handing back the zero value when the cell has no success to give.
func (f Future[T]) Obtain() (T, error) { return f.cell.obtain() }

// GetCause returns the raw failure cause, or nil if the cell didn't fail.
func (f Future[T]) GetCause() error { return f.cell.getCause() }

// Await blocks until the cell is terminal or deadline elapses (<=0 means
// forever), reporting whether it is terminal on return.
//
// Go has no per-goroutine interrupt signal the way a JVM thread does, so
// unlike the host this port is modelled on, Await and AwaitUninterruptibly
// behave identically here: there is nothing to swallow. Both names are kept
// for parity with the combinators and tests that call them by name.
func (f Future[T]) Await(deadline time.Duration) bool { return f.cell.await(deadline) }

// AwaitUninterruptibly is Await; see its doc for why the two are the same
// in this port.
func (f Future[T]) AwaitUninterruptibly(deadline time.Duration) bool { return f.cell.await(deadline) }

// Get awaits and extracts: success returns the value; a CancellationCause
// is re-raised directly; any other failure is wrapped in ExecutionFailure;
// a deadline that elapses first raises TimeoutFailure.
func (f Future[T]) Get(deadline time.Duration) (T, error) { return f.cell.get(deadline) }

// Sync awaits and extracts like Get, but re-raises the cause unwrapped,
// without the ExecutionFailure wrapper.
func (f Future[T]) Sync(deadline time.Duration) (T, error) { return f.cell.sync(deadline) }

// Result is Get wrapped in pkg/result.Result, for callers that prefer
// carrying a value/error pair around as a single value instead of a Go
// multi-return.
func (f Future[T]) Result(deadline time.Duration) result.Result[T] {
	v, err := f.Get(deadline)
	return result.New(v, err)
}

// OnCompleted attaches fn to run once the cell is terminal, regardless of
// outcome. An optional executor overrides the cell's own scheduler for this
// one listener.
func (f Future[T]) OnCompleted(fn ListenerFunc[T], executor ...scheduler.Scheduler) ListenerHandle[T] {
	return f.cell.addListener(fn, nil, firstScheduler(executor))
}

// OnSuccess attaches fn to run only on SUCCESS, receiving the value.
func (f Future[T]) OnSuccess(fn func(T), executor ...scheduler.Scheduler) ListenerHandle[T] {
	return f.OnCompleted(func(done Future[T]) {
		if done.IsSuccess() {
			fn(done.GetNow())
		}
	}, executor...)
}

// OnFailure attaches fn to run only on FAILURE (including cancellation),
// receiving the cause.
func (f Future[T]) OnFailure(fn func(error), executor ...scheduler.Scheduler) ListenerHandle[T] {
	return f.OnCompleted(func(done Future[T]) {
		if done.IsFailed() {
			fn(done.GetCause())
		}
	}, executor...)
}

// OnFailed is an alias for OnFailure, kept because spec §4.2 lists both
// "onFailure" and "onFailed" as distinct attach points on the same event.
func (f Future[T]) OnFailed(fn func(error), executor ...scheduler.Scheduler) ListenerHandle[T] {
	return f.OnFailure(fn, executor...)
}

// OnCancelled attaches fn to run only when the cell failed via Cancel.
func (f Future[T]) OnCancelled(fn func(), executor ...scheduler.Scheduler) ListenerHandle[T] {
	return f.OnCompleted(func(done Future[T]) {
		if done.IsCancelled() {
			fn()
		}
	}, executor...)
}

// OnFinally is an alias for OnCompleted, kept for parity with spec §4.2's
// listing of "onFinally" alongside "onCompleted".
func (f Future[T]) OnFinally(fn ListenerFunc[T], executor ...scheduler.Scheduler) ListenerHandle[T] {
	return f.OnCompleted(fn, executor...)
}

// OnProgress attaches a progressive listener, invoked for every
// notifyProgress call made before the cell completes (spec §3, §5).
func (f Future[T]) OnProgress(fn ProgressListenerFunc[T], executor ...scheduler.Scheduler) ListenerHandle[T] {
	return f.cell.addListener(nil, fn, firstScheduler(executor))
}

// RemoveListener detaches a previously attached listener. It is a no-op,
// returning false, once the listener has already fired.
func (f Future[T]) RemoveListener(h ListenerHandle[T]) bool {
	return f.cell.removeListener(h)
}

// Cancel attempts INCOMPLETE -> FAILURE(CancellationCause). It is exposed
// on Future itself, not just Promise, matching the host convention this
// port follows where a read-only future handle is still cancellable
// (spec §3: cancel is not listed among the operations Promise "additionally"
// exposes, only trySuccess/tryFailure/setUncancellable are). It fails
// (returns false) from UNCANCELLABLE or any terminal state. mayInterrupt
// gates whether a registered interruptTask hook runs.
func (f Future[T]) Cancel(mayInterrupt bool) bool { return f.cell.cancel(mayInterrupt) }

// Scheduler returns the scheduler this future dispatches listeners on.
func (f Future[T]) Scheduler() scheduler.Scheduler { return f.cell.sched }

func firstScheduler(s []scheduler.Scheduler) scheduler.Scheduler {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}
