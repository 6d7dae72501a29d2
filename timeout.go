package async

import (
	"time"

	"github.com/Tangerg/lynx/async/scheduler"
)

// OnTimeoutFunc receives the still-incomplete derived promise when a
// Timeout deadline elapses first; it may complete the promise explicitly
// instead of the default TimeoutFailure (spec §4.3, §4.5).
type OnTimeoutFunc[T any] func(Promise[T])

// Timeout starts a delayed task on sched (or source's own scheduler if
// sched is nil) that fails the derived future with a TimeoutFailure if
// source is still incomplete when duration elapses. If source completes
// first, the delayed task is cancelled. onTimeout, if given, overrides the
// default TimeoutFailure by completing the promise itself. The source is
// never cancelled by a timeout (spec §8: "source NOT cancelled unless an
// explicit handler does so").
func Timeout[T any](source Future[T], duration time.Duration, sched scheduler.Scheduler, onTimeout OnTimeoutFunc[T]) Future[T] {
	exec := sched
	if exec == nil {
		exec = source.Scheduler()
	}
	derived := derive[T, T](source, exec)

	cancelTimer := exec.Schedule(func() {
		if derived.cell.isDone() {
			return
		}
		if onTimeout != nil {
			onTimeout(derived)
			return
		}
		derived.TryFailure(&TimeoutFailure{Duration: duration})
	}, duration)

	source.OnCompleted(func(done Future[T]) {
		cancelTimer()
		if done.IsSuccess() {
			derived.TrySuccess(done.GetNow())
		} else {
			derived.TryFailure(done.GetCause())
		}
	})

	return derived.Future
}
