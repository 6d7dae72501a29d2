package async

import "github.com/Tangerg/lynx/async/scheduler"

// HostFuture is the shape this package's adapter layer bridges to and from:
// the teacher's own future.Future[V] satisfies it already, since that
// package doesn't import this one (spec §4.7: "adapter to and from the
// host's standard completable-future and blocking-future types" — here,
// that pre-existing future implementation is the host type).
type HostFuture[T any] interface {
	Cancel(mayInterruptIfRunning bool) bool
	IsCancelled() bool
	IsDone() bool
	Get() (T, error)
}

// ForAdaption returns a Future mirroring host's eventual outcome. host is
// waited on by a single task, run through the promise's scheduler, that
// blocks in Get() (with scheduler.Direct that task blocks the caller of
// ForAdaption until host completes); the inner cause host
// reports is unwrapped one level so the returned Future's GetCause() yields
// the same user exception host itself would surface (spec §4.7).
func ForAdaption[T any](host HostFuture[T], sched scheduler.Scheduler) Future[T] {
	p := NewInterruptiblePromise[T](func(mayInterrupt bool) {
		host.Cancel(mayInterrupt)
	}, sched)

	p.Scheduler().Execute(func() {
		v, err := host.Get()
		if err != nil {
			if host.IsCancelled() {
				p.TryFailure(newCancellation())
				return
			}
			p.TryFailure(unwrapHostError(err))
			return
		}
		p.TrySuccess(v)
	})

	return p.Future
}

// unwrapHostError peels one ExecutionFailure layer so adapting a future
// that already wraps its own cause doesn't pile up a second wrapper.
func unwrapHostError(err error) error {
	if ef, ok := err.(*ExecutionFailure); ok {
		return ef.Cause
	}
	return err
}

// hostCompletable adapts a Future[T] into the HostFuture[T] shape, without
// forwarding Cancel to the source (spec §4.7: "cancellation of the
// completable does NOT cancel the source").
type hostCompletable[T any] struct {
	source Future[T]
	mirror Promise[T]
}

// Completable returns a HostFuture mirroring f's outcome. Cancelling the
// returned value completes it with a CancellationCause but never reaches
// back to f (spec §4.7).
func (f Future[T]) Completable() HostFuture[T] {
	mirror := NewPromise[T](f.Scheduler())
	f.OnCompleted(func(done Future[T]) {
		if done.IsSuccess() {
			mirror.TrySuccess(done.GetNow())
		} else {
			mirror.TryFailure(done.GetCause())
		}
	})
	return &hostCompletable[T]{source: f, mirror: mirror}
}

func (h *hostCompletable[T]) Cancel(bool) bool {
	return h.mirror.Cancel(false)
}

func (h *hostCompletable[T]) IsCancelled() bool { return h.mirror.IsCancelled() }
func (h *hostCompletable[T]) IsDone() bool      { return h.mirror.IsDone() }
func (h *hostCompletable[T]) Get() (T, error)   { return h.mirror.Get(0) }
