package async

// FlatMap invokes fn on source's success value; the resulting inner future's
// eventual outcome becomes the derived outcome. Cancelling derived cancels
// whichever of source/inner is currently outstanding (spec §4.3).
func FlatMap[T, U any](source Future[T], fn func(T) Future[U]) Future[U] {
	derived := derive[T, U](source)

	source.OnCompleted(func(done Future[T]) {
		if !done.IsSuccess() {
			derived.TryFailure(done.GetCause())
			return
		}

		inner, err := safeCallFuture(fn, done.GetNow())
		if err != nil {
			derived.TryFailure(err)
			return
		}

		// Once the inner future exists, cancelling derived should cancel the
		// inner future rather than the (already-succeeded) source.
		derived.cell.setOnCancelUpward(func() { inner.Cancel(false) })

		inner.OnCompleted(func(innerDone Future[U]) {
			if innerDone.IsSuccess() {
				derived.TrySuccess(innerDone.GetNow())
			} else {
				derived.TryFailure(innerDone.GetCause())
			}
		})
	})

	return derived.Future
}

func safeCallFuture[T, U any](fn func(T) Future[U], v T) (f Future[U], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	return fn(v), nil
}
