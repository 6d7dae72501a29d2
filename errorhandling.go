package async

import "errors"

// ErrorHandling recovers any failure of source into success by running
// handler(cause); success passes through unchanged; cancellation still
// propagates as cancellation, never as a "recovered" success (spec §4.3:
// "cancellation propagates as cancellation").
func ErrorHandling[T any](source Future[T], handler func(error) (T, error)) Future[T] {
	derived := derive[T, T](source)
	source.OnCompleted(func(done Future[T]) {
		switch {
		case done.IsSuccess():
			derived.TrySuccess(done.GetNow())
		case done.IsCancelled():
			derived.TryFailure(done.GetCause())
		default:
			v, err := safeCall1(handler, done.GetCause())
			if err != nil {
				derived.TryFailure(err)
				return
			}
			derived.TrySuccess(v)
		}
	})
	return derived.Future
}

// Catching recovers the failure only if the top-level cause itself is
// assignable to E; a cause that merely wraps an E somewhere deeper in its
// chain does not match (spec §4.3: "fires only if failure cause is
// assignable to cls" — a single, top-level check, not a chain walk; see
// CatchSpecificCause for that).
func Catching[T any, E error](source Future[T], handler func(E) (T, error)) Future[T] {
	derived := derive[T, T](source)
	source.OnCompleted(func(done Future[T]) {
		switch {
		case done.IsSuccess():
			derived.TrySuccess(done.GetNow())
		case done.IsCancelled():
			derived.TryFailure(done.GetCause())
		default:
			cause := done.GetCause()
			target, ok := cause.(E)
			if !ok {
				derived.TryFailure(cause)
				return
			}
			v, err := safeCall1(handler, target)
			if err != nil {
				derived.TryFailure(err)
				return
			}
			derived.TrySuccess(v)
		}
	})
	return derived.Future
}

// CatchSpecificCause walks the full cause chain (errors.As) looking for an
// instance of E, unlike Catching's single top-level check, and if found
// anywhere in the chain calls handler with that matching cause (spec
// §4.3).
func CatchSpecificCause[T any, E error](source Future[T], handler func(E) (T, error)) Future[T] {
	derived := derive[T, T](source)
	source.OnCompleted(func(done Future[T]) {
		switch {
		case done.IsSuccess():
			derived.TrySuccess(done.GetNow())
		case done.IsCancelled():
			derived.TryFailure(done.GetCause())
		default:
			var target E
			if !errors.As(done.GetCause(), &target) {
				derived.TryFailure(done.GetCause())
				return
			}
			v, err := safeCall1(handler, target)
			if err != nil {
				derived.TryFailure(err)
				return
			}
			derived.TrySuccess(v)
		}
	})
	return derived.Future
}

// CatchRootCause is CatchSpecificCause but always hands handler the
// deepest (root) cause in the chain rather than the first E match found
// while walking outward-in (spec §4.3).
func CatchRootCause[T any, E error](source Future[T], handler func(E) (T, error)) Future[T] {
	derived := derive[T, T](source)
	source.OnCompleted(func(done Future[T]) {
		switch {
		case done.IsSuccess():
			derived.TrySuccess(done.GetNow())
		case done.IsCancelled():
			derived.TryFailure(done.GetCause())
		default:
			root := rootCause(done.GetCause())
			var target E
			if !errors.As(root, &target) {
				derived.TryFailure(done.GetCause())
				return
			}
			v, err := safeCall1(handler, target)
			if err != nil {
				derived.TryFailure(err)
				return
			}
			derived.TrySuccess(v)
		}
	})
	return derived.Future
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// OnErrorResume subscribes to fn(cause) as the replacement outcome when
// source fails and pred (if non-nil) matches the cause (spec §4.3).
func OnErrorResume[T any](source Future[T], pred func(error) bool, fn func(error) Future[T]) Future[T] {
	derived := derive[T, T](source)
	source.OnCompleted(func(done Future[T]) {
		switch {
		case done.IsSuccess():
			derived.TrySuccess(done.GetNow())
		case done.IsCancelled():
			derived.TryFailure(done.GetCause())
		case pred != nil && !pred(done.GetCause()):
			derived.TryFailure(done.GetCause())
		default:
			inner, err := safeCallFuture(fn, done.GetCause())
			if err != nil {
				derived.TryFailure(err)
				return
			}
			derived.cell.setOnCancelUpward(func() { inner.Cancel(false) })
			inner.OnCompleted(func(innerDone Future[T]) {
				if innerDone.IsSuccess() {
					derived.TrySuccess(innerDone.GetNow())
				} else {
					derived.TryFailure(innerDone.GetCause())
				}
			})
		}
	})
	return derived.Future
}

// OnErrorMap wraps a matching failure's cause via mapper (spec §4.3).
func OnErrorMap[T any](source Future[T], pred func(error) bool, mapper func(error) error) Future[T] {
	derived := derive[T, T](source)
	source.OnCompleted(func(done Future[T]) {
		switch {
		case done.IsSuccess():
			derived.TrySuccess(done.GetNow())
		case done.IsCancelled():
			derived.TryFailure(done.GetCause())
		case pred != nil && !pred(done.GetCause()):
			derived.TryFailure(done.GetCause())
		default:
			newErr, err := safeCall1(func(c error) (error, error) { return mapper(c), nil }, done.GetCause())
			if err != nil {
				derived.TryFailure(err)
				return
			}
			derived.TryFailure(newErr)
		}
	})
	return derived.Future
}

// OnErrorComplete succeeds with T's zero value when a matching failure
// occurs (spec §4.3).
func OnErrorComplete[T any](source Future[T], pred func(error) bool) Future[T] {
	derived := derive[T, T](source)
	source.OnCompleted(func(done Future[T]) {
		switch {
		case done.IsSuccess():
			derived.TrySuccess(done.GetNow())
		case done.IsCancelled():
			derived.TryFailure(done.GetCause())
		case pred != nil && !pred(done.GetCause()):
			derived.TryFailure(done.GetCause())
		default:
			var zero T
			derived.TrySuccess(zero)
		}
	})
	return derived.Future
}

// OnErrorReturn succeeds with value when a matching failure occurs (spec
// §4.3).
func OnErrorReturn[T any](source Future[T], pred func(error) bool, value T) Future[T] {
	derived := derive[T, T](source)
	source.OnCompleted(func(done Future[T]) {
		switch {
		case done.IsSuccess():
			derived.TrySuccess(done.GetNow())
		case done.IsCancelled():
			derived.TryFailure(done.GetCause())
		case pred != nil && !pred(done.GetCause()):
			derived.TryFailure(done.GetCause())
		default:
			derived.TrySuccess(value)
		}
	})
	return derived.Future
}
