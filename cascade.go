package async

// CascadeTo mirrors source's terminal state into target once source
// completes; cancellation cascades in both directions (spec §4.3, §4.5).
func CascadeTo[T any](source Future[T], target Promise[T]) {
	target.cell.setOnCancelUpward(func() { source.Cancel(false) })
	source.OnCompleted(func(done Future[T]) {
		if done.IsSuccess() {
			target.TrySuccess(done.GetNow())
		} else {
			target.TryFailure(done.GetCause())
		}
	})
}
