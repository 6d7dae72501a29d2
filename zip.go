package async

import "sync/atomic"

// Pair is the result of Zip2: the two upstream success values, in argument
// order.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the result of Zip3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Zip2 succeeds with a Pair once both a and b succeed; fails with whichever
// failure is observed first; if either upstream cancels, the derived future
// fails with that cancellation and the other upstream is cancelled too
// (spec §4.3, §4.5's "for 2-to-1 combinators (zip)... cancelling ONE
// upstream cancels the other and the result").
func Zip2[A, B any](a Future[A], b Future[B]) Future[Pair[A, B]] {
	derived := NewPromise[Pair[A, B]](a.Scheduler())
	derived.cell.setOnCancelUpward(func() { a.Cancel(false); b.Cancel(false) })

	var pending atomic.Int32
	pending.Store(2)

	onUpstreamDone := func() {
		if pending.Add(-1) == 0 {
			derived.TrySuccess(Pair[A, B]{First: a.GetNow(), Second: b.GetNow()})
		}
	}

	a.OnCompleted(func(done Future[A]) {
		if done.IsSuccess() {
			onUpstreamDone()
			return
		}
		derived.TryFailure(done.GetCause())
		if done.IsCancelled() {
			b.Cancel(false)
		}
	})
	b.OnCompleted(func(done Future[B]) {
		if done.IsSuccess() {
			onUpstreamDone()
			return
		}
		derived.TryFailure(done.GetCause())
		if done.IsCancelled() {
			a.Cancel(false)
		}
	})

	return derived.Future
}

// Zip3 is Zip2 over three inputs, succeeding with a Triple.
func Zip3[A, B, C any](a Future[A], b Future[B], c Future[C]) Future[Triple[A, B, C]] {
	derived := NewPromise[Triple[A, B, C]](a.Scheduler())
	derived.cell.setOnCancelUpward(func() { a.Cancel(false); b.Cancel(false); c.Cancel(false) })

	var pending atomic.Int32
	pending.Store(3)

	succeedIfDone := func() {
		if pending.Add(-1) == 0 {
			derived.TrySuccess(Triple[A, B, C]{First: a.GetNow(), Second: b.GetNow(), Third: c.GetNow()})
		}
	}
	cancelOthers := func(except int) {
		if except != 0 {
			a.Cancel(false)
		}
		if except != 1 {
			b.Cancel(false)
		}
		if except != 2 {
			c.Cancel(false)
		}
	}

	a.OnCompleted(func(done Future[A]) {
		if done.IsSuccess() {
			succeedIfDone()
			return
		}
		derived.TryFailure(done.GetCause())
		if done.IsCancelled() {
			cancelOthers(0)
		}
	})
	b.OnCompleted(func(done Future[B]) {
		if done.IsSuccess() {
			succeedIfDone()
			return
		}
		derived.TryFailure(done.GetCause())
		if done.IsCancelled() {
			cancelOthers(1)
		}
	})
	c.OnCompleted(func(done Future[C]) {
		if done.IsSuccess() {
			succeedIfDone()
			return
		}
		derived.TryFailure(done.GetCause())
		if done.IsCancelled() {
			cancelOthers(2)
		}
	})

	return derived.Future
}

// ZipWith combines a and b's success values through fn rather than pairing
// them; propagation matches Zip2 (spec §4.3).
func ZipWith[A, B, U any](a Future[A], b Future[B], fn func(A, B) (U, error)) Future[U] {
	return Map(Zip2(a, b), func(p Pair[A, B]) (U, error) {
		return fn(p.First, p.Second)
	})
}
