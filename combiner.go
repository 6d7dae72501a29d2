package async

import (
	"fmt"
	"sync/atomic"

	"github.com/Tangerg/lynx/async/scheduler"
)

// FutureCombiner is the aggregator built by WhenAllComplete/WhenAllSucceed
// (spec §4.4): it fixes a set of inputs and exposes the terminal
// Call/Run/Combine operations. The inputs here are homogeneously typed
// (Future[T]) rather than the heterogeneous variadic-arity inputs a
// dynamically typed host allows — Go generics have no type-safe way to
// express "N futures of N different types" without per-arity boilerplate,
// so callers needing to combine differently typed futures first normalize
// them (e.g. via Map) to a common T, or use Zip2/Zip3 directly for the
// small, fixed-arity, heterogeneous case.
type FutureCombiner[T any] struct {
	futures  []Future[T]
	failFast bool
}

// WhenAllComplete builds a combiner whose terminal operation fires once
// every input has reached ANY terminal state, regardless of outcome (spec
// §4.4).
func WhenAllComplete[T any](futures ...Future[T]) *FutureCombiner[T] {
	return &FutureCombiner[T]{futures: futures}
}

// WhenAllSucceed builds a combiner that fails fast: the terminal operation
// fires with the first observed failure the moment any input fails,
// without waiting for the rest (spec §4.4).
func WhenAllSucceed[T any](futures ...Future[T]) *FutureCombiner[T] {
	return &FutureCombiner[T]{futures: futures, failFast: true}
}

// Combine is the no-user-combiner terminal operation: it succeeds with
// struct{}{} once the aggregation condition is met, or fails per
// WhenAllSucceed's fail-fast rule (spec §4.4: "combine() with no combiner
// succeeds with null").
func (c *FutureCombiner[T]) Combine(exec scheduler.Scheduler) Future[struct{}] {
	return Call(c, func([]Future[T]) (struct{}, error) { return struct{}{}, nil }, exec)
}

// Run is Call with a combiner that returns no value (spec §4.4: "run(...)
// is identical to call but with a void combiner").
func Run[T any](c *FutureCombiner[T], combiner func([]Future[T]) error, exec scheduler.Scheduler) Future[struct{}] {
	return Call(c, func(fs []Future[T]) (struct{}, error) {
		return struct{}{}, combiner(fs)
	}, exec)
}

// Call registers one listener per input (spec §4.4's implementation
// contract) and returns a future that completes once the aggregation
// condition holds: for WhenAllComplete, once every input is terminal; for
// WhenAllSucceed, either on the first failure (fail-fast, combiner never
// runs) or once every input has succeeded. combiner then runs on exec (or
// the first input's scheduler if exec is nil) with the full input slice.
// With no inputs the combiner runs at once on the calling goroutine.
// Cancelling the returned future cancels every still-incomplete input;
// cancelling (or failing, under WhenAllSucceed) any input propagates to the
// returned future.
func Call[T, R any](c *FutureCombiner[T], combiner func([]Future[T]) (R, error), exec scheduler.Scheduler) Future[R] {
	derived := NewPromise[R](pickCombinerScheduler(c.futures, exec))

	if len(c.futures) == 0 {
		v, err := safeCall1(combiner, c.futures)
		if err != nil {
			derived.TryFailure(err)
		} else {
			derived.TrySuccess(v)
		}
		return derived.Future
	}

	derived.cell.setOnCancelUpward(func() {
		for _, f := range c.futures {
			f.Cancel(false)
		}
	})

	var pending atomic.Int32
	pending.Store(int32(len(c.futures)))
	var shortCircuited atomic.Bool

	runCombiner := func() {
		if shortCircuited.Load() {
			return
		}
		v, err := safeCall1(combiner, c.futures)
		if err != nil {
			derived.TryFailure(err)
			return
		}
		derived.TrySuccess(v)
	}

	shortCircuit := func(cause error) {
		if shortCircuited.CompareAndSwap(false, true) {
			derived.TryFailure(cause)
			for _, other := range c.futures {
				other.Cancel(false)
			}
		}
	}

	for _, f := range c.futures {
		f.OnCompleted(func(done Future[T]) {
			if done.IsCancelled() {
				// Cancellation of any one input always short-circuits the
				// aggregator, for both WhenAllComplete and WhenAllSucceed
				// (spec §4.4: "cancelling any input cancels the aggregator's
				// derived future").
				shortCircuit(done.GetCause())
				return
			}
			if !done.IsSuccess() && c.failFast {
				// WhenAllSucceed fails fast on the first non-cancel failure
				// too, without invoking the combiner.
				shortCircuit(done.GetCause())
				return
			}
			if pending.Add(-1) == 0 {
				dispatchFunc(fmt.Sprintf("%p", derived.cell), derived.Scheduler(), runCombiner)
			}
		})
	}

	return derived.Future
}

func pickCombinerScheduler[T any](futures []Future[T], exec scheduler.Scheduler) scheduler.Scheduler {
	if exec != nil {
		return exec
	}
	if len(futures) > 0 {
		return futures[0].Scheduler()
	}
	return scheduler.Global()
}
