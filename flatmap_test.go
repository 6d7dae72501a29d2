package async

import (
	"errors"
	"testing"

	"github.com/Tangerg/lynx/async/scheduler"
)

func TestFlatMapChainsInnerFutureOutcome(t *testing.T) {
	src := NewPromise[int](scheduler.Direct)
	inner := NewPromise[string](scheduler.Direct)

	derived := FlatMap(src.Future, func(v int) Future[string] {
		return inner.Future
	})

	src.TrySuccess(1)
	if derived.IsDone() {
		t.Fatal("derived must wait on the inner future before completing")
	}
	inner.TrySuccess("done")

	v, err := derived.Get(0)
	if err != nil || v != "done" {
		t.Fatalf("FlatMap result = %q, %v; want done, nil", v, err)
	}
}

func TestFlatMapPropagatesSourceFailure(t *testing.T) {
	src := NewPromise[int](scheduler.Direct)
	boom := errors.New("source failed")
	derived := FlatMap(src.Future, func(v int) Future[string] {
		t.Fatal("fn must not run when source fails")
		return Future[string]{}
	})
	src.TryFailure(boom)
	if _, err := derived.Sync(0); err != boom {
		t.Fatalf("derived cause = %v, want %v", err, boom)
	}
}

func TestFlatMapCancelAfterInnerStartedCancelsInner(t *testing.T) {
	src := NewPromise[int](scheduler.Direct)
	inner := NewPromise[string](scheduler.Direct)
	derived := FlatMap(src.Future, func(v int) Future[string] { return inner.Future })
	src.TrySuccess(1)

	derived.Cancel(false)
	if !inner.IsCancelled() {
		t.Fatal("cancelling derived after the inner future started should cancel the inner future")
	}
	if src.IsCancelled() {
		t.Fatal("the already-succeeded source must not be cancelled")
	}
}
