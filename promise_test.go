package async

import (
	"errors"
	"testing"
	"time"

	"github.com/Tangerg/lynx/async/scheduler"
)

func TestPromiseTrySuccess(t *testing.T) {
	p := NewPromise[string](scheduler.Direct)
	if !p.TrySuccess("hello") {
		t.Fatal("first TrySuccess should succeed")
	}
	if p.TrySuccess("again") {
		t.Fatal("second TrySuccess must fail once terminal")
	}
	v, err := p.Get(0)
	if err != nil || v != "hello" {
		t.Fatalf("Get() = %q, %v; want hello, nil", v, err)
	}
	if !p.IsSuccess() || p.IsFailed() {
		t.Fatal("expected IsSuccess true, IsFailed false")
	}
}

func TestPromiseListenerObservesValueExactlyOnce(t *testing.T) {
	p := NewPromise[string](scheduler.Direct)
	calls := 0
	var seen string
	p.OnCompleted(func(f Future[string]) {
		calls++
		seen = f.GetNow()
	})
	p.TrySuccess("hi")
	if calls != 1 {
		t.Fatalf("listener ran %d times, want 1", calls)
	}
	if seen != "hi" {
		t.Fatalf("listener saw %q, want hi", seen)
	}
}

func TestPromiseUncancellableRejectsCancel(t *testing.T) {
	p := NewPromise[int](scheduler.Direct)
	if !p.SetUncancellable() {
		t.Fatal("SetUncancellable should succeed from INCOMPLETE")
	}
	if p.Cancel(false) {
		t.Fatal("Cancel must fail once UNCANCELLABLE")
	}
	if !p.TrySuccess(1) {
		t.Fatal("TrySuccess must still work from UNCANCELLABLE")
	}
}

func TestPromiseCancelIsDoneAndSecondCancelFails(t *testing.T) {
	p := NewPromise[int](scheduler.Direct)
	if !p.Cancel(false) {
		t.Fatal("Cancel from INCOMPLETE should succeed")
	}
	if !p.IsDone() || !p.IsCancelled() {
		t.Fatal("expected IsDone and IsCancelled true after Cancel")
	}
	if p.Cancel(false) {
		t.Fatal("second Cancel on a terminal cell must return false")
	}

	p2 := NewPromise[int](scheduler.Direct)
	p2.TrySuccess(1)
	if p2.Cancel(false) {
		t.Fatal("Cancel after set* must return false")
	}
}

func TestPromiseGetWrapsNonCancellationFailure(t *testing.T) {
	boom := errors.New("boom")
	p := NewPromise[int](scheduler.Direct)
	p.TryFailure(boom)

	_, err := p.Get(0)
	var ef *ExecutionFailure
	if !errors.As(err, &ef) {
		t.Fatalf("Get() error = %v, want *ExecutionFailure", err)
	}
	if !errors.Is(ef, boom) && ef.Cause != boom {
		t.Fatalf("ExecutionFailure.Cause = %v, want %v", ef.Cause, boom)
	}

	_, syncErr := p.Sync(0)
	if syncErr != boom {
		t.Fatalf("Sync() error = %v, want unwrapped %v", syncErr, boom)
	}
}

func TestPromiseGetSurfacesCancellationDirectly(t *testing.T) {
	p := NewPromise[int](scheduler.Direct)
	p.Cancel(false)
	_, err := p.Get(0)
	if !IsCancellation(err) {
		t.Fatalf("Get() on a cancelled promise should surface a CancellationCause, got %v", err)
	}
}

func TestPromiseAwaitTimeout(t *testing.T) {
	p := NewPromise[int](scheduler.Direct)
	if p.Await(10 * time.Millisecond) {
		t.Fatal("Await should time out on a promise nobody completes")
	}
	_, err := p.Get(10 * time.Millisecond)
	var tf *TimeoutFailure
	if !errors.As(err, &tf) {
		t.Fatalf("Get() error = %v, want *TimeoutFailure", err)
	}
}

func TestListenerAddedAfterCompletionStillFires(t *testing.T) {
	p := NewPromise[int](scheduler.Direct)
	p.TrySuccess(42)

	fired := false
	p.OnCompleted(func(f Future[int]) { fired = true })
	if !fired {
		t.Fatal("a listener added after completion must still observe it")
	}
}

func TestRemoveListenerPreventsFire(t *testing.T) {
	p := NewPromise[int](scheduler.Direct)
	fired := false
	h := p.OnCompleted(func(f Future[int]) { fired = true })
	if !p.RemoveListener(h) {
		t.Fatal("RemoveListener on a still-attached listener should return true")
	}
	p.TrySuccess(1)
	if fired {
		t.Fatal("a removed listener must not fire")
	}
	if p.RemoveListener(h) {
		t.Fatal("RemoveListener must be idempotent and return false the second time")
	}
}

func TestListenerOrderingSameThreadBeforeCompletion(t *testing.T) {
	p := NewPromise[int](scheduler.Direct)
	var order []int
	p.OnCompleted(func(Future[int]) { order = append(order, 1) })
	p.OnCompleted(func(Future[int]) { order = append(order, 2) })
	p.OnCompleted(func(Future[int]) { order = append(order, 3) })
	p.TrySuccess(0)

	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestListenerAddedByAnotherListenerFiresAfterAdder(t *testing.T) {
	p := NewPromise[int](scheduler.Direct)
	var order []string
	p.OnCompleted(func(f Future[int]) {
		order = append(order, "first")
		f.OnCompleted(func(Future[int]) { order = append(order, "added-by-first") })
	})
	p.OnCompleted(func(Future[int]) { order = append(order, "second") })
	p.TrySuccess(0)

	if len(order) != 3 || order[0] != "first" || order[2] != "added-by-first" {
		t.Fatalf("order = %v, want [first second added-by-first] (second may precede, added-by-first must trail first)", order)
	}
}

func TestPanickingListenerDoesNotStopOthers(t *testing.T) {
	p := NewPromise[int](scheduler.Direct)
	second := false
	p.OnCompleted(func(Future[int]) { panic("boom") })
	p.OnCompleted(func(Future[int]) { second = true })
	p.TrySuccess(0)
	if !second {
		t.Fatal("a panicking listener must not prevent later listeners from running")
	}
}

func TestNewInterruptiblePromiseInvokesHookOnlyWhenMayInterrupt(t *testing.T) {
	var gotMayInterrupt []bool
	p := NewInterruptiblePromise[int](func(mayInterrupt bool) {
		gotMayInterrupt = append(gotMayInterrupt, mayInterrupt)
	}, scheduler.Direct)
	p.Cancel(true)
	if len(gotMayInterrupt) != 1 || !gotMayInterrupt[0] {
		t.Fatalf("interruptTask calls = %v, want [true]", gotMayInterrupt)
	}
}

func TestRejectingSchedulerDropsListener(t *testing.T) {
	p := NewPromise[int](scheduler.Rejecting)
	fired := false
	p.OnCompleted(func(Future[int]) { fired = true })
	p.TrySuccess(1)
	if fired {
		t.Fatal("the Rejecting sentinel must not fall back to inline execution")
	}
}
