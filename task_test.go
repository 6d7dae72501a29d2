package async

import (
	"errors"
	"testing"

	"github.com/Tangerg/lynx/async/scheduler"
)

func TestFutureTaskExecuteSettlesSuccess(t *testing.T) {
	ft := NewFutureTask[int](func(interrupt <-chan struct{}) (int, error) {
		return 11, nil
	}, scheduler.Direct)
	ft.Execute()

	v, err := ft.Get(0)
	if err != nil || v != 11 {
		t.Fatalf("result = %d, %v; want 11, nil", v, err)
	}
}

func TestFutureTaskExecuteSettlesFailure(t *testing.T) {
	boom := errors.New("boom")
	ft := NewFutureTask[int](func(interrupt <-chan struct{}) (int, error) {
		return 0, boom
	}, scheduler.Direct)
	ft.Execute()

	if _, err := ft.Sync(0); err != boom {
		t.Fatalf("cause = %v, want %v", err, boom)
	}
}

func TestFutureTaskNeverStartsIfCancelledBeforeExecute(t *testing.T) {
	started := false
	ft := NewFutureTask[int](func(interrupt <-chan struct{}) (int, error) {
		started = true
		return 0, nil
	}, scheduler.Direct)

	ft.Cancel(false)
	ft.Execute()

	if started {
		t.Fatal("a task cancelled before Execute must never start running")
	}
}

func TestFutureTaskInterruptChannelClosesOnMayInterruptCancel(t *testing.T) {
	started := make(chan struct{})
	done := make(chan struct{})
	ft := NewFutureTask[int](func(interrupt <-chan struct{}) (int, error) {
		close(started)
		<-interrupt
		close(done)
		return 0, errors.New("interrupted")
	}, scheduler.Global())

	ft.Execute()
	<-started
	ft.Cancel(true)
	<-done
}

func TestFutureTaskPanicBecomesFailure(t *testing.T) {
	ft := NewFutureTask[int](func(interrupt <-chan struct{}) (int, error) {
		panic("boom")
	}, scheduler.Direct)
	ft.Execute()

	if !ft.IsFailed() {
		t.Fatal("a panicking task must settle the promise as a failure, not crash the scheduler")
	}
}
