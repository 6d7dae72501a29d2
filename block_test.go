package async

import (
	"errors"
	"testing"
	"time"

	"github.com/Tangerg/lynx/async/scheduler"
)

func TestJoinReturnsValueOnSuccess(t *testing.T) {
	f := Succeeded(4, scheduler.Direct)
	v, err := f.Join()
	if err != nil || v != 4 {
		t.Fatalf("Join() = %d, %v; want 4, nil", v, err)
	}
}

func TestJoinReturnsCauseOnFailure(t *testing.T) {
	boom := errors.New("boom")
	f := Failed[int](boom, scheduler.Direct)
	if _, err := f.Join(); err != boom {
		t.Fatalf("Join() cause = %v, want %v", err, boom)
	}
}

func TestJoinTimeoutRaisesTimeoutFailure(t *testing.T) {
	f := NewPromise[int](scheduler.Direct).Future
	_, err := f.JoinTimeout(10 * time.Millisecond)
	if _, ok := err.(*TimeoutFailure); !ok {
		t.Fatalf("err = %T, want *TimeoutFailure", err)
	}
}

func TestBlockReturnsPointerOnSuccess(t *testing.T) {
	f := Succeeded(7, scheduler.Direct)
	p := f.Block()
	if p == nil || *p != 7 {
		t.Fatalf("Block() = %v, want pointer to 7", p)
	}
}

func TestBlockReturnsNilOnFailure(t *testing.T) {
	f := Failed[int](errors.New("boom"), scheduler.Direct)
	if p := f.Block(); p != nil {
		t.Fatalf("Block() = %v, want nil", p)
	}
}

func TestBlockTimeoutReturnsNilOnDeadline(t *testing.T) {
	f := NewPromise[int](scheduler.Direct).Future
	if p := f.BlockTimeout(10 * time.Millisecond); p != nil {
		t.Fatalf("BlockTimeout() = %v, want nil", p)
	}
}
