package scheduler

import (
	"testing"
	"time"

	concpool "github.com/sourcegraph/conc/pool"
	"github.com/gammazero/workerpool"
	"github.com/panjf2000/ants/v2"

	"github.com/Tangerg/lynx/async/future"
)

func TestFromAntsPoolExecutesTask(t *testing.T) {
	p, err := ants.NewPool(2)
	if err != nil {
		t.Fatalf("build ants pool: %v", err)
	}
	defer p.Release()

	s := FromAntsPool(p)
	done := make(chan struct{})
	s.Execute(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestFromAntsPoolRejectionPanicsErrRejected(t *testing.T) {
	p, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		t.Fatalf("build ants pool: %v", err)
	}
	defer p.Release()

	block := make(chan struct{})
	// Saturate the single worker so the next submission is rejected.
	if err := p.Submit(func() { <-block }); err != nil {
		t.Fatalf("first submit must be accepted: %v", err)
	}
	defer close(block)

	s := FromAntsPool(p)
	defer func() {
		r := recover()
		if r != ErrRejected {
			t.Fatalf("recovered = %v, want ErrRejected", r)
		}
	}()
	s.Execute(func() {})
}

func TestFromFuturePoolExecutesTask(t *testing.T) {
	s := FromFuturePool(future.PoolOfGoroutines())
	done := make(chan struct{})
	s.Execute(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestFromFuturePoolNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("FromFuturePool(nil) must panic")
		}
	}()
	FromFuturePool(nil)
}

func TestFromConcPoolExecutesTask(t *testing.T) {
	p := concpool.New()
	defer p.Wait()

	s := FromConcPool(p)
	done := make(chan struct{})
	s.Execute(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestFromConcPoolNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("FromConcPool(nil) must panic")
		}
	}()
	FromConcPool(nil)
}

func TestFromWorkerpoolExecutesTask(t *testing.T) {
	wp := workerpool.New(1)
	defer wp.StopWait()

	s := FromWorkerpool(wp)
	done := make(chan struct{})
	s.Execute(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestPoolSchedulerScheduleDelaysExecution(t *testing.T) {
	p, err := ants.NewPool(1)
	if err != nil {
		t.Fatalf("build ants pool: %v", err)
	}
	defer p.Release()

	s := FromAntsPool(p)
	fired := make(chan struct{})
	start := time.Now()
	s.Schedule(func() { close(fired) }, 30*time.Millisecond)

	<-fired
	if time.Since(start) < 20*time.Millisecond {
		t.Fatal("scheduled task fired before its delay elapsed")
	}
}
