package async

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Tangerg/lynx/async/scheduler"
)

// outcome is the terminal payload of a cell: either a success value or a
// failure cause, never both. It replaces the "tagged enum of Incomplete /
// Uncancellable / Success / Failure" from spec §9's design note: the tag
// itself lives in atomicState, and outcome only ever holds the payload for
// the two terminal tags.
type outcome[T any] struct {
	value T
	cause error
}

// cell is the shared, conceptually-single-writer result cell behind both
// Future[T] and Promise[T] (spec §3). A Future and a Promise built from the
// same cell are two views over identical state; cloning either handle never
// copies the cell.
type cell[T any] struct {
	state atomicState

	mu        sync.Mutex // guards out + listeners + draining; never held while invoking a listener
	out       outcome[T]
	listeners listenerList[T]
	draining  bool // true for the duration of this cell's own drainNow call (spec §4.2 rule 3)

	waiters atomic.Int32
	done    chan struct{}

	sched          scheduler.Scheduler
	interruptTask  func(mayInterrupt bool)
	onCancelUpward func() // combinator back-reference: cancel this cell -> cancel its source
}

func newCell[T any](sched scheduler.Scheduler) *cell[T] {
	if sched == nil {
		sched = scheduler.Global()
	}
	return &cell[T]{
		sched: sched,
		done:  make(chan struct{}),
	}
}

func (c *cell[T]) isDone() bool         { return c.state.load().IsTerminal() }
func (c *cell[T]) isSuccess() bool      { return c.state.load() == stateSuccess }
func (c *cell[T]) isCancellable() bool  { return c.state.load().IsIncomplete() }

func (c *cell[T]) isFailed() bool {
	return c.state.load() == stateFailure
}

func (c *cell[T]) isCancelled() bool {
	if c.state.load() != stateFailure {
		return false
	}
	c.mu.Lock()
	cause := c.out.cause
	c.mu.Unlock()
	return IsCancellation(cause)
}

// getNow returns the success value, or the zero value of T if the cell
// isn't a successful terminal (spec §4.1: "MUST NOT throw").
func (c *cell[T]) getNow() T {
	if c.state.load() != stateSuccess {
		var zero T
		return zero
	}
	c.mu.Lock()
	v := c.out.value
	c.mu.Unlock()
	return v
}

// obtain is getNow but reports ErrResultRequired instead of silently
// returning the zero value when there is no success to hand back.
func (c *cell[T]) obtain() (T, error) {
	if c.state.load() != stateSuccess {
		var zero T
		return zero, ErrResultRequired
	}
	return c.getNow(), nil
}

// getCause returns the raw failure cause, or nil if the cell hasn't failed.
// An *ExecutionFailure wrapper is unwrapped one level, so cells built by
// adapting a host blocking future never pile up repeated wrapper layers
// (spec §4.1).
func (c *cell[T]) getCause() error {
	if c.state.load() != stateFailure {
		return nil
	}
	c.mu.Lock()
	cause := c.out.cause
	c.mu.Unlock()
	if ef, ok := cause.(*ExecutionFailure); ok {
		return ef.Cause
	}
	return cause
}

// trySuccess attempts INCOMPLETE/UNCANCELLABLE -> SUCCESS(v).
func (c *cell[T]) trySuccess(v T) bool {
	return c.completeTo(func() {
		c.out.value = v
	})
}

// tryFailure attempts INCOMPLETE/UNCANCELLABLE -> FAILURE(err).
func (c *cell[T]) tryFailure(err error) bool {
	return c.completeTo(func() {
		c.out.cause = err
	})
}

// completeTo writes the outcome payload while the cell is still
// non-terminal to every other reader, then publishes the new state via a
// single CAS, then schedules the listener drain.
func (c *cell[T]) completeTo(store func()) bool {
	cur := c.state.load()
	if cur.IsTerminal() {
		return false
	}
	c.mu.Lock()
	// Re-check under the lock: another writer may have raced us between the
	// load above and acquiring mu. The state word is still the authority;
	// this lock only protects the payload write from being torn.
	cur = c.state.load()
	if cur.IsTerminal() {
		c.mu.Unlock()
		return false
	}
	store()
	var to State
	if c.out.cause != nil {
		to = stateFailure
	} else {
		to = stateSuccess
	}
	ok := c.state.compareAndSwap(cur, to)
	c.mu.Unlock()
	if !ok {
		// Someone else completed it between our check and our CAS; our
		// payload write is simply discarded (it was written to a cell that
		// lost the race, and no reader can observe it: getNow/getCause
		// gate on c.state first).
		return false
	}
	close(c.done)
	scheduleDrain(c)
	return true
}

// setUncancellable implements spec §4.1's precise truth table.
func (c *cell[T]) setUncancellable() bool {
	return c.state.trySetUncancellable(c.isCancelled)
}

// cancel attempts INCOMPLETE -> FAILURE(CancellationCause). It refuses from
// UNCANCELLABLE and from any terminal state.
func (c *cell[T]) cancel(mayInterrupt bool) bool {
	c.mu.Lock()
	if !c.state.load().IsIncomplete() {
		c.mu.Unlock()
		return false
	}
	c.out.cause = newCancellation()
	ok := c.state.compareAndSwap(stateIncomplete, stateFailure)
	upward := c.onCancelUpward
	c.mu.Unlock()
	if !ok {
		return false
	}
	if mayInterrupt && c.interruptTask != nil {
		c.interruptTask(true)
	}
	if upward != nil {
		upward()
	}
	close(c.done)
	scheduleDrain(c)
	return true
}

// setOnCancelUpward installs the combinator back-reference under the same
// lock cancel() reads it through, so a combinator re-wiring its upward
// cancellation target (e.g. FlatMap/OnErrorResume switching from the outer
// source to an inner future once it starts) never races a concurrent Cancel.
func (c *cell[T]) setOnCancelUpward(fn func()) {
	c.mu.Lock()
	c.onCancelUpward = fn
	c.mu.Unlock()
}

// await blocks until the cell is terminal or deadline elapses (zero
// deadline means wait forever). It reports whether the cell is terminal on
// return.
func (c *cell[T]) await(deadline time.Duration) bool {
	if c.isDone() {
		return true
	}
	c.waiters.Add(1)
	defer c.waiters.Add(-1)
	if deadline <= 0 {
		<-c.done
		return true
	}
	timer := time.NewTimer(deadline)
	defer timer.Stop()
	select {
	case <-c.done:
		return true
	case <-timer.C:
		return c.isDone()
	}
}

// get composes await with result extraction (spec §4.1): success returns
// the value; cancellation re-raises the CancellationCause directly; any
// other failure is wrapped in ExecutionFailure; a deadline that elapses
// first raises TimeoutFailure.
func (c *cell[T]) get(deadline time.Duration) (T, error) {
	if !c.await(deadline) {
		var zero T
		return zero, &TimeoutFailure{Duration: deadline}
	}
	if c.state.load() == stateSuccess {
		return c.getNow(), nil
	}
	cause := c.getCause()
	var zero T
	if IsCancellation(cause) {
		return zero, cause
	}
	return zero, &ExecutionFailure{Cause: cause}
}

// sync awaits then re-raises the cause directly, unwrapped (spec §4.1).
func (c *cell[T]) sync(deadline time.Duration) (T, error) {
	if !c.await(deadline) {
		var zero T
		return zero, &TimeoutFailure{Duration: deadline}
	}
	if c.state.load() == stateSuccess {
		return c.getNow(), nil
	}
	var zero T
	return zero, c.getCause()
}
