package scheduler

import "time"

// directScheduler runs Execute inline, on the caller's goroutine. It is
// provided for tests that want deterministic, synchronous dispatch (spec
// §4.8): "A synchronous direct scheduler is available for tests".
type directScheduler struct{}

func (directScheduler) Execute(task func()) {
	task()
}

// Schedule still needs a real timer for the delay itself; only the
// immediate-dispatch path (Execute) is inline.
func (directScheduler) Schedule(task func(), delay time.Duration) (cancel func()) {
	timer := time.AfterFunc(delay, task)
	return func() { timer.Stop() }
}

// Direct is the synchronous scheduler described in spec §4.8.
var Direct Scheduler = directScheduler{}

// rejectingScheduler always rejects Execute, for exercising the
// rejection/fallback contract in spec §4.2 rule 4 and its stated exception.
type rejectingScheduler struct{}

func (rejectingScheduler) Execute(func()) {
	panic(ErrRejected)
}

func (rejectingScheduler) Schedule(func(), time.Duration) (cancel func()) {
	return func() {}
}

func (rejectingScheduler) isRejectingSentinel() {}

// Rejecting is the "explicit rejecting sentinel" scheduler referenced by
// spec §4.2 rule 4: dispatching onto it never falls back to inline
// execution, so attached listeners simply never observe completion. It
// exists purely to test that behaviour, never for production use.
var Rejecting Scheduler = rejectingScheduler{}
