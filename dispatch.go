package async

import (
	"fmt"
	"log/slog"

	"github.com/Tangerg/lynx/async/pkg/safe"
	"github.com/Tangerg/lynx/async/scheduler"
)

// addListener implements spec §4.2 rules 1-3: append while incomplete;
// dispatch immediately (never inline) once already terminal; but if the
// caller is itself running as a listener inside THIS cell's own drainNow
// (c.draining), append to the list instead so the outer drain loop's next
// pass picks it up as a late listener, in order, rather than recursing.
func (c *cell[T]) addListener(fn ListenerFunc[T], progress ProgressListenerFunc[T], executor scheduler.Scheduler) ListenerHandle[T] {
	e := &listenerEntry[T]{fn: fn, progress: progress, executor: executor}

	c.mu.Lock()
	if !c.state.load().IsTerminal() || c.draining {
		c.listeners.add(e)
		c.mu.Unlock()
		return ListenerHandle[T]{entry: e}
	}
	c.mu.Unlock()

	// Already terminal and no drain in progress: dispatch now, still never
	// inline (rule 1).
	c.dispatchOne(e)
	return ListenerHandle[T]{entry: e}
}

// removeListener detaches a previously added listener. It is a no-op (and
// returns false) if the listener has already fired or was already removed.
func (c *cell[T]) removeListener(h ListenerHandle[T]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listeners.remove(h.entry)
}

// notifyProgress runs every progressive listener currently attached, ahead
// of the eventual completion notification (spec §5: "progress notifications
// precede the completion notification for any single listener").
func (c *cell[T]) notifyProgress(percent float64, extra any) {
	c.mu.Lock()
	entries := c.listeners.progressiveListeners()
	c.mu.Unlock()
	identity := fmt.Sprintf("%p", c)
	for _, e := range entries {
		prog := e.progress
		if prog == nil {
			continue
		}
		exec := e.executor
		if exec == nil {
			exec = c.sched
		}
		dispatchFunc(identity, exec, func() {
			runProtected(identity, func() { prog(percent, extra) })
		})
	}
}

// drainNow satisfies cellBase (trampoline.go): it is called exactly once
// per completed cell, from scheduleDrain. It repeatedly snapshots and
// empties the listener list so that a listener which itself attaches a new
// listener to this SAME cell during the drain is picked up in this same
// call rather than left to a later, separate dispatch (spec §4.2 rule 3).
func (c *cell[T]) drainNow() {
	c.mu.Lock()
	c.draining = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.draining = false
		c.mu.Unlock()
	}()

	for {
		c.mu.Lock()
		batch := c.listeners.drainAll()
		c.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, e := range batch {
			c.dispatchOne(e)
		}
	}
}

// dispatchOne runs a single listener entry's completion callback on its
// chosen scheduler, recovering panics and falling back to inline execution
// if the scheduler rejects the task (spec §4.2 rule 4, §7).
func (c *cell[T]) dispatchOne(e *listenerEntry[T]) {
	if e.fn == nil {
		return
	}
	exec := e.executor
	if exec == nil {
		exec = c.sched
	}
	fut := Future[T]{cell: c}
	identity := fmt.Sprintf("%p", c)
	dispatchFunc(identity, exec, func() {
		runProtected(identity, func() { e.fn(fut) })
	})
}

// dispatchFunc runs task via exec.Execute, catching a scheduler rejection
// (panic(scheduler.ErrRejected) or anything else exec chooses to panic
// with) and falling back to running task inline on the calling goroutine —
// except when exec is the Rejecting test sentinel, which must be allowed to
// actually drop the task (spec §4.2 rule 4's stated exception). identity is
// the owning cell's pointer identity, logged alongside the rejection.
func dispatchFunc(identity string, exec scheduler.Scheduler, task func()) {
	if scheduler.IsRejectingSentinel(exec) {
		func() {
			defer func() { recover() }()
			exec.Execute(task)
		}()
		return
	}

	rejected := func() (rejected bool) {
		defer func() {
			if r := recover(); r != nil {
				rejected = true
			}
		}()
		exec.Execute(task)
		return false
	}()
	if rejected {
		slog.Warn("async: scheduler rejected dispatch, falling back to inline execution",
			slog.String("future", identity))
		task()
	}
}

// runProtected invokes fn, recovering and logging any panic at WARN (spec
// §4.2 rule 4, §7: "caught and logged; other listeners still execute"). It
// delegates the recover/wrap mechanics to the teacher's own safe.WithRecover
// rather than hand-rolling a second one. identity is the owning cell's
// pointer identity, logged alongside the recovered panic.
func runProtected(identity string, fn func()) {
	safe.WithRecover(fn, func(err error) {
		slog.Warn("async: listener panicked",
			slog.String("future", identity),
			slog.Any("error", err))
	})()
}
