package async

import "sync/atomic"

// State is the logical state of a result cell (spec §3). It is stored as an
// int32 so a single CompareAndSwap performs the state transition.
type State int32

const (
	// stateIncomplete is the initial state: no result yet, cancellable.
	stateIncomplete State = iota
	// stateUncancellable is still incomplete but rejects Cancel.
	stateUncancellable
	// stateSuccess is terminal: a value is available.
	stateSuccess
	// stateFailure is terminal: a cause is available (CancellationCause is a
	// specific kind of cause, distinguished via IsCancelled).
	stateFailure
)

func (s State) int32() int32 { return int32(s) }

// IsIncomplete reports whether the cell has not yet reached a terminal
// state and still accepts Cancel.
func (s State) IsIncomplete() bool { return s == stateIncomplete }

// IsUncancellable reports whether SetUncancellable has latched the cell.
func (s State) IsUncancellable() bool { return s == stateUncancellable }

// IsTerminal reports whether the cell has completed (success or failure,
// including cancellation).
func (s State) IsTerminal() bool { return s == stateSuccess || s == stateFailure }

// atomicState is the single CAS word every result cell transitions through.
// Monotonicity (spec §3 invariants) follows directly from CompareAndSwap:
// once stored as stateSuccess/stateFailure, no further Store ever succeeds
// because every writer goes through CompareAndSwap from a non-terminal
// expected value.
type atomicState struct {
	v atomic.Int32
}

func (a *atomicState) load() State { return State(a.v.Load()) }

func (a *atomicState) compareAndSwap(from, to State) bool {
	return a.v.CompareAndSwap(from.int32(), to.int32())
}

// trySetUncancellable implements the precise truth table from spec §4.1:
// true on a real transition or if already uncancellable/terminal-non-cancelled,
// false only if the cell is already cancelled.
func (a *atomicState) trySetUncancellable(isCancelled func() bool) bool {
	if a.compareAndSwap(stateIncomplete, stateUncancellable) {
		return true
	}
	cur := a.load()
	if cur == stateUncancellable {
		return true
	}
	if cur.IsTerminal() {
		return !isCancelled()
	}
	return false
}
