package async

import "testing"

func TestState(t *testing.T) {
	t.Run("IsIncomplete", func(t *testing.T) {
		if !stateIncomplete.IsIncomplete() {
			t.Error("stateIncomplete.IsIncomplete() should be true")
		}
		if stateUncancellable.IsIncomplete() {
			t.Error("stateUncancellable.IsIncomplete() should be false")
		}
	})

	t.Run("IsUncancellable", func(t *testing.T) {
		if !stateUncancellable.IsUncancellable() {
			t.Error("stateUncancellable.IsUncancellable() should be true")
		}
		if stateIncomplete.IsUncancellable() {
			t.Error("stateIncomplete.IsUncancellable() should be false")
		}
	})

	t.Run("IsTerminal", func(t *testing.T) {
		for _, s := range []State{stateSuccess, stateFailure} {
			if !s.IsTerminal() {
				t.Errorf("%v.IsTerminal() should be true", s)
			}
		}
		for _, s := range []State{stateIncomplete, stateUncancellable} {
			if s.IsTerminal() {
				t.Errorf("%v.IsTerminal() should be false", s)
			}
		}
	})
}

func TestAtomicStateCompareAndSwap(t *testing.T) {
	var a atomicState
	if !a.compareAndSwap(stateIncomplete, stateSuccess) {
		t.Fatal("first CAS from the zero value should succeed")
	}
	if a.compareAndSwap(stateSuccess, stateFailure) {
		t.Fatal("CAS out of a terminal state must never succeed")
	}
	if a.load() != stateSuccess {
		t.Fatalf("expected stateSuccess, got %v", a.load())
	}
}

func TestTrySetUncancellable(t *testing.T) {
	t.Run("from incomplete", func(t *testing.T) {
		var a atomicState
		if !a.trySetUncancellable(func() bool { return false }) {
			t.Fatal("expected true")
		}
		if a.load() != stateUncancellable {
			t.Fatalf("expected stateUncancellable, got %v", a.load())
		}
	})

	t.Run("already uncancellable", func(t *testing.T) {
		var a atomicState
		a.compareAndSwap(stateIncomplete, stateUncancellable)
		if !a.trySetUncancellable(func() bool { return false }) {
			t.Fatal("expected true when already uncancellable")
		}
	})

	t.Run("terminal and not cancelled", func(t *testing.T) {
		var a atomicState
		a.compareAndSwap(stateIncomplete, stateSuccess)
		if !a.trySetUncancellable(func() bool { return false }) {
			t.Fatal("expected true for a terminal, non-cancelled cell")
		}
	})

	t.Run("terminal and cancelled", func(t *testing.T) {
		var a atomicState
		a.compareAndSwap(stateIncomplete, stateFailure)
		if a.trySetUncancellable(func() bool { return true }) {
			t.Fatal("expected false for a cancelled cell")
		}
	})
}
