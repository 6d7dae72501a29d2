package async

import "github.com/Tangerg/lynx/async/scheduler"

// ListenerFunc is a callback invoked once a Future reaches a terminal
// state. It never runs while any internal state lock is held (spec §4.2
// rule 4) and always runs on a Scheduler, never inline, except when the
// calling goroutine is already draining the same chain (trampoline.go).
type ListenerFunc[T any] func(Future[T])

// ProgressListenerFunc additionally receives incremental progress
// notifications before the terminal one (spec §3, §5). Percent is a
// caller-defined progress unit (commonly 0-100); extra carries
// producer-specific detail.
type ProgressListenerFunc[T any] func(percent float64, extra any)

// ListenerHandle identifies a previously added listener so it can be
// removed later. Go function values are not comparable, so unlike the
// Java-flavoured "equals() match" in spec §4.2, removal here is by the
// opaque handle OnCompleted/OnSuccess and the other OnXxx methods return
// rather than by comparing the
// callback itself.
type ListenerHandle[T any] struct {
	entry *listenerEntry[T]
}

// listenerEntry is one doubly-linked node in a cell's listener list,
// adapted from the doubly-linked hash-map node layout used by the
// teacher's pkg/maps.LinkedMap: O(1) append, O(1) removal given the node,
// and insertion-order iteration. The progressive chain is a second,
// independent doubly-linked thread through the same nodes so "all
// progressive listeners" can be walked without scanning the general list
// (spec §3, §9).
type listenerEntry[T any] struct {
	fn       ListenerFunc[T]
	progress ProgressListenerFunc[T]
	executor scheduler.Scheduler // nil => use the cell's own scheduler

	prev, next         *listenerEntry[T]
	progPrev, progNext *listenerEntry[T]
	attached           bool
}

// listenerList is the "small-object optimised" listener storage described
// in spec §9: zero listeners costs nothing beyond the empty struct, and
// growth is a plain doubly-linked list once more than one listener is
// attached. A real None/One/Many tag isn't needed in Go the way it would
// be to avoid allocation in Java — an empty linked list already has zero
// extra allocations beyond the list header — so this keeps one
// representation instead of three.
type listenerList[T any] struct {
	head, tail         *listenerEntry[T]
	progHead, progTail *listenerEntry[T]
	size               int
}

func (l *listenerList[T]) add(e *listenerEntry[T]) {
	e.attached = true
	if l.tail == nil {
		l.head, l.tail = e, e
	} else {
		e.prev = l.tail
		l.tail.next = e
		l.tail = e
	}
	l.size++

	if e.progress != nil {
		if l.progTail == nil {
			l.progHead, l.progTail = e, e
		} else {
			e.progPrev = l.progTail
			l.progTail.progNext = e
			l.progTail = e
		}
	}
}

// remove detaches e from both chains. It is idempotent: calling it twice
// on the same (already-detached) entry is a no-op.
func (l *listenerList[T]) remove(e *listenerEntry[T]) bool {
	if e == nil || !e.attached {
		return false
	}
	e.attached = false

	if e.prev != nil {
		e.prev.next = e.next
	} else if l.head == e {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else if l.tail == e {
		l.tail = e.prev
	}
	e.prev, e.next = nil, nil

	if e.progress != nil {
		if e.progPrev != nil {
			e.progPrev.progNext = e.progNext
		} else if l.progHead == e {
			l.progHead = e.progNext
		}
		if e.progNext != nil {
			e.progNext.progPrev = e.progPrev
		} else if l.progTail == e {
			l.progTail = e.progPrev
		}
		e.progPrev, e.progNext = nil, nil
	}

	l.size--
	return true
}

// drainAll detaches every entry and returns them in insertion order,
// leaving the list empty. Used by the dispatch loop so new listeners added
// during dispatch land in a fresh list rather than racing the snapshot
// being iterated.
func (l *listenerList[T]) drainAll() []*listenerEntry[T] {
	if l.size == 0 {
		return nil
	}
	out := make([]*listenerEntry[T], 0, l.size)
	for e := l.head; e != nil; e = e.next {
		e.attached = false
		out = append(out, e)
	}
	l.head, l.tail = nil, nil
	l.progHead, l.progTail = nil, nil
	l.size = 0
	return out
}

// progressiveListeners returns the progressive-only view in O(k) where k is
// the number of progressive listeners, independent of the general list's
// size (spec §3's "O(1) side-index" requirement, realized here as O(k)
// rather than a scan of all n listeners).
func (l *listenerList[T]) progressiveListeners() []*listenerEntry[T] {
	if l.progHead == nil {
		return nil
	}
	var out []*listenerEntry[T]
	for e := l.progHead; e != nil; e = e.progNext {
		out = append(out, e)
	}
	return out
}
