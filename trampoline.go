package async

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"

	uatomic "go.uber.org/atomic"
)

// goroutineID returns a cheap, process-local identifier for the calling
// goroutine. It exists solely so the dispatch trampoline (below) can
// recognize "this goroutine is already draining a cell" without a language
// primitive for thread-local storage. It carries no meaning outside this
// file and must never be exposed or used for anything but that check.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseInt(string(b), 10, 64)
	return id
}

// trampoline flattens what would otherwise be recursive
// drain -> listener -> complete -> drain chains into a loop, bounding stack
// growth for long combinator chains (spec §4.2 rule 5). It is keyed per
// goroutine: a cell completed synchronously from inside a listener that is
// itself running as part of another cell's drain loop on the SAME goroutine
// piggy-backs on that outer loop instead of starting a nested one.
type trampoline struct {
	pending []cellBase
}

var (
	activeTrampolines   sync.Map // goroutineID (int64) -> *trampoline
	activeTrampolineCnt uatomic.Int64
)

// cellBase is the non-generic surface a trampoline needs to drive drains
// without depending on the result type T.
type cellBase interface {
	drainNow()
}

// scheduleDrain is called exactly once per completed cell, immediately
// after its state transition succeeds. It either runs the cell's drain loop
// right now (starting a fresh trampoline for this goroutine) or, if this
// goroutine is already inside another cell's drain loop, enqueues the cell
// onto that outer loop's pending list.
func scheduleDrain(c cellBase) {
	gid := goroutineID()
	if v, ok := activeTrampolines.Load(gid); ok {
		tr := v.(*trampoline)
		tr.pending = append(tr.pending, c)
		return
	}

	tr := &trampoline{}
	activeTrampolines.Store(gid, tr)
	activeTrampolineCnt.Inc()
	defer func() {
		activeTrampolines.Delete(gid)
		activeTrampolineCnt.Dec()
	}()

	c.drainNow()
	for len(tr.pending) > 0 {
		next := tr.pending[0]
		tr.pending = tr.pending[1:]
		next.drainNow()
	}
}

// activeTrampolineCount reports how many goroutines currently have an
// active drain loop. Only this package's tests read it; it is not part of
// the correctness contract.
func activeTrampolineCount() int64 {
	return activeTrampolineCnt.Load()
}
