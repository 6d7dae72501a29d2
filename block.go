package async

import (
	"time"

	"github.com/Tangerg/lynx/async/pkg/ptr"
)

// Join blocks forever for source's result, returning the value on success
// or the cause (via Sync's unwrapped rules) on failure (spec §4.3).
func (f Future[T]) Join() (T, error) { return f.Sync(0) }

// JoinTimeout is Join bounded by deadline; it raises TimeoutFailure if
// deadline elapses first.
func (f Future[T]) JoinTimeout(deadline time.Duration) (T, error) { return f.Sync(deadline) }

// Block blocks forever for source's result, returning a pointer to the
// value on success or nil on failure (spec §4.3: "block returns an
// optional"). Use GetCause afterwards to distinguish "failed" from
// "succeeded with the zero value".
func (f Future[T]) Block() *T {
	v, err := f.Sync(0)
	if err != nil {
		return nil
	}
	return ptr.Pointer(v)
}

// BlockTimeout is Block bounded by deadline; it also returns nil if the
// deadline elapses before source completes.
func (f Future[T]) BlockTimeout(deadline time.Duration) *T {
	v, err := f.Sync(deadline)
	if err != nil {
		return nil
	}
	return ptr.Pointer(v)
}
