package download

import "sync/atomic"

// CancelToken signals cooperative cancellation of a single download
// attempt. The token is polled at each progress event, so cancellation
// latency equals the time to the next event.
type CancelToken struct {
	cancelled atomic.Bool
}

func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel requests the download stop at the next progress event. Safe to
// call from another goroutine; the CLI cancels from its signal handler.
func (t *CancelToken) Cancel() {
	t.cancelled.Store(true)
}

func (t *CancelToken) Cancelled() bool {
	return t.cancelled.Load()
}
