package clock

import "time"

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// Timer is a handle to a live periodic or one-shot callback.
// Stop is idempotent and safe to call on a timer that already fired.
type Timer interface {
	Stop()
}

// Scheduler is the cooperative scheduling primitive shared by all phase
// components. Implementations run every callback sequentially.
type Scheduler interface {
	// Now returns the scheduler's notion of the current time.
	Now() time.Time

	// Every invokes fn once per interval until the returned Timer is stopped.
	Every(interval time.Duration, fn func()) Timer

	// After invokes fn once after delay. The timer disposes itself after firing.
	After(delay time.Duration, fn func()) Timer

	// NextFrame invokes fn once on the next render frame.
	NextFrame(fn func()) Timer

	// Post queues fn to run on the scheduler thread. It returns false if the
	// scheduler no longer accepts work.
	Post(fn func()) bool
}

type stoppedTimer struct{}

func (stoppedTimer) Stop() {}

// Stopped is a Timer that is already disposed. Schedulers hand it out once
// they have been closed.
var Stopped Timer = stoppedTimer{}
