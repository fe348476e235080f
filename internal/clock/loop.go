package clock

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
)

// queueSize bounds how many callbacks may wait for the loop goroutine.
// Producers block once it fills, which throttles tickers on a slow consumer.
const queueSize = 256

// Loop is a wall-clock Scheduler that executes every callback on one
// goroutine. Timers are backed by the runtime's timers; their callbacks are
// queued onto the loop rather than run on the timer goroutine.
//
// Every, After and NextFrame must be called from the loop goroutine (that is,
// from inside a callback or a posted function) or before any timer is live.
// Post, Sync and Close may be called from any goroutine.
type Loop struct {
	frame time.Duration
	queue chan func()
	done  chan struct{}

	closed    atomic.Bool
	closeOnce sync.Once
	wg        conc.WaitGroup
}

// NewLoop starts a Loop. A non-positive frame uses DefaultFrameInterval.
func NewLoop(frame time.Duration) *Loop {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	l := &Loop{
		frame: frame,
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
	l.wg.Go(l.run)
	return l
}

func (l *Loop) run() {
	for {
		select {
		case <-l.done:
			return
		case fn := <-l.queue:
			if l.closed.Load() {
				return
			}
			fn()
		}
	}
}

// Now returns the wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post queues fn behind any callbacks already waiting.
func (l *Loop) Post(fn func()) bool {
	if l.closed.Load() {
		return false
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Sync blocks until every function posted before the call has run.
// It returns false if the loop was closed first.
func (l *Loop) Sync() bool {
	ran := make(chan struct{})
	if !l.Post(func() { close(ran) }) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

// Every starts a periodic timer. Ticks that arrive while the loop is busy
// wait in the command queue; once queueSize callbacks are pending the
// ticker goroutine blocks and the runtime ticker drops further ticks.
func (l *Loop) Every(interval time.Duration, fn func()) Timer {
	if l.closed.Load() {
		return Stopped
	}
	if interval <= 0 {
		interval = time.Millisecond
	}

	t := &loopTimer{cancel: make(chan struct{})}
	tick := func() {
		if !t.stopped.Load() {
			fn()
		}
	}

	l.wg.Go(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.cancel:
				return
			case <-l.done:
				return
			case <-ticker.C:
				if !l.Post(tick) {
					return
				}
			}
		}
	})
	return t
}

// After starts a one-shot timer.
func (l *Loop) After(delay time.Duration, fn func()) Timer {
	if l.closed.Load() {
		return Stopped
	}
	if delay < 0 {
		delay = 0
	}

	t := &loopTimer{}
	fire := func() {
		// CompareAndSwap marks the timer disposed as it fires, so a later
		// Stop is a no-op and the callback can never run twice.
		if t.stopped.CompareAndSwap(false, true) {
			fn()
		}
	}
	t.timer = time.AfterFunc(delay, func() {
		l.Post(fire)
	})
	return t
}

// NextFrame schedules fn one frame interval from now.
func (l *Loop) NextFrame(fn func()) Timer {
	return l.After(l.frame, fn)
}

// Close stops the loop goroutine and every ticker goroutine, then waits for
// them to exit. Pending callbacks are discarded. Close must not be called
// from a loop callback.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
	l.wg.Wait()
}

type loopTimer struct {
	stopped atomic.Bool
	once    sync.Once
	timer   *time.Timer
	cancel  chan struct{}
}

func (t *loopTimer) Stop() {
	t.once.Do(func() {
		t.stopped.Store(true)
		if t.timer != nil {
			t.timer.Stop()
		}
		if t.cancel != nil {
			close(t.cancel)
		}
	})
}
