package narrative

import (
	"time"

	"github.com/Iron-Ham/tgen/internal/clock"
)

// DefaultBlackout is the length of the dark pause.
const DefaultBlackout = 3500 * time.Millisecond

// Blackout is a single pause with no visible state change.
type Blackout struct {
	sched    clock.Scheduler
	duration time.Duration
	timer    clock.Timer
}

// NewBlackout creates a pause of duration. Negative durations are treated as
// zero.
func NewBlackout(sched clock.Scheduler, duration time.Duration) *Blackout {
	if duration < 0 {
		duration = 0
	}
	return &Blackout{sched: sched, duration: duration}
}

// Start arms the pause; onDone runs once when it elapses.
func (b *Blackout) Start(onDone func()) {
	b.timer = b.sched.After(b.duration, func() {
		b.timer = nil
		if onDone != nil {
			onDone()
		}
	})
}

// Stop cancels the pause if it is still pending.
func (b *Blackout) Stop() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
