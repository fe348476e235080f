package narrative

import (
	"time"

	"github.com/Iron-Ham/tgen/internal/clock"
)

// DefaultBootInterval is the delay between two boot lines.
const DefaultBootInterval = 60 * time.Millisecond

// BootPlayer replays a fixed script into the log, one line per tick.
type BootPlayer struct {
	sched    clock.Scheduler
	sink     Sink
	script   []string
	interval time.Duration

	timers  clock.Group
	next    int
	stopped bool
	onDone  func()
}

// NewBootPlayer creates a player for script. A non-positive interval uses
// DefaultBootInterval.
func NewBootPlayer(sched clock.Scheduler, sink Sink, script []string, interval time.Duration) *BootPlayer {
	if interval <= 0 {
		interval = DefaultBootInterval
	}
	return &BootPlayer{
		sched:    sched,
		sink:     sink,
		script:   append([]string(nil), script...),
		interval: interval,
	}
}

// Start begins playback. onDone runs right after the last line is appended;
// an empty script completes on the first tick.
func (b *BootPlayer) Start(onDone func()) {
	b.onDone = onDone
	b.timers.Add(b.sched.Every(b.interval, b.tick))
}

func (b *BootPlayer) tick() {
	if b.stopped {
		return
	}
	if b.next < len(b.script) {
		b.sink.AppendLog(b.script[b.next])
		b.next++
	}
	if b.next >= len(b.script) {
		b.finish()
	}
}

func (b *BootPlayer) finish() {
	b.Stop()
	if b.onDone != nil {
		done := b.onDone
		b.onDone = nil
		done()
	}
}

// Stop halts playback; remaining lines are never emitted.
func (b *BootPlayer) Stop() {
	b.stopped = true
	b.timers.StopAll()
}

// Emitted returns how many script lines have been appended so far.
func (b *BootPlayer) Emitted() int {
	return b.next
}
