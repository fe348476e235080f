package narrative

import (
	"fmt"
	"math"
	"time"

	"github.com/Iron-Ham/tgen/internal/clock"
)

// Collection defaults.
const (
	DefaultCollectionDuration = 7 * time.Hour
	DefaultCollectionTick     = 100 * time.Millisecond
	DefaultLinkProbability    = 0.05
	DefaultTaskProbability    = 0.02
	DefaultTaskLogProbability = 0.60
)

// CollectionOptions configures a CollectionEngine.
type CollectionOptions struct {
	Duration time.Duration
	Tick     time.Duration

	// LinkProbability is the per-tick chance of finding 1 or 2 links.
	LinkProbability float64
	// TaskProbability is the per-tick chance of switching task label.
	TaskProbability float64
	// TaskLogProbability is the chance that a task switch is also logged.
	TaskLogProbability float64

	Tasks         []string
	TaskLogFormat string
	LogWindow     int
}

// DefaultCollectionOptions returns the reference tuning.
func DefaultCollectionOptions() CollectionOptions {
	return CollectionOptions{
		Duration:           DefaultCollectionDuration,
		Tick:               DefaultCollectionTick,
		LinkProbability:    DefaultLinkProbability,
		TaskProbability:    DefaultTaskProbability,
		TaskLogProbability: DefaultTaskLogProbability,
		Tasks:              DefaultTasks(),
		TaskLogFormat:      DefaultTaskLogFormat,
		LogWindow:          DefaultLogWindow,
	}
}

// Progress returns the collection ratio for elapsed out of total, in
// [0,100]. It reaches exactly 100 at elapsed == total and never before.
// A non-positive total is already complete.
func Progress(elapsed, total time.Duration) float64 {
	if total <= 0 || elapsed >= total {
		return Ceiling
	}
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(total) * Ceiling
	if p >= Ceiling {
		p = math.Nextafter(Ceiling, 0)
	}
	return p
}

// CollectionEngine simulates the hours-long collection task. Progress is
// sampled from elapsed scheduler time on every tick; link and task events are
// independent noise on top of it.
type CollectionEngine struct {
	sched clock.Scheduler
	sink  Sink
	rng   Rand
	opts  CollectionOptions

	started time.Time
	last    float64
	timers  clock.Group
	done    bool
	onDone  func()
}

// NewCollectionEngine creates an engine. Zero tick, format and window fall
// back to the defaults.
func NewCollectionEngine(sched clock.Scheduler, sink Sink, rng Rand, opts CollectionOptions) *CollectionEngine {
	if opts.Tick <= 0 {
		opts.Tick = DefaultCollectionTick
	}
	if opts.TaskLogFormat == "" {
		opts.TaskLogFormat = DefaultTaskLogFormat
	}
	if opts.LogWindow <= 0 {
		opts.LogWindow = DefaultLogWindow
	}
	opts.Tasks = append([]string(nil), opts.Tasks...)
	return &CollectionEngine{
		sched: sched,
		sink:  sink,
		rng:   rng,
		opts:  opts,
	}
}

// Start records the start time and begins ticking.
func (e *CollectionEngine) Start(onDone func()) {
	e.onDone = onDone
	e.started = e.sched.Now()
	e.timers.Add(e.sched.Every(e.opts.Tick, e.tick))
}

func (e *CollectionEngine) tick() {
	if e.done {
		return
	}

	elapsed := e.sched.Now().Sub(e.started)
	p := Progress(elapsed, e.opts.Duration)
	if p < e.last {
		p = e.last
	}
	e.last = p
	e.sink.SetProgress(p)

	if e.rng.Float64() < e.opts.LinkProbability {
		e.sink.AddLinks(1 + e.rng.IntN(2))
	}

	if len(e.opts.Tasks) > 0 && e.rng.Float64() < e.opts.TaskProbability {
		label := e.opts.Tasks[e.rng.IntN(len(e.opts.Tasks))]
		e.sink.SetTask(label)
		if e.rng.Float64() < e.opts.TaskLogProbability {
			e.sink.AppendWindowedLog(fmt.Sprintf(e.opts.TaskLogFormat, label), e.opts.LogWindow)
		}
	}

	if elapsed >= e.opts.Duration {
		e.finish()
	}
}

func (e *CollectionEngine) finish() {
	e.Stop()
	if e.onDone != nil {
		done := e.onDone
		e.onDone = nil
		done()
	}
}

// Stop cancels ticking. No further sink calls are made afterwards.
func (e *CollectionEngine) Stop() {
	e.done = true
	e.timers.StopAll()
}

// Progress returns the last sampled progress.
func (e *CollectionEngine) Progress() float64 {
	return e.last
}
