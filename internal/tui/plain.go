package tui

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/Iron-Ham/tgen/internal/event"
)

// DefaultSampleInterval is how often the plain renderer prints collection
// metrics, in narrative time.
const DefaultSampleInterval = 10 * time.Second

// PlainRenderer prints narrative events as plain lines. It is used when
// stdout is not a terminal.
type PlainRenderer struct {
	w              io.Writer
	sampleInterval time.Duration

	mu         sync.Mutex
	bus        *event.Bus
	subID      string
	lastSample time.Time
	lastFinal  int
}

// NewPlainRenderer creates a renderer writing to w. A non-positive interval
// uses DefaultSampleInterval.
func NewPlainRenderer(w io.Writer, sampleInterval time.Duration) *PlainRenderer {
	if sampleInterval <= 0 {
		sampleInterval = DefaultSampleInterval
	}
	return &PlainRenderer{w: w, sampleInterval: sampleInterval, lastFinal: -1}
}

// Attach subscribes to every event on bus.
func (r *PlainRenderer) Attach(bus *event.Bus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bus = bus
	r.subID = bus.SubscribeAll(r.handle)
}

// Detach unsubscribes from the bus. It is safe to call more than once.
func (r *PlainRenderer) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bus != nil {
		r.bus.Unsubscribe(r.subID)
		r.bus = nil
	}
}

func (r *PlainRenderer) handle(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := e.(type) {
	case event.PhaseChangedEvent:
		r.printf("== %s ==\n", e.To)
		r.lastSample = time.Time{}
		r.lastFinal = -1
	case event.LogAppendedEvent:
		r.printf("%s\n", e.Line)
	case event.CollectionSampledEvent:
		if !r.lastSample.IsZero() && e.Timestamp().Sub(r.lastSample) < r.sampleInterval && e.Progress < 100 {
			return
		}
		r.lastSample = e.Timestamp()
		r.printf("progress %.6f%%  links %d  task %s\n", e.Progress, e.LinksFound, e.CurrentTask)
	case event.FinalSteppedEvent:
		whole := int(math.Floor(e.Percent))
		if whole == r.lastFinal {
			return
		}
		r.lastFinal = whole
		r.printf("final %.5f%%\n", e.Percent)
	case event.ResetEvent:
		r.printf("-- reset --\n")
	case event.TeardownEvent:
		r.printf("-- stopped --\n")
	}
}

func (r *PlainRenderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}
