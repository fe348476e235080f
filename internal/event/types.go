package event

import (
	"time"

	"github.com/Iron-Ham/tgen/internal/phase"
)

// Event type identifiers.
const (
	TypePhaseChanged     = "phase.changed"
	TypeLogAppended      = "log.appended"
	TypeCollectionSample = "collection.sampled"
	TypeFinalStepped     = "final.stepped"
	TypeReset            = "narrative.reset"
	TypeTeardown         = "narrative.teardown"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a "category.action" identifier.
	EventType() string

	// Timestamp returns the scheduler time at which the event occurred.
	// Under a virtual clock this is virtual time.
	Timestamp() time.Time
}

type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// PhaseChangedEvent is emitted after the controller enters a new phase.
// From is empty when Boot is entered by Start or Reset.
type PhaseChangedEvent struct {
	baseEvent
	From phase.Phase
	To   phase.Phase
}

// NewPhaseChangedEvent creates a PhaseChangedEvent.
func NewPhaseChangedEvent(at time.Time, from, to phase.Phase) PhaseChangedEvent {
	return PhaseChangedEvent{
		baseEvent: baseEvent{eventType: TypePhaseChanged, timestamp: at},
		From:      from,
		To:        to,
	}
}

// LogAppendedEvent is emitted for every new log line.
type LogAppendedEvent struct {
	baseEvent
	Line string
	// Dropped is how many old lines the sliding window discarded.
	Dropped int
}

// NewLogAppendedEvent creates a LogAppendedEvent.
func NewLogAppendedEvent(at time.Time, line string, dropped int) LogAppendedEvent {
	return LogAppendedEvent{
		baseEvent: baseEvent{eventType: TypeLogAppended, timestamp: at},
		Line:      line,
		Dropped:   dropped,
	}
}

// CollectionSampledEvent carries the collection metrics after a change.
type CollectionSampledEvent struct {
	baseEvent
	Progress    float64
	LinksFound  int
	CurrentTask string
}

// NewCollectionSampledEvent creates a CollectionSampledEvent.
func NewCollectionSampledEvent(at time.Time, progress float64, links int, task string) CollectionSampledEvent {
	return CollectionSampledEvent{
		baseEvent:   baseEvent{eventType: TypeCollectionSample, timestamp: at},
		Progress:    progress,
		LinksFound:  links,
		CurrentTask: task,
	}
}

// FinalSteppedEvent carries the final counter after a step.
type FinalSteppedEvent struct {
	baseEvent
	Percent float64
}

// NewFinalSteppedEvent creates a FinalSteppedEvent.
func NewFinalSteppedEvent(at time.Time, percent float64) FinalSteppedEvent {
	return FinalSteppedEvent{
		baseEvent: baseEvent{eventType: TypeFinalStepped, timestamp: at},
		Percent:   percent,
	}
}

// ResetEvent is emitted after observable state was cleared by Reset.
type ResetEvent struct {
	baseEvent
}

// NewResetEvent creates a ResetEvent.
func NewResetEvent(at time.Time) ResetEvent {
	return ResetEvent{baseEvent: baseEvent{eventType: TypeReset, timestamp: at}}
}

// TeardownEvent is emitted once when the controller is torn down.
type TeardownEvent struct {
	baseEvent
}

// NewTeardownEvent creates a TeardownEvent.
func NewTeardownEvent(at time.Time) TeardownEvent {
	return TeardownEvent{baseEvent: baseEvent{eventType: TypeTeardown, timestamp: at}}
}
