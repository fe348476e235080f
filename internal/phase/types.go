// Package phase defines the stages of the narrative and the state machine
// that orders them.
package phase

import (
	"slices"
	"time"

	"github.com/Iron-Ham/tgen/internal/errors"
)

// Phase represents a discrete stage of the narrative.
type Phase string

const (
	// Boot replays the boot script into the log.
	Boot Phase = "boot"

	// Collecting runs the hours-long progress counter with side chatter.
	Collecting Phase = "collecting"

	// Blackout is the dark pause between collection and the final count.
	Blackout Phase = "blackout"

	// Finalizing animates the high-precision final counter.
	Finalizing Phase = "finalizing"

	// Complete is terminal until the narrative is reset.
	Complete Phase = "complete"
)

// AllPhases returns all defined phases in narrative order.
func AllPhases() []Phase {
	return []Phase{Boot, Collecting, Blackout, Finalizing, Complete}
}

// IsTerminal returns true if the phase is Complete.
func (p Phase) IsTerminal() bool {
	return p == Complete
}

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// Next returns the phase that follows p, or false if p is terminal or unknown.
func (p Phase) Next() (Phase, bool) {
	targets := ValidTransitions[p]
	if len(targets) == 0 {
		return "", false
	}
	return targets[0], true
}

// ValidTransitions is the canonical transition table. Reset back to Boot is
// not listed; it is a separate command that discards the current run.
var ValidTransitions = map[Phase][]Phase{
	Boot:       {Collecting},
	Collecting: {Blackout},
	Blackout:   {Finalizing},
	Finalizing: {Complete},
	Complete:   {},
}

// CanTransition checks whether moving from one phase to another is allowed.
func CanTransition(from, to Phase) bool {
	targets, ok := ValidTransitions[from]
	if !ok {
		return false
	}
	return slices.Contains(targets, to)
}

// Transition records a single phase change.
type Transition struct {
	// From is empty for the initial entry into Boot.
	From Phase `json:"from,omitempty"`
	To   Phase `json:"to"`

	// At is the scheduler time at which the transition happened.
	At time.Time `json:"at"`
}

// TransitionError reports a refused phase change.
type TransitionError struct {
	From Phase
	To   Phase
}

func (e *TransitionError) Error() string {
	return "phase transition from " + string(e.From) + " to " + string(e.To) + " refused"
}

func (e *TransitionError) Unwrap() error {
	return errors.ErrInvalidTransition
}

// Check returns a *TransitionError if from→to is not in ValidTransitions.
func Check(from, to Phase) error {
	if CanTransition(from, to) {
		return nil
	}
	return &TransitionError{From: from, To: to}
}
