// Package errors provides the error vocabulary of the narrative engine.
//
// The engine has almost no failure domain: refused commands and disposed
// timers are handled locally and only ever logged. This package names those
// conditions so callers can recognise them and choose a log level.
//
// # Usage
//
//	err := errors.NewCommandError("start", errors.ErrAlreadyStarted)
//	if errors.Is(err, errors.ErrAlreadyStarted) { ... }
//
//	switch errors.GetSeverity(err) {
//	case errors.SeverityWarning:
//	    logger.Warn("command ignored", "error", err.Error())
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for conditions only interesting while debugging.
	SeverityDebug Severity = iota
	// SeverityInfo is for expected conditions worth a note.
	SeverityInfo
	// SeverityWarning is for ignored requests that point at a caller mistake.
	SeverityWarning
	// SeverityError is for conditions that break an invariant.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	// ErrAlreadyStarted indicates Start was called on a running narrative.
	ErrAlreadyStarted = New("narrative already started")
	// ErrTornDown indicates a command arrived after Teardown.
	ErrTornDown = New("narrative torn down")
	// ErrSchedulerClosed indicates the scheduler no longer accepts work.
	ErrSchedulerClosed = New("scheduler closed")
	// ErrInvalidTransition indicates a phase change outside the transition table.
	ErrInvalidTransition = New("invalid phase transition")
)

// CommandError records a controller command that was refused.
type CommandError struct {
	Command  string
	cause    error
	severity Severity
}

// NewCommandError wraps cause for the named command. The severity is derived
// from the cause: refused lifecycle commands are warnings, a closed scheduler
// is informational and anything else is an error.
func NewCommandError(command string, cause error) *CommandError {
	sev := SeverityError
	switch {
	case Is(cause, ErrAlreadyStarted), Is(cause, ErrTornDown):
		sev = SeverityWarning
	case Is(cause, ErrSchedulerClosed):
		sev = SeverityInfo
	}
	return &CommandError{Command: command, cause: cause, severity: sev}
}

// Error returns the formatted error message.
func (e *CommandError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s refused", e.Command)
	}
	return fmt.Sprintf("%s refused: %v", e.Command, e.cause)
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *CommandError) Severity() Severity {
	return e.severity
}

// GetSeverity returns the severity level of the error.
// Errors that carry no severity default to SeverityError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var sev interface{ Severity() Severity }
	if As(err, &sev) {
		return sev.Severity()
	}
	return SeverityError
}
