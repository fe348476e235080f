package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "narrative.frame_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.validateNarrative()...)
	errors = append(errors, c.validateScript()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)
	return errors
}

func (c *Config) validateNarrative() []ValidationError {
	var errors []ValidationError
	n := c.Narrative

	positive := []struct {
		field string
		value int
	}{
		{"narrative.boot_interval_ms", n.BootIntervalMs},
		{"narrative.collection_tick_ms", n.CollectionTickMs},
		{"narrative.frame_ms", n.FrameMs},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "must be positive",
			})
		}
	}

	nonNegative := []struct {
		field string
		value int64
	}{
		{"narrative.boot_settle_ms", int64(n.BootSettleMs)},
		{"narrative.collection_duration_ms", n.CollectionDurationMs},
		{"narrative.blackout_ms", int64(n.BlackoutMs)},
		{"narrative.finalize_settle_ms", int64(n.FinalizeSettleMs)},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "must be non-negative",
			})
		}
	}

	probabilities := []struct {
		field string
		value float64
	}{
		{"narrative.link_probability", n.LinkProbability},
		{"narrative.task_probability", n.TaskProbability},
		{"narrative.task_log_probability", n.TaskLogProbability},
	}
	for _, p := range probabilities {
		if !(p.value >= 0 && p.value <= 1) {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "must be between 0 and 1",
			})
		}
	}

	if n.LogWindow < 1 {
		errors = append(errors, ValidationError{
			Field:   "narrative.log_window",
			Value:   n.LogWindow,
			Message: "must be at least 1",
		})
	}

	if err := n.SpeedCurve.Validate(); err != nil {
		errors = append(errors, ValidationError{
			Field:   "narrative.speed_curve",
			Value:   n.SpeedCurve.String(),
			Message: err.Error(),
		})
	}

	return errors
}

func (c *Config) validateScript() []ValidationError {
	var errors []ValidationError

	if len(c.Script.Tasks) == 0 {
		errors = append(errors, ValidationError{
			Field:   "script.tasks",
			Value:   c.Script.Tasks,
			Message: "must contain at least one task",
		})
	}
	if slices.Contains(c.Script.Tasks, "") {
		errors = append(errors, ValidationError{
			Field:   "script.tasks",
			Value:   c.Script.Tasks,
			Message: "must not contain empty labels",
		})
	}
	if strings.Count(c.Script.TaskLogFormat, "%s") != 1 || strings.Count(c.Script.TaskLogFormat, "%") != 1 {
		errors = append(errors, ValidationError{
			Field:   "script.task_log_format",
			Value:   c.Script.TaskLogFormat,
			Message: "must contain exactly one %s verb",
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.ProgressWidth < 10 || c.TUI.ProgressWidth > 200 {
		errors = append(errors, ValidationError{
			Field:   "tui.progress_width",
			Value:   c.TUI.ProgressWidth,
			Message: "must be between 10 and 200",
		})
	}
	if c.TUI.RefreshMs < 10 {
		errors = append(errors, ValidationError{
			Field:   "tui.refresh_ms",
			Value:   c.TUI.RefreshMs,
			Message: "must be at least 10",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
