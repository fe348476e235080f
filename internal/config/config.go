package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Iron-Ham/tgen/internal/narrative"
	"github.com/spf13/viper"
)

// Config represents the complete tgen configuration
type Config struct {
	Narrative NarrativeConfig `mapstructure:"narrative" yaml:"narrative" toml:"narrative"`
	Script    ScriptConfig    `mapstructure:"script" yaml:"script" toml:"script"`
	TUI       TUIConfig       `mapstructure:"tui" yaml:"tui" toml:"tui"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging" toml:"logging"`
}

// NarrativeConfig holds phase timing and randomness tuning
type NarrativeConfig struct {
	// BootIntervalMs is the delay between boot log lines
	BootIntervalMs int `mapstructure:"boot_interval_ms" yaml:"boot_interval_ms" toml:"boot_interval_ms"`
	// BootSettleMs is the pause between the last boot line and collection
	BootSettleMs int `mapstructure:"boot_settle_ms" yaml:"boot_settle_ms" toml:"boot_settle_ms"`
	// CollectionDurationMs is the total length of the collection phase (default: 7 hours)
	CollectionDurationMs int64 `mapstructure:"collection_duration_ms" yaml:"collection_duration_ms" toml:"collection_duration_ms"`
	// CollectionTickMs is the collection tick period
	CollectionTickMs int `mapstructure:"collection_tick_ms" yaml:"collection_tick_ms" toml:"collection_tick_ms"`
	// BlackoutMs is how long the screen stays blank after collection
	BlackoutMs int `mapstructure:"blackout_ms" yaml:"blackout_ms" toml:"blackout_ms"`
	// FinalizeSettleMs is the pause after the final counter reaches 100
	FinalizeSettleMs int `mapstructure:"finalize_settle_ms" yaml:"finalize_settle_ms" toml:"finalize_settle_ms"`
	// FrameMs is the render frame interval driving the final counter
	FrameMs int `mapstructure:"frame_ms" yaml:"frame_ms" toml:"frame_ms"`

	LinkProbability    float64 `mapstructure:"link_probability" yaml:"link_probability" toml:"link_probability"`
	TaskProbability    float64 `mapstructure:"task_probability" yaml:"task_probability" toml:"task_probability"`
	TaskLogProbability float64 `mapstructure:"task_log_probability" yaml:"task_log_probability" toml:"task_log_probability"`

	// LogWindow is the number of log lines kept once collection appends
	LogWindow int `mapstructure:"log_window" yaml:"log_window" toml:"log_window"`
	// SpeedCurve bounds each final counter increment by the current value.
	// It may also be given as "threshold:bound,..." in env vars.
	SpeedCurve narrative.SpeedCurve `mapstructure:"speed_curve" yaml:"speed_curve" toml:"speed_curve"`
}

// ScriptConfig holds the text shown by the narrative
type ScriptConfig struct {
	BootLines     []string `mapstructure:"boot_lines" yaml:"boot_lines" toml:"boot_lines"`
	Tasks         []string `mapstructure:"tasks" yaml:"tasks" toml:"tasks"`
	InitialTask   string   `mapstructure:"initial_task" yaml:"initial_task" toml:"initial_task"`
	TaskLogFormat string   `mapstructure:"task_log_format" yaml:"task_log_format" toml:"task_log_format"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// AltScreen runs the TUI in the alternate screen buffer
	AltScreen bool `mapstructure:"alt_screen" yaml:"alt_screen" toml:"alt_screen"`
	// ProgressWidth is the width of the collection progress bar in columns
	ProgressWidth int `mapstructure:"progress_width" yaml:"progress_width" toml:"progress_width"`
	// RefreshMs is how often the TUI polls the narrative state
	RefreshMs int `mapstructure:"refresh_ms" yaml:"refresh_ms" toml:"refresh_ms"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled turns on the debug log file
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	// Level is the minimum level written: debug, info, warn, error
	Level string `mapstructure:"level" yaml:"level" toml:"level"`
	// Dir is where debug.log is written (default: <config dir>/logs)
	Dir string `mapstructure:"dir" yaml:"dir" toml:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Narrative: NarrativeConfig{
			BootIntervalMs:       60,
			BootSettleMs:         800,
			CollectionDurationMs: narrative.DefaultCollectionDuration.Milliseconds(),
			CollectionTickMs:     int(narrative.DefaultCollectionTick.Milliseconds()),
			BlackoutMs:           int(narrative.DefaultBlackout.Milliseconds()),
			FinalizeSettleMs:     1500,
			FrameMs:              16,
			LinkProbability:      narrative.DefaultLinkProbability,
			TaskProbability:      narrative.DefaultTaskProbability,
			TaskLogProbability:   narrative.DefaultTaskLogProbability,
			LogWindow:            narrative.DefaultLogWindow,
			SpeedCurve:           narrative.DefaultSpeedCurve(),
		},
		Script: ScriptConfig{
			BootLines:     narrative.DefaultBootScript(),
			Tasks:         narrative.DefaultTasks(),
			InitialTask:   narrative.DefaultInitialTask,
			TaskLogFormat: narrative.DefaultTaskLogFormat,
		},
		TUI: TUIConfig{
			AltScreen:     true,
			ProgressWidth: 60,
			RefreshMs:     50,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}

// BootInterval returns the boot line interval as a time.Duration
func (c *NarrativeConfig) BootInterval() time.Duration {
	return time.Duration(c.BootIntervalMs) * time.Millisecond
}

// BootSettle returns the boot settle delay as a time.Duration
func (c *NarrativeConfig) BootSettle() time.Duration {
	return time.Duration(c.BootSettleMs) * time.Millisecond
}

// CollectionDuration returns the collection length as a time.Duration
func (c *NarrativeConfig) CollectionDuration() time.Duration {
	return time.Duration(c.CollectionDurationMs) * time.Millisecond
}

// CollectionTick returns the collection tick period as a time.Duration
func (c *NarrativeConfig) CollectionTick() time.Duration {
	return time.Duration(c.CollectionTickMs) * time.Millisecond
}

// Blackout returns the blackout length as a time.Duration
func (c *NarrativeConfig) Blackout() time.Duration {
	return time.Duration(c.BlackoutMs) * time.Millisecond
}

// FinalizeSettle returns the completion delay as a time.Duration
func (c *NarrativeConfig) FinalizeSettle() time.Duration {
	return time.Duration(c.FinalizeSettleMs) * time.Millisecond
}

// Frame returns the frame interval as a time.Duration
func (c *NarrativeConfig) Frame() time.Duration {
	return time.Duration(c.FrameMs) * time.Millisecond
}

// Scaled returns a copy whose collection phase is factor times shorter.
// The other delays keep their length so the narrative stays readable.
// A factor below 2 is a no-op.
func (c NarrativeConfig) Scaled(factor int) NarrativeConfig {
	if factor < 2 {
		return c
	}
	c.CollectionDurationMs /= int64(factor)
	return c
}

// CollectionOptions converts the narrative and script settings into
// options for a narrative.CollectionEngine.
func (c *Config) CollectionOptions() narrative.CollectionOptions {
	return narrative.CollectionOptions{
		Duration:           c.Narrative.CollectionDuration(),
		Tick:               c.Narrative.CollectionTick(),
		LinkProbability:    c.Narrative.LinkProbability,
		TaskProbability:    c.Narrative.TaskProbability,
		TaskLogProbability: c.Narrative.TaskLogProbability,
		Tasks:              append([]string(nil), c.Script.Tasks...),
		TaskLogFormat:      c.Script.TaskLogFormat,
		LogWindow:          c.Narrative.LogWindow,
	}
}

// Refresh returns the TUI polling interval as a time.Duration
func (c *TUIConfig) Refresh() time.Duration {
	return time.Duration(c.RefreshMs) * time.Millisecond
}

// ResolveDir returns the log directory, defaulting to <config dir>/logs
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return filepath.Join(ConfigDir(), "logs")
}

// SetDefaults registers default values with viper
func SetDefaults() {
	SetDefaultsOn(viper.GetViper())
}

// SetDefaultsOn registers default values with v
func SetDefaultsOn(v *viper.Viper) {
	defaults := Default()

	// Narrative defaults
	v.SetDefault("narrative.boot_interval_ms", defaults.Narrative.BootIntervalMs)
	v.SetDefault("narrative.boot_settle_ms", defaults.Narrative.BootSettleMs)
	v.SetDefault("narrative.collection_duration_ms", defaults.Narrative.CollectionDurationMs)
	v.SetDefault("narrative.collection_tick_ms", defaults.Narrative.CollectionTickMs)
	v.SetDefault("narrative.blackout_ms", defaults.Narrative.BlackoutMs)
	v.SetDefault("narrative.finalize_settle_ms", defaults.Narrative.FinalizeSettleMs)
	v.SetDefault("narrative.frame_ms", defaults.Narrative.FrameMs)
	v.SetDefault("narrative.link_probability", defaults.Narrative.LinkProbability)
	v.SetDefault("narrative.task_probability", defaults.Narrative.TaskProbability)
	v.SetDefault("narrative.task_log_probability", defaults.Narrative.TaskLogProbability)
	v.SetDefault("narrative.log_window", defaults.Narrative.LogWindow)
	v.SetDefault("narrative.speed_curve", defaults.Narrative.SpeedCurve.String())

	// Script defaults
	v.SetDefault("script.boot_lines", defaults.Script.BootLines)
	v.SetDefault("script.tasks", defaults.Script.Tasks)
	v.SetDefault("script.initial_task", defaults.Script.InitialTask)
	v.SetDefault("script.task_log_format", defaults.Script.TaskLogFormat)

	// TUI defaults
	v.SetDefault("tui.alt_screen", defaults.TUI.AltScreen)
	v.SetDefault("tui.progress_width", defaults.TUI.ProgressWidth)
	v.SetDefault("tui.refresh_ms", defaults.TUI.RefreshMs)

	// Logging defaults
	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from the global viper instance and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v into a Config struct and validates it
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tgen")
	}
	// Fall back to ~/.config/tgen
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tgen"
	}
	return filepath.Join(home, ".config", "tgen")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
