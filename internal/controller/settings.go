package controller

import (
	"time"

	"github.com/Iron-Ham/tgen/internal/config"
	"github.com/Iron-Ham/tgen/internal/narrative"
)

// Settings holds everything the controller needs to build the phase
// components of one run. A run keeps the Settings it started with;
// Reconfigure only affects the next run.
type Settings struct {
	BootScript     []string
	BootInterval   time.Duration
	BootSettle     time.Duration
	Collection     narrative.CollectionOptions
	Blackout       time.Duration
	FinalizeSettle time.Duration
	Curve          narrative.SpeedCurve
	InitialTask    string
}

// DefaultSettings returns the reference narrative.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.Default())
}

// SettingsFromConfig converts a loaded configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		BootScript:     append([]string(nil), cfg.Script.BootLines...),
		BootInterval:   cfg.Narrative.BootInterval(),
		BootSettle:     cfg.Narrative.BootSettle(),
		Collection:     cfg.CollectionOptions(),
		Blackout:       cfg.Narrative.Blackout(),
		FinalizeSettle: cfg.Narrative.FinalizeSettle(),
		Curve:          append(narrative.SpeedCurve(nil), cfg.Narrative.SpeedCurve...),
		InitialTask:    cfg.Script.InitialTask,
	}
}
