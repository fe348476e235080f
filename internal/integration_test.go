// Package internal contains integration tests that verify the narrative
// packages work together: configuration feeds the controller, the controller
// drives the phase components on a scheduler, and observers follow along
// through the event bus.
package internal

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/tgen/internal/clock"
	"github.com/Iron-Ham/tgen/internal/config"
	"github.com/Iron-Ham/tgen/internal/controller"
	"github.com/Iron-Ham/tgen/internal/event"
	"github.com/Iron-Ham/tgen/internal/narrative"
	"github.com/Iron-Ham/tgen/internal/phase"
	"github.com/Iron-Ham/tgen/internal/tui"
	"github.com/spf13/viper"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const integrationConfig = `
narrative:
  collection_duration_ms: 2000
  collection_tick_ms: 100
  link_probability: 1
  speed_curve: "0:10"
script:
  boot_lines:
    - "[BOOT] loading"
    - "[BOOT] ready"
  tasks:
    - "Crawling mirrors"
`

func loadConfig(t *testing.T, body string) *config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaultsOn(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(body)); err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	cfg, err := config.LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	return cfg
}

// TestNarrativeIntegration runs a configured narrative end to end on a
// virtual clock and checks what an observer on the bus sees.
func TestNarrativeIntegration(t *testing.T) {
	cfg := loadConfig(t, integrationConfig)
	settings := controller.SettingsFromConfig(cfg)

	m := clock.NewManual(epoch)
	m.SetFrameInterval(cfg.Narrative.Frame())

	bus := event.NewBus()
	var (
		mu     sync.Mutex
		phases []phase.Phase
	)
	bus.Subscribe(event.TypePhaseChanged, func(e event.Event) {
		mu.Lock()
		defer mu.Unlock()
		phases = append(phases, e.(event.PhaseChangedEvent).To)
	})

	var out bytes.Buffer
	renderer := tui.NewPlainRenderer(&out, time.Second)
	renderer.Attach(bus)
	defer renderer.Detach()

	ctrl := controller.New(controller.Options{
		Scheduler: m,
		Settings:  &settings,
		Rand:      narrative.NewSequence(0.5),
		Bus:       bus,
	})
	ctrl.Start()

	if _, ok := m.AdvanceUntil(func() bool { return ctrl.Snapshot().Phase == phase.Complete }, time.Hour); !ok {
		t.Fatal("narrative did not complete")
	}

	snap := ctrl.Snapshot()
	if snap.Progress != 100 {
		t.Errorf("Progress = %v, want 100", snap.Progress)
	}
	if snap.FinalPercent != 100 {
		t.Errorf("FinalPercent = %v, want 100", snap.FinalPercent)
	}
	if snap.LinksFound != 40 {
		t.Errorf("LinksFound = %d, want 40 (two per tick)", snap.LinksFound)
	}

	mu.Lock()
	got := append([]phase.Phase(nil), phases...)
	mu.Unlock()
	want := phase.AllPhases()
	if len(got) != len(want) {
		t.Fatalf("observed phases %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phase[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	text := out.String()
	for _, line := range []string{"== boot ==", "[BOOT] loading", "[BOOT] ready", "== collecting ==", "progress 100.000000%", "final 100.00000%", "== complete =="} {
		if !strings.Contains(text, line) {
			t.Errorf("plain output missing %q", line)
		}
	}

	// A reconfigured script takes effect on the next reset
	next := settings
	next.BootScript = []string{"[BOOT] second run"}
	ctrl.Reconfigure(next)
	ctrl.Reset()

	if _, ok := m.AdvanceUntil(func() bool { return ctrl.Snapshot().Phase == phase.Collecting }, time.Minute); !ok {
		t.Fatal("second run did not reach collecting")
	}
	logs := ctrl.Snapshot().Logs
	if len(logs) == 0 || logs[0] != "[BOOT] second run" {
		t.Errorf("logs after reset = %v", logs)
	}
	if !strings.Contains(out.String(), "-- reset --") {
		t.Error("plain output missing reset marker")
	}

	ctrl.Teardown()
	if n := m.Pending(); n != 0 {
		t.Errorf("%d timers pending after teardown", n)
	}
}

// TestNarrativeIntegration_Teardown checks that tearing down mid-run stops
// every component and silences the bus.
func TestNarrativeIntegration_Teardown(t *testing.T) {
	cfg := loadConfig(t, integrationConfig)
	settings := controller.SettingsFromConfig(cfg)

	m := clock.NewManual(epoch)
	bus := event.NewBus()
	ctrl := controller.New(controller.Options{
		Scheduler: m,
		Settings:  &settings,
		Rand:      narrative.NewSequence(0.5),
		Bus:       bus,
	})
	ctrl.Start()
	m.Advance(1500 * time.Millisecond)

	if ctrl.Snapshot().Phase != phase.Collecting {
		t.Fatalf("phase = %s, want collecting", ctrl.Snapshot().Phase)
	}

	ctrl.Teardown()

	var after int
	bus.SubscribeAll(func(event.Event) { after++ })
	m.Advance(time.Hour)

	if after != 0 {
		t.Errorf("%d events published after teardown", after)
	}
	if !ctrl.Snapshot().TornDown {
		t.Error("snapshot should report torn down")
	}
}
