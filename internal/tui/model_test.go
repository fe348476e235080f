package tui

import (
	"strings"
	"testing"

	"github.com/Iron-Ham/tgen/internal/config"
	"github.com/Iron-Ham/tgen/internal/controller"
	"github.com/Iron-Ham/tgen/internal/phase"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeNarrative struct {
	snap   controller.Snapshot
	resets int
}

func (f *fakeNarrative) Snapshot() controller.Snapshot { return f.snap }
func (f *fakeNarrative) Reset()                        { f.resets++ }

func newTestModel(snap controller.Snapshot) (Model, *fakeNarrative) {
	n := &fakeNarrative{snap: snap}
	m := NewModel(n, config.Default().TUI)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), n
}

func TestModel_TickRefreshesSnapshot(t *testing.T) {
	m, n := newTestModel(controller.Snapshot{Phase: phase.Boot})
	n.snap = controller.Snapshot{Phase: phase.Collecting, Progress: 42.5}

	updated, cmd := m.Update(tickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if got := updated.(Model).snap.Phase; got != phase.Collecting {
		t.Errorf("snapshot phase = %q, want collecting", got)
	}
}

func TestModel_ResetKey(t *testing.T) {
	m, n := newTestModel(controller.Snapshot{Phase: phase.Complete})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if n.resets != 1 {
		t.Errorf("resets = %d, want 1", n.resets)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	}
	for _, k := range keys {
		t.Run(k.String(), func(t *testing.T) {
			m, _ := newTestModel(controller.Snapshot{Phase: phase.Boot})
			updated, cmd := m.Update(k)
			if cmd == nil {
				t.Fatal("quit key should return a command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("quit key should return tea.Quit")
			}
			if updated.(Model).View() != "" {
				t.Error("view should be empty after quitting")
			}
		})
	}
}

func TestModel_View(t *testing.T) {
	tests := []struct {
		name     string
		snap     controller.Snapshot
		contains []string
		empty    bool
	}{
		{
			name:     "boot shows logs",
			snap:     controller.Snapshot{Phase: phase.Boot, Logs: []string{"[INIT] Starting T-Gen Scraper v4.5.2..."}},
			contains: []string{"BOOT", "Starting T-Gen Scraper"},
		},
		{
			name: "collecting shows metrics",
			snap: controller.Snapshot{
				Phase:       phase.Collecting,
				Progress:    12.3456789,
				LinksFound:  42,
				CurrentTask: "Parsing HTML content...",
			},
			contains: []string{"COLLECTING", "12.345679%", "42", "Parsing HTML content..."},
		},
		{
			name:  "blackout is blank",
			snap:  controller.Snapshot{Phase: phase.Blackout, Progress: 100},
			empty: true,
		},
		{
			name:     "finalizing shows five decimals",
			snap:     controller.Snapshot{Phase: phase.Finalizing, FinalPercent: 87.123456},
			contains: []string{"FINALIZING", "87.12346%"},
		},
		{
			name:     "complete shows banner",
			snap:     controller.Snapshot{Phase: phase.Complete, LinksFound: 7, FinalPercent: 100},
			contains: []string{"COLLECTION COMPLETE", "restart"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(tt.snap)
			view := m.View()
			if tt.empty {
				if view != "" {
					t.Errorf("View() = %q, want empty", view)
				}
				return
			}
			for _, want := range tt.contains {
				if !strings.Contains(view, want) {
					t.Errorf("View() missing %q\n%s", want, view)
				}
			}
		})
	}
}

func TestModel_ViewKeepsNewestLogs(t *testing.T) {
	logs := make([]string, 30)
	for i := range logs {
		logs[i] = "[INFO] line " + string(rune('A'+i%26))
	}
	logs[29] = "[INFO] newest"
	logs[0] = "[INFO] oldest"

	n := &fakeNarrative{snap: controller.Snapshot{Phase: phase.Boot, Logs: logs}}
	m := NewModel(n, config.Default().TUI)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	view := updated.(Model).View()

	if !strings.Contains(view, "newest") {
		t.Error("newest log line should be visible")
	}
	if strings.Contains(view, "oldest") {
		t.Error("oldest log line should be scrolled off")
	}
}
