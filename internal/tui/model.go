package tui

import (
	"time"

	"github.com/Iron-Ham/tgen/internal/config"
	"github.com/Iron-Ham/tgen/internal/controller"
	"github.com/Iron-Ham/tgen/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Narrative is the part of the controller the TUI drives.
type Narrative interface {
	Snapshot() controller.Snapshot
	Reset()
}

// Model is the Bubbletea model. It never mutates narrative state; it polls
// snapshots and forwards the reset key.
type Model struct {
	narrative Narrative
	refresh   time.Duration

	snap     controller.Snapshot
	keys     keyMap
	help     help.Model
	progress progress.Model
	spinner  spinner.Model

	width    int
	height   int
	quitting bool
}

// NewModel creates a model polling n every cfg.Refresh().
func NewModel(n Narrative, cfg config.TUIConfig) Model {
	refresh := cfg.Refresh()
	if refresh <= 0 {
		refresh = 50 * time.Millisecond
	}
	width := cfg.ProgressWidth
	if width <= 0 {
		width = 60
	}

	bar := progress.New(
		progress.WithGradient(string(styles.PrimaryColor), string(styles.SecondaryColor)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Primary),
	)

	return Model{
		narrative: n,
		refresh:   refresh,
		snap:      n.Snapshot(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		progress:  bar,
		spinner:   spin,
	}
}

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts polling and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.refresh), m.spinner.Tick)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if limit := msg.Width - 4; limit > 0 && m.progress.Width > limit {
			m.progress.Width = limit
		}
		return m, nil

	case tickMsg:
		m.snap = m.narrative.Snapshot()
		return m, tick(m.refresh)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			m.narrative.Reset()
			return m, nil
		}
	}
	return m, nil
}
