package tui

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/tgen/internal/phase"
	"github.com/Iron-Ham/tgen/internal/tui/styles"
	"github.com/Iron-Ham/tgen/internal/util"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	title = "T-GEN SCRAPER"

	// rows used by header, metrics and help bar around the log box
	chromeHeight = 12
	minLogRows   = 4
)

// View renders the current snapshot
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.snap.Phase {
	case phase.Blackout:
		// The screen stays dark on purpose.
		return ""
	case phase.Boot:
		body = m.renderBoot()
	case phase.Collecting:
		body = m.renderCollecting()
	case phase.Finalizing:
		body = m.renderFinalizing()
	case phase.Complete:
		body = m.renderComplete()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		styles.HelpBar.Render(m.help.View(m.keys)),
	)
}

func (m Model) renderHeader() string {
	badge := styles.PhaseBadge.
		Background(styles.PhaseColor(m.snap.Phase.String())).
		Render(strings.ToUpper(m.snap.Phase.String()))
	return styles.Header.Render(title + "  " + badge)
}

func (m Model) renderBoot() string {
	status := m.spinner.View() + " " + styles.Muted.Render("booting...")
	return lipgloss.JoinVertical(lipgloss.Left, status, m.renderLogs())
}

func (m Model) renderCollecting() string {
	rows := []string{
		m.progress.ViewAs(m.snap.Progress / 100),
		metric("Progress", m.snap.FormattedProgress()+"%"),
		metric("Links found", fmt.Sprintf("%d", m.snap.LinksFound)),
		metric("Task", m.spinner.View()+" "+m.snap.CurrentTask),
		m.renderLogs(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderFinalizing() string {
	label := styles.Muted.Render("Finalizing database...")
	counter := styles.Counter.Render(m.snap.FormattedFinal() + "%")
	return m.center(lipgloss.JoinVertical(lipgloss.Center, label, counter))
}

func (m Model) renderComplete() string {
	banner := styles.CompleteBanner.Render("COLLECTION COMPLETE")
	summary := metric("Links found", fmt.Sprintf("%d", m.snap.LinksFound))
	return m.center(lipgloss.JoinVertical(lipgloss.Center, banner, "", summary))
}

func (m Model) renderLogs() string {
	rows := m.height - chromeHeight
	if rows < minLogRows {
		rows = minLogRows
	}
	width := 0
	if m.width > 4 {
		width = m.width - 4
	}

	lines := util.FitLines(m.snap.Logs, width, rows)
	for i, line := range lines {
		lines[i] = styles.LogStyle(line).Render(line)
	}
	if len(lines) == 0 {
		lines = []string{styles.Muted.Render("waiting for output...")}
	}
	return styles.LogBox.Render(strings.Join(lines, "\n"))
}

func (m Model) center(s string) string {
	if m.width == 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func metric(label, value string) string {
	return styles.MetricLabel.Render(label+":") + styles.MetricValue.Render(value)
}
