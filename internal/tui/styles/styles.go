// Package styles holds the lipgloss palette and styles of the TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray
	BlueColor      = lipgloss.Color("#60A5FA") // Blue

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)
	Blue      = lipgloss.NewStyle().Foreground(BlueColor)

	// Header
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor).
		MarginBottom(1)

	PhaseBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(SurfaceColor).
			Padding(0, 1)

	// Log area
	LogBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	// Collection metrics
	MetricLabel = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(14)

	MetricValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	// Final counter
	Counter = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor).
		Padding(1, 4).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(PrimaryColor)

	CompleteBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(SurfaceColor).
			Background(SecondaryColor).
			Padding(1, 6)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)
)

// PhaseColor returns the badge color for a phase name
func PhaseColor(phase string) lipgloss.Color {
	switch phase {
	case "boot":
		return BlueColor
	case "collecting":
		return PrimaryColor
	case "blackout":
		return SurfaceColor
	case "finalizing":
		return WarningColor
	case "complete":
		return SecondaryColor
	default:
		return MutedColor
	}
}

// logTags maps a log line prefix to its style. Lines without a known tag
// are rendered as plain text.
var logTags = []struct {
	prefix string
	style  lipgloss.Style
}{
	{"[ OK ]", Secondary},
	{"[WARN]", Warning},
	{"[NET]", Blue},
	{"[WORK]", Primary},
	{"[TASK]", Primary},
	{"[INIT]", Muted},
	{"[INFO]", Text},
}

// LogStyle returns the style for a log line based on its leading tag
func LogStyle(line string) lipgloss.Style {
	for _, tag := range logTags {
		if strings.HasPrefix(line, tag.prefix) {
			return tag.style
		}
	}
	return Text
}
