// Package util provides small text helpers shared by the renderers.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis is appended to truncated lines.
const Ellipsis = "..."

// TruncateANSI truncates a string to maxWidth visual columns, adding "..." if truncated.
// Escape sequences and wide characters are measured the way the terminal
// draws them.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= len(Ellipsis) {
		return Ellipsis
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	// ansi.Truncate counts the tail in the final width
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// FitLines returns the newest lines that fit in height rows, each truncated
// to width columns. A non-positive width leaves lines untouched and a
// non-positive height keeps every line.
func FitLines(lines []string, width, height int) []string {
	if height > 0 && len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if width > 0 {
			line = TruncateANSI(line, width)
		}
		out[i] = line
	}
	return out
}
