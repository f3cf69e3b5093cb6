package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/salarygap/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar. message, when set, replaces
// the key hints on the left and is drawn as a warning.
func RenderStatusBar(width int, dataInfo, message string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	warnStyle := lipgloss.NewStyle().
		Foreground(t.Orange).
		Background(t.Surface)

	left := style.Render(" [?]help  [tab]next  [q]uit")
	if message != "" {
		left = warnStyle.Render(" " + message)
	}
	right := ""
	if dataInfo != "" {
		right = style.Render(dataInfo + " ")
	}

	// Pad middle
	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)

	return left + style.Render(strings.Repeat(" ", padding)) + right
}
