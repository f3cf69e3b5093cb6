package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Flexoki Dark, the same palette the dashboard starts with.
var (
	colorBorder = lipgloss.Color("#282726")
	colorDim    = lipgloss.Color("#575653")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGain   = lipgloss.Color("#879A39")
	colorLoss   = lipgloss.Color("#D14D41")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	cellStyle   = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	ruleStyle   = lipgloss.NewStyle().Foreground(colorDim)
	gainStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorGain)
	lossStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorLoss)
)

const titleWidth = 55

// Table is a bordered text table. The first column is left-aligned and
// the rest, which hold amounts, are right-aligned. A row holding the single
// cell "---" draws a separator.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title in a rounded box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(titleWidth).
		Align(lipgloss.Center).
		Padding(0, 1)
	return box.Render(titleStyle.Render(title))
}

// RenderTable renders t with column widths fitted to the widest cell.
func RenderTable(t Table) string {
	widths := columnWidths(t)
	if len(widths) == 0 {
		return ""
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(tableRow(t.Headers, widths, headerStyle))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(tableRow(row, widths, cellStyle))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

func columnWidths(t Table) []int {
	n := len(t.Headers)
	if n == 0 && len(t.Rows) > 0 {
		n = len(t.Rows[0])
	}
	widths := make([]int, n)
	measure := func(cells []string) {
		for i, c := range cells {
			if i < n {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	return widths
}

// rule draws a horizontal border line with the given corner and joint runes.
func rule(widths []int, left, joint, right string) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return ruleStyle.Render(left+strings.Join(segs, joint)+right) + "\n"
}

func tableRow(cells []string, widths []int, style lipgloss.Style) string {
	sep := ruleStyle.Render("│")
	parts := make([]string, len(widths))
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if i == 0 {
			parts[i] = style.Render(fmt.Sprintf(" %-*s ", w, cell))
		} else {
			parts[i] = style.Render(fmt.Sprintf(" %*s ", w, cell))
		}
	}
	return sep + strings.Join(parts, sep) + sep + "\n"
}

// RenderShareBar draws part as a bar scaled against whole and appends
// part's percentage of whole. A part larger than whole fills the bar and
// is drawn in the loss color, which is how costs above a salary show up.
func RenderShareBar(part, whole float64, width int) string {
	if whole <= 0 || width <= 0 {
		return ""
	}
	ratio := part / whole
	filled := max(min(int(ratio*float64(width)), width), 0)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := cellStyle
	if ratio > 1 {
		style = lossStyle
	}
	return style.Render(bar) + " " + mutedStyle.Render(FormatPercent(ratio))
}

// RenderSparkline draws one block per value, scaled to the largest.
// Zeros mean no data and leave a gap.
func RenderSparkline(values []float64) string {
	const blocks = "▁▂▃▄▅▆▇█"
	levels := []rune(blocks)

	var peak float64
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	out := make([]rune, len(values))
	for i, v := range values {
		if v == 0 {
			out[i] = ' '
			continue
		}
		idx := int(v / peak * float64(len(levels)-1))
		out[i] = levels[max(0, min(idx, len(levels)-1))]
	}
	return string(out)
}

// RenderSavings renders a savings line: green when positive, red when
// negative, and nothing at all for exactly zero.
func RenderSavings(label string, v float64) string {
	line := fmt.Sprintf("%s: %s", label, FormatMoney(v))
	switch {
	case v > 0:
		return gainStyle.Render(line)
	case v < 0:
		return lossStyle.Render(line)
	}
	return ""
}

// RenderNote renders a dimmed footnote.
func RenderNote(s string) string {
	return ruleStyle.Render("*Note: " + s + "*")
}
