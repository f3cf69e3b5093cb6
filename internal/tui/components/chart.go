package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/salarygap/internal/chart"
	"github.com/theirongolddev/salarygap/internal/tui/theme"
)

const (
	barGlyph    = '█'
	lineGlyph   = '·'
	pointGlyph  = '●'
	markerGlyph = '★'
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = max(0, min(idx, len(blocks)-1))
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// StackedBarChart draws the visible bar series of spec stacked per year, with
// any visible point series drawn as star markers over the bars.
func StackedBarChart(spec chart.ChartSpec, width, height int) string {
	years := spec.XAxis.Ticks
	if len(years) == 0 || len(spec.VisibleSeries()) == 0 {
		return emptyChart(width)
	}

	sc := newYScale(spec.YMax(), height)
	chartW := max(width-sc.labelW-1, 5)

	n := len(years)
	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := (chartW - (n-1)*gap) / max(n, 1)
	if barW < 1 {
		barW, gap = 1, 0
	}
	barW = min(barW, 6)
	axisLen := n*barW + max(0, n-1)*gap

	g := newGrid(axisLen, sc.rows)
	positions := make([]int, n)
	for i, year := range years {
		col := i * (barW + gap)
		positions[i] = col

		cum := 0.0
		for _, s := range spec.VisibleSeries() {
			if s.Mark != chart.MarkBar {
				continue
			}
			v := valueAt(s, year)
			if v <= 0 {
				continue
			}
			lo, hi := sc.row(cum), sc.row(cum+v)
			if hi == lo {
				hi = lo + 1
			}
			for r := lo; r < hi; r++ {
				for c := col; c < col+barW; c++ {
					g.set(c, r, barGlyph, lipgloss.Color(s.Color))
				}
			}
			cum += v
		}

		for _, s := range spec.VisibleSeries() {
			if s.Mark != chart.MarkPoint {
				continue
			}
			if v, ok := pointAt(s, year); ok {
				g.set(col+barW/2, sc.row(v), markerGlyph, lipgloss.Color(s.Color))
			}
		}
	}

	labels := make([]string, n)
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
	}
	return g.render(sc) + "\n" + xAxisLabels(sc.labelW, positions, labels, axisLen)
}

// LineChart plots the visible series of spec as point markers joined by dots.
func LineChart(spec chart.ChartSpec, width, height int) string {
	years := spec.XAxis.Ticks
	if len(years) == 0 || len(spec.VisibleSeries()) == 0 {
		return emptyChart(width)
	}

	sc := newYScale(spec.YMax(), height)
	axisLen := max(width-sc.labelW-1, 5)
	minYear, maxYear := years[0], years[len(years)-1]

	col := func(x int) int {
		if maxYear == minYear {
			return axisLen / 2
		}
		return int(math.Round(float64(x-minYear) / float64(maxYear-minYear) * float64(axisLen-1)))
	}

	g := newGrid(axisLen, sc.rows)
	for _, s := range spec.VisibleSeries() {
		color := lipgloss.Color(s.Color)
		for i := 1; i < len(s.Points); i++ {
			p0, p1 := s.Points[i-1], s.Points[i]
			c0, c1 := col(p0.X), col(p1.X)
			for c := c0 + 1; c < c1; c++ {
				frac := float64(c-c0) / float64(c1-c0)
				v := p0.Y + (p1.Y-p0.Y)*frac
				g.setIfEmpty(c, sc.row(v), lineGlyph, color)
			}
		}
	}
	// Markers go on top of every connecting line.
	for _, s := range spec.VisibleSeries() {
		for _, p := range s.Points {
			g.set(col(p.X), sc.row(p.Y), pointGlyph, lipgloss.Color(s.Color))
		}
	}

	positions := make([]int, len(years))
	labels := make([]string, len(years))
	for i, y := range years {
		positions[i] = col(y)
		labels[i] = strconv.Itoa(y)
	}
	return g.render(sc) + "\n" + xAxisLabels(sc.labelW, positions, labels, axisLen)
}

// Legend lists every series with its toggle key. Hidden series are dimmed.
func Legend(spec chart.ChartSpec, width int) string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	hiddenStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Strikethrough(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var lines []string
	var line strings.Builder
	lineW := 0
	for i, s := range spec.Series {
		key := " "
		if i < 9 {
			key = strconv.Itoa(i + 1)
		}
		glyph := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Background(t.Surface).Render(string(legendGlyph(s.Mark)))
		name := nameStyle.Render(s.Name)
		if s.Hidden {
			name = hiddenStyle.Render(s.Name)
		}
		item := keyStyle.Render("["+key+"]") + spaceStyle.Render(" ") + glyph + spaceStyle.Render(" ") + name
		itemW := lipgloss.Width(item)

		if lineW > 0 && lineW+2+itemW > width {
			lines = append(lines, line.String())
			line.Reset()
			lineW = 0
		}
		if lineW > 0 {
			line.WriteString(spaceStyle.Render("  "))
			lineW += 2
		}
		line.WriteString(item)
		lineW += itemW
	}
	if lineW > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func legendGlyph(m chart.Mark) rune {
	switch m {
	case chart.MarkBar:
		return barGlyph
	case chart.MarkPoint:
		return markerGlyph
	}
	return pointGlyph
}

func emptyChart(width int) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return style.Render(fmt.Sprintf("%-*s", max(width, 0), "No data to display"))
}

func valueAt(s chart.Series, x int) float64 {
	v, _ := pointAt(s, x)
	return v
}

func pointAt(s chart.Series, x int) (float64, bool) {
	sum, found := 0.0, false
	for _, p := range s.Points {
		if p.X == x {
			sum += p.Y
			found = true
		}
	}
	return sum, found
}

// yScale is a rounded y axis laid out over a fixed number of text rows.
type yScale struct {
	ceiling     float64
	step        float64
	rowsPerTick int
	rows        int
	labelW      int
}

func newYScale(maxVal float64, height int) yScale {
	if maxVal <= 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)
	rowsPerTick := max(height/numIntervals, 2)

	return yScale{
		ceiling:     ceiling,
		step:        tickStep,
		rowsPerTick: rowsPerTick,
		rows:        rowsPerTick * numIntervals,
		labelW:      max(len(formatChartLabel(ceiling))+1, 4),
	}
}

// row maps a value to a grid row, 0 being the bottom row.
func (s yScale) row(v float64) int {
	r := int(math.Round(v / s.ceiling * float64(s.rows)))
	return max(0, min(r, s.rows-1))
}

// label returns the tick label printed beside display row r (1-based from
// the bottom), or "" between ticks.
func (s yScale) label(r int) string {
	if r%s.rowsPerTick != 0 {
		return ""
	}
	return formatChartLabel(s.step * float64(r/s.rowsPerTick))
}

type cell struct {
	r     rune
	color lipgloss.Color
}

// grid is a character canvas addressed bottom-up.
type grid struct {
	w, h  int
	cells [][]cell
}

func newGrid(w, h int) *grid {
	cells := make([][]cell, h)
	for i := range cells {
		cells[i] = make([]cell, w)
	}
	return &grid{w: w, h: h, cells: cells}
}

func (g *grid) set(col, row int, r rune, color lipgloss.Color) {
	if col < 0 || col >= g.w || row < 0 || row >= g.h {
		return
	}
	g.cells[row][col] = cell{r: r, color: color}
}

func (g *grid) setIfEmpty(col, row int, r rune, color lipgloss.Color) {
	if col < 0 || col >= g.w || row < 0 || row >= g.h || g.cells[row][col].r != 0 {
		return
	}
	g.cells[row][col] = cell{r: r, color: color}
}

// render draws the canvas with the y axis on the left and the x axis line
// underneath. Runs of same-coloured cells share one style call.
func (g *grid) render(sc yScale) string {
	t := theme.Active
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := g.h - 1; row >= 0; row-- {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", sc.labelW, sc.label(row+1))))
		b.WriteString(axisStyle.Render("│"))

		cells := g.cells[row]
		for start := 0; start < len(cells); {
			end := start + 1
			for end < len(cells) && cells[end].color == cells[start].color && (cells[end].r == 0) == (cells[start].r == 0) {
				end++
			}
			var run strings.Builder
			for _, c := range cells[start:end] {
				if c.r == 0 {
					run.WriteRune(' ')
				} else {
					run.WriteRune(c.r)
				}
			}
			if cells[start].r == 0 {
				b.WriteString(blank.Render(run.String()))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(cells[start].color).Background(t.Surface).Render(run.String()))
			}
			start = end
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", sc.labelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", g.w)))
	return b.String()
}

// xAxisLabels places labels at their column positions, skipping any label
// that would overlap the previous one. The last label is always attempted.
func xAxisLabels(labelW int, positions []int, labels []string, axisLen int) string {
	t := theme.Active
	buf := []byte(strings.Repeat(" ", axisLen))

	lastEnd := -1
	place := func(pos int, lbl string) bool {
		if pos+len(lbl) > axisLen {
			pos = axisLen - len(lbl)
		}
		if pos < 0 || pos <= lastEnd {
			return false
		}
		copy(buf[pos:], lbl)
		lastEnd = pos + len(lbl)
		return true
	}

	n := len(labels)
	for i := 0; i < n-1; i++ {
		// Leave room for the final label.
		if last := positions[n-1]; positions[i]+len(labels[i]) >= last && n > 1 {
			break
		}
		place(positions[i], labels[i])
	}
	if n > 0 {
		place(positions[n-1], labels[n-1])
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pad := lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", labelW+1))
	return pad + labelStyle.Render(strings.TrimRight(string(buf), " "))
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
