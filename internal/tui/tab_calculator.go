package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/salarygap/internal/chart"
	"github.com/theirongolddev/salarygap/internal/cli"
	"github.com/theirongolddev/salarygap/internal/dashboard"
	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/pipeline"
	"github.com/theirongolddev/salarygap/internal/tui/components"
	"github.com/theirongolddev/salarygap/internal/tui/theme"
)

const (
	calcRowJob = iota
	calcRowYear
	calcRowFirstField
)

const calcInputsWidth = 52

// calcState tracks the calculator tab: the row cursor, the amount editor and
// the salary line chart with its legend toggles.
type calcState struct {
	cursor  int
	editing bool
	input   textinput.Model
	message string
	line    chart.ChartSpec
}

func newCalcState(ds *model.Dataset) calcState {
	return calcState{line: dashboard.LineChart(ds)}
}

func calcRowCount() int {
	return calcRowFirstField + len(model.Fields)
}

// field returns the budget field under the cursor.
func (c calcState) field() (model.Field, bool) {
	idx := c.cursor - calcRowFirstField
	if idx < 0 || idx >= len(model.Fields) {
		return 0, false
	}
	return model.Fields[idx], true
}

func (a *App) updateCalcKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "j", "down":
		a.calc.cursor = min(a.calc.cursor+1, calcRowCount()-1)
	case "k", "up":
		a.calc.cursor = max(a.calc.cursor-1, 0)
	case "h", "left":
		return a.stepSelection(-1), nil
	case "l", "right":
		return a.stepSelection(1), nil
	case "enter":
		f, ok := a.calc.field()
		if !ok {
			return false, nil
		}
		return true, a.startCalcEdit(f)
	case "u":
		f, ok := a.calc.field()
		if !ok {
			return false, nil
		}
		a.sess.ClearOverride(f)
		a.calc.message = ""
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i, _ := strconv.Atoi(key)
		if !a.calc.line.ToggleIndex(i - 1) {
			return false, nil
		}
	default:
		return false, nil
	}
	return true, nil
}

// stepSelection moves the job or year under the cursor by delta and pushes
// the new selection through the session. Jobs wrap around; years stop at
// the ends of the salary table.
func (a *App) stepSelection(delta int) bool {
	sel := a.sess.Selection()
	ds := a.sess.Dataset()

	switch a.calc.cursor {
	case calcRowJob:
		jobs := ds.Salaries.CategoryDomain()
		if len(jobs) == 0 {
			return true
		}
		idx := indexOf(jobs, sel.Job)
		sel.Job = jobs[(idx+delta+len(jobs))%len(jobs)]
	case calcRowYear:
		years := ds.Salaries.YearDomain()
		idx := indexOf(years, sel.Year) + delta
		if idx < 0 || idx >= len(years) {
			return true
		}
		sel.Year = years[idx]
	default:
		return false
	}

	if err := a.sess.OnSelectionChanged(sel.Year, sel.Job); err != nil {
		a.calc.message = err.Error()
		return true
	}
	a.calc.message = ""
	return true
}

func (a *App) startCalcEdit(f model.Field) tea.Cmd {
	ti := textinput.New()
	ti.Placeholder = "0.00"
	ti.CharLimit = 16
	ti.Width = 16
	ti.Prompt = "$"
	ti.SetValue(strconv.FormatFloat(a.sess.Value(f), 'f', 2, 64))
	ti.Focus()

	a.calc.input = ti
	a.calc.editing = true
	a.calc.message = ""
	return ti.Cursor.BlinkCmd()
}

func (a App) updateCalcInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.calc.editing = false
		f, ok := a.calc.field()
		if !ok {
			return a, nil
		}
		v, err := parseAmount(a.calc.input.Value())
		if err != nil {
			a.calc.message = fmt.Sprintf("%s: %v", f.Label(), err)
			return a, nil
		}
		if err := a.sess.Override(f, v); err != nil {
			a.calc.message = err.Error()
		}
		return a, nil
	case "esc":
		a.calc.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.calc.input, cmd = a.calc.input.Update(msg)
	return a, cmd
}

// parseAmount reads a dollar amount typed by the user. "$" and thousands
// separators are accepted.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, errors.New("amount is empty")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return 0, errors.New("amount must not be negative")
	}
	return v, nil
}

func (a App) renderCalculatorTab(cw int) string {
	t := theme.Active
	inputs := a.sess.Inputs()
	savings := a.sess.Savings()

	var b strings.Builder

	// Row 1: Salary and savings cards
	widths := components.LayoutRow(cw, 3)
	b.WriteString(components.CardRow([]string{
		components.MetricCard("Annual Salary", cli.FormatMoney(inputs.Salary), cli.FormatMoney(inputs.Salary/pipeline.MonthsPerYear)+"/mo", widths[0]),
		savingsCard("Monthly Savings", savings.MonthlySavings, widths[1]),
		savingsCard("Annual Savings", savings.AnnualSavings, widths[2]),
	}))
	b.WriteString("\n")

	// Row 2: Inputs form + salary chart
	inputsW := calcInputsWidth
	chartW := cw - inputsW
	if a.isCompactLayout() {
		inputsW, chartW = cw, cw
	}
	inputsCard := components.ContentCard("Budget", a.renderCalcInputs(components.CardInnerWidth(inputsW)), inputsW)
	chartCard := a.renderLineCard(chartW)
	if a.isCompactLayout() {
		b.WriteString(inputsCard)
		b.WriteString("\n")
		b.WriteString(chartCard)
	} else {
		b.WriteString(components.CardRow([]string{inputsCard, chartCard}))
	}
	b.WriteString("\n")

	// Row 3: Footnote
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).Italic(true).Width(cw)
	b.WriteString(noteStyle.Render(" *Note: " + dashboard.Footnote))

	return b.String()
}

// savingsCard colours a savings figure: green above zero, red below, and no
// figure at all for exactly zero.
func savingsCard(label string, v float64, width int) string {
	t := theme.Active
	switch dashboard.Tone(v) {
	case dashboard.TonePositive:
		return components.TonedMetricCard(label, cli.FormatMoney(v), "", t.Gain, width)
	case dashboard.ToneNegative:
		return components.TonedMetricCard(label, cli.FormatMoney(v), "", t.Loss, width)
	}
	return components.TonedMetricCard(label, "", "", t.TextDim, width)
}

func (a App) renderCalcInputs(innerW int) string {
	t := theme.Active
	sel := a.sess.Selection()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	sourceStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	manualStyle := lipgloss.NewStyle().Foreground(t.Manual).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	const labelW = 22
	valueW := max(innerW-labelW-10, 8)

	type row struct {
		label, value, source string
	}
	rows := []row{
		{"Job", "‹ " + truncStr(sel.Job, valueW-4) + " ›", ""},
		{"Year", "‹ " + strconv.Itoa(sel.Year) + " ›", ""},
	}
	for _, f := range model.Fields {
		source := "auto"
		switch {
		case a.sess.Overridden(f):
			source = "manual"
		case !f.AutoPopulated():
			source = "default"
		}
		rows = append(rows, row{f.Label(), cli.FormatMoney(a.sess.Value(f)), source})
	}

	var body strings.Builder
	for i, r := range rows {
		if a.calc.editing && i == a.calc.cursor {
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(accentStyle.Render(fmt.Sprintf("%-*s", labelW, r.label)))
			body.WriteString(a.calc.input.View())
			body.WriteString("\n")
			continue
		}

		if i == a.calc.cursor {
			line := markerStyle.Render("▸ ") +
				selectedLabelStyle.Render(fmt.Sprintf("%-*s", labelW, r.label)) +
				selectedStyle.Render(fmt.Sprintf("%-*s", valueW, r.value)) +
				selectedStyle.Render(fmt.Sprintf(" %s", r.source))
			body.WriteString(line)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				body.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			srcStyle := sourceStyle
			if r.source == "manual" {
				srcStyle = manualStyle
			}
			body.WriteString(spaceStyle.Render("  "))
			body.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, r.label)))
			body.WriteString(valueStyle.Render(fmt.Sprintf("%-*s", valueW, r.value)))
			body.WriteString(srcStyle.Render(" " + r.source))
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(sourceStyle.Render("[j/k] move  [h/l] change  [Enter] edit  [u] revert"))
	return body.String()
}

func (a App) renderLineCard(cw int) string {
	spec := a.calc.line
	innerW := components.CardInnerWidth(cw)

	chartH := 12
	if a.isCompactLayout() {
		chartH = 8
	}

	body := components.LineChart(spec, innerW, chartH) + "\n\n" + components.Legend(spec, innerW)

	// Trend of the selected job across all years.
	job := a.sess.Selection().Job
	var trend []float64
	for _, s := range spec.Series {
		if s.Name == job {
			for _, p := range s.Points {
				trend = append(trend, p.Y)
			}
		}
	}
	if len(trend) > 1 {
		t := theme.Active
		label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		body += "\n\n" + label.Render(truncStr(job, 24)+"  ") + components.Sparkline(trend, t.AccentBright)
	}
	return components.ContentCard(spec.Title, body, cw)
}

func indexOf[T comparable](xs []T, x T) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}
