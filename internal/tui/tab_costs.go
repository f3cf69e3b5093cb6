package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/salarygap/internal/chart"
	"github.com/theirongolddev/salarygap/internal/cli"
	"github.com/theirongolddev/salarygap/internal/dashboard"
	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/tui/components"
	"github.com/theirongolddev/salarygap/internal/tui/theme"
)

const (
	costRowJob = iota
	costRowFrom
	costRowTo
	costRowFirstCategory
)

const costControlsWidth = 40

// costState tracks the cost-of-living tab controls and the chart built from them.
type costState struct {
	view    dashboard.CostView
	cursor  int
	message string
	chart   chart.ChartSpec
	hidden  map[string]bool
}

func newCostState(ds *model.Dataset) costState {
	cs := costState{
		view:   dashboard.DefaultCostView(ds),
		hidden: make(map[string]bool),
	}
	cs.rebuild(ds)
	return cs
}

// rebuild recomputes the chart from the controls. Series hidden through the
// legend stay hidden across rebuilds.
func (c *costState) rebuild(ds *model.Dataset) {
	c.chart = dashboard.CostChart(ds, c.view)
	for i := range c.chart.Series {
		if c.hidden[c.chart.Series[i].Name] {
			c.chart.Series[i].Hidden = true
		}
	}

	c.message = ""
	if len(c.view.Categories) > 0 && c.chart.Empty() {
		c.message = fmt.Sprintf("No costs recorded between %d and %d", c.view.MinYear, c.view.MaxYear)
	}
}

func (a *App) updateCostKeys(key string) bool {
	ds := a.sess.Dataset()
	categories := ds.AnnualCosts.CategoryDomain()
	rows := costRowFirstCategory + len(categories)
	c := &a.costs

	switch key {
	case "j", "down":
		c.cursor = min(c.cursor+1, rows-1)
		return true
	case "k", "up":
		c.cursor = max(c.cursor-1, 0)
		return true
	case "h", "left":
		if !a.stepCostControl(-1) {
			return false
		}
	case "l", "right":
		if !a.stepCostControl(1) {
			return false
		}
	case " ", "enter":
		idx := c.cursor - costRowFirstCategory
		if idx < 0 || idx >= len(categories) {
			return false
		}
		c.view.Categories = toggleCategory(categories, c.view.Categories, categories[idx])
	case "a":
		c.view.Categories = slices.Clone(categories)
	case "n":
		c.view.Categories = []string{}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i, _ := strconv.Atoi(key)
		if i > len(c.chart.Series) {
			return false
		}
		s := c.chart.Series[i-1]
		c.hidden[s.Name] = !s.Hidden
		c.chart.ToggleIndex(i - 1)
		return true
	default:
		return false
	}

	c.rebuild(ds)
	return true
}

// stepCostControl moves the job or a year bound under the cursor. The year
// range never inverts: each bound stops at the other.
func (a *App) stepCostControl(delta int) bool {
	ds := a.sess.Dataset()
	c := &a.costs

	switch c.cursor {
	case costRowJob:
		jobs := ds.Salaries.CategoryDomain()
		if len(jobs) == 0 {
			return true
		}
		idx := indexOf(jobs, c.view.Job)
		c.view.Job = jobs[(idx+delta+len(jobs))%len(jobs)]
	case costRowFrom:
		years := ds.Salaries.YearDomain()
		if idx := indexOf(years, c.view.MinYear) + delta; idx >= 0 && idx < len(years) && years[idx] <= c.view.MaxYear {
			c.view.MinYear = years[idx]
		}
	case costRowTo:
		years := ds.Salaries.YearDomain()
		if idx := indexOf(years, c.view.MaxYear) + delta; idx >= 0 && idx < len(years) && years[idx] >= c.view.MinYear {
			c.view.MaxYear = years[idx]
		}
	default:
		return false
	}
	return true
}

// toggleCategory flips membership of cat, keeping the result in domain order.
func toggleCategory(domain, selected []string, cat string) []string {
	on := slices.Contains(selected, cat)
	out := make([]string, 0, len(domain))
	for _, d := range domain {
		keep := slices.Contains(selected, d)
		if d == cat {
			keep = !on
		}
		if keep {
			out = append(out, d)
		}
	}
	return out
}

func (a App) renderCostsTab(cw int) string {
	controlsW := costControlsWidth
	chartW := cw - controlsW
	if a.isCompactLayout() {
		controlsW, chartW = cw, cw
	}

	controls := components.ContentCard("Controls", a.renderCostControls(components.CardInnerWidth(controlsW)), controlsW)
	chartCard := a.renderCostChartCard(chartW)

	if a.isCompactLayout() {
		return controls + "\n" + chartCard
	}
	return components.CardRow([]string{controls, chartCard})
}

func (a App) renderCostControls(innerW int) string {
	t := theme.Active
	c := a.costs
	categories := a.sess.Dataset().AnnualCosts.CategoryDomain()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	checkStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	const labelW = 6
	valueW := max(innerW-labelW-4, 8)

	lines := []string{
		fmt.Sprintf("%-*s‹ %s ›", labelW, "Job", truncStr(c.view.Job, valueW-4)),
		fmt.Sprintf("%-*s‹ %d ›", labelW, "From", c.view.MinYear),
		fmt.Sprintf("%-*s‹ %d ›", labelW, "To", c.view.MaxYear),
	}
	for _, cat := range categories {
		box := "[ ]"
		if slices.Contains(c.view.Categories, cat) {
			box = "[x]"
		}
		lines = append(lines, box+" "+truncStr(cat, innerW-6))
	}

	var body strings.Builder
	for i, line := range lines {
		if i == costRowFirstCategory {
			body.WriteString(labelStyle.Render("Categories"))
			body.WriteString("\n")
		}
		if i == c.cursor {
			rendered := markerStyle.Render("▸ ") + selectedStyle.Render(line)
			body.WriteString(rendered)
			if pad := innerW - lipgloss.Width(rendered); pad > 0 {
				body.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			body.WriteString(spaceStyle.Render("  "))
			switch {
			case i < costRowFirstCategory:
				body.WriteString(valueStyle.Render(line))
			case strings.HasPrefix(line, "[x]"):
				body.WriteString(checkStyle.Render(line))
			default:
				body.WriteString(dimStyle.Render(line))
			}
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(dimStyle.Render("[Space] check  [a] all  [n] none"))
	return body.String()
}

func (a App) renderCostChartCard(cw int) string {
	t := theme.Active
	spec := a.costs.chart
	innerW := components.CardInnerWidth(cw)

	chartH := 14
	if a.isCompactLayout() {
		chartH = 8
	}

	var body strings.Builder
	if len(a.costs.view.Categories) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		body.WriteString(hint.Render("Check cost categories to stack them against the salary."))
		body.WriteString("\n\n")
	}
	body.WriteString(components.StackedBarChart(spec, innerW, chartH))
	body.WriteString("\n\n")
	body.WriteString(components.Legend(spec, innerW))

	// Latest-year total against the salary marker.
	if ticks := spec.Years(); len(ticks) > 0 && len(a.costs.view.Categories) > 0 {
		last := ticks[len(ticks)-1]
		labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		body.WriteString("\n\n")
		body.WriteString(labelStyle.Render(fmt.Sprintf("%d costs: ", last)))
		body.WriteString(valueStyle.Render(cli.FormatMoney(spec.StackAt(last))))
	}

	title := fmt.Sprintf("%s  %d-%d", spec.YAxis.Title, a.costs.view.MinYear, a.costs.view.MaxYear)
	return components.ContentCard(title, body.String(), cw)
}
