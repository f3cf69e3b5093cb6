// Package dashboard assembles everything a surface displays after an interaction.
package dashboard

import (
	"github.com/theirongolddev/salarygap/internal/chart"
	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/pipeline"
	"github.com/theirongolddev/salarygap/internal/session"
)

// Footnote states the purchase frequency behind the cheese and coffee constants.
const Footnote = "It is assumed that on average, a person will buy two cups of coffee a week, " +
	"and purchase about 1 cheese block every 2 weeks."

// CostView holds the cost-of-living tab controls.
type CostView struct {
	Job        string   `json:"job"`
	MinYear    int      `json:"min_year"`
	MaxYear    int      `json:"max_year"`
	Categories []string `json:"categories"`
}

// View is a fully recomputed snapshot of the dashboard.
type View struct {
	Selection model.Selection     `json:"selection"`
	Inputs    model.BudgetInputs  `json:"inputs"`
	Savings   model.SavingsResult `json:"savings"`
	LineChart chart.ChartSpec     `json:"line_chart"`
	CostChart chart.ChartSpec     `json:"cost_chart"`
	Footnote  string              `json:"footnote"`
}

// DefaultCostView returns the initial cost tab controls: the last job, the
// full salary year range and no categories checked.
func DefaultCostView(ds *model.Dataset) CostView {
	cv := CostView{Categories: []string{}}
	jobs := ds.Salaries.Categories
	if len(jobs) > 0 {
		cv.Job = jobs[len(jobs)-1]
	}
	cv.MinYear, cv.MaxYear = ds.Salaries.YearBounds()
	return cv
}

// LineChart builds the salary line chart.
func LineChart(ds *model.Dataset) chart.ChartSpec {
	return chart.BuildLineSpec(pipeline.ToLongLine(ds.Salaries))
}

// CostChart builds the stacked annual-cost chart with salary markers for cv.Job.
func CostChart(ds *model.Dataset, cv CostView) chart.ChartSpec {
	bars := pipeline.ToLongBar(ds.AnnualCosts, cv.Categories, cv.MinYear, cv.MaxYear)
	var markers []model.LongRecord
	if cv.Job != "" {
		markers = pipeline.ToLongBar(ds.Salaries, []string{cv.Job}, cv.MinYear, cv.MaxYear)
	}
	return chart.BuildStackedBarWithMarkerSpec(bars, markers)
}

// Build recomputes the whole view from the session and the cost controls.
func Build(m *session.Manager, cv CostView) View {
	ds := m.Dataset()
	return View{
		Selection: m.Selection(),
		Inputs:    m.Inputs(),
		Savings:   m.Savings(),
		LineChart: LineChart(ds),
		CostChart: CostChart(ds, cv),
		Footnote:  Footnote,
	}
}

// SavingsTone classifies a savings figure for display: positive amounts are
// shown as gains, negative as losses, and exactly zero is not shown at all.
type SavingsTone int

const (
	ToneHidden SavingsTone = iota
	TonePositive
	ToneNegative
)

// Tone returns the display tone for v.
func Tone(v float64) SavingsTone {
	switch {
	case v > 0:
		return TonePositive
	case v < 0:
		return ToneNegative
	}
	return ToneHidden
}
