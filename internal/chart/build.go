package chart

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/salarygap/internal/model"
)

// Chart titles and axis labels.
const (
	LineTitle       = "Annual Salaries of Different Positions"
	LineYTitle      = "Annual Salary ($)"
	CostYTitle      = "Dollars"
	YearTitle       = "Year"
	JobLegendTitle  = "Job Type"
	CostLegendTitle = "Category"
)

// BuildLineSpec builds a line chart with one series per category in
// first-seen order. Records are plotted as given; callers drop sentinel
// zeros beforehand (pipeline.ToLongLine).
func BuildLineSpec(records []model.LongRecord) ChartSpec {
	spec := ChartSpec{
		Title:   LineTitle,
		XAxis:   Axis{Title: YearTitle, Type: Quantitative},
		YAxis:   Axis{Title: LineYTitle, Type: Quantitative},
		Series:  []Series{},
		Legend:  Legend{Title: JobLegendTitle, Toggleable: true},
		Tooltip: []string{JobLegendTitle, YearTitle, LineYTitle},
	}

	order, grouped := groupByCategory(records)
	for i, name := range order {
		pts := grouped[name]
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].X < pts[b].X })
		spec.Series = append(spec.Series, Series{
			Name:   name,
			Mark:   MarkLine,
			Color:  cycle(plotlyQualitative, i),
			Stroke: markerStroke,
			Shape:  ShapeCircle,
			Size:   lineMarker,
			Points: pts,
		})
	}

	spec.XAxis.Ticks = unionYears(spec.Series)
	if n := len(spec.XAxis.Ticks); n > 0 {
		spec.Title = fmt.Sprintf("%s: %d-%d", LineTitle, spec.XAxis.Ticks[0], spec.XAxis.Ticks[n-1])
	}
	return spec
}

// BuildStackedBarWithMarkerSpec stacks one bar series per bar category,
// summed by year, and overlays one star per year for the marker records
// (the selected job's salary). Both layers share the y scale. Empty input
// yields a spec with no series.
func BuildStackedBarWithMarkerSpec(barRecords, markerRecords []model.LongRecord) ChartSpec {
	spec := ChartSpec{
		XAxis:   Axis{Title: YearTitle, Type: Nominal},
		YAxis:   Axis{Title: CostYTitle, Type: Quantitative},
		Series:  []Series{},
		Legend:  Legend{Title: CostLegendTitle, Toggleable: true},
		Tooltip: []string{YearTitle, CostLegendTitle, "Cost"},
		SharedY: true,
	}

	order, grouped := groupByCategory(barRecords)
	for i, name := range order {
		spec.Series = append(spec.Series, Series{
			Name:    name,
			Mark:    MarkBar,
			Color:   cycle(set2, i),
			Points:  sumByYear(grouped[name]),
			Stacked: true,
		})
	}

	if len(markerRecords) > 0 {
		mOrder, _ := groupByCategory(markerRecords)
		all := make([]Point, len(markerRecords))
		for i, r := range markerRecords {
			all[i] = Point{X: r.Year, Y: r.Value}
		}
		spec.Series = append(spec.Series, Series{
			Name:   markerName(mOrder),
			Mark:   MarkPoint,
			Color:  markerFill,
			Stroke: markerStroke,
			Shape:  ShapeStar,
			Size:   markerSize,
			Points: sumByYear(all),
		})
	}

	spec.XAxis.Ticks = unionYears(spec.Series)
	return spec
}

func markerName(categories []string) string {
	if len(categories) == 1 {
		return categories[0]
	}
	return "Salary"
}

// groupByCategory splits records by category, keeping first-seen order.
func groupByCategory(records []model.LongRecord) ([]string, map[string][]Point) {
	var order []string
	grouped := make(map[string][]Point)
	for _, r := range records {
		if _, ok := grouped[r.Category]; !ok {
			order = append(order, r.Category)
		}
		grouped[r.Category] = append(grouped[r.Category], Point{X: r.Year, Y: r.Value})
	}
	return order, grouped
}

// sumByYear collapses points to one per year, sorted by year.
func sumByYear(pts []Point) []Point {
	sums := make(map[int]float64)
	for _, p := range pts {
		sums[p.X] += p.Y
	}
	out := make([]Point, 0, len(sums))
	for x, y := range sums {
		out = append(out, Point{X: x, Y: y})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].X < out[b].X })
	return out
}

func unionYears(series []Series) []int {
	seen := make(map[int]struct{})
	for _, s := range series {
		for _, p := range s.Points {
			seen[p.X] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
