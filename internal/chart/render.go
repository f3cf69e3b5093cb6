package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// barHalfWidth is half a bar's width in year units.
const barHalfWidth = 0.35

// RenderPNG draws the visible series of spec as a PNG image. Lines become
// continuous series with dots, stacked bars become filled rectangles and
// point marks become dots on the same y scale. An empty spec renders an
// empty frame.
func RenderPNG(spec ChartSpec, w io.Writer, width, height int) error {
	visible := spec.VisibleSeries()
	years := spec.Years()

	var series []gochart.Series
	var legend []gochart.Series

	series, legend = appendBars(series, legend, visible)
	for _, s := range visible {
		switch s.Mark {
		case MarkLine:
			ls := lineSeries(s)
			series = append(series, ls)
			legend = append(legend, ls)
		case MarkPoint:
			ps := pointSeries(s)
			series = append(series, ps)
			legend = append(legend, ps)
		}
	}

	if len(series) == 0 {
		// go-chart refuses to render without at least one series.
		series = append(series, gochart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 0},
			Style:   gochart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: gochart.Disabled},
		})
	}

	ymax := spec.YMax()
	if ymax <= 0 {
		ymax = 1
	}

	ch := gochart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis(spec.XAxis, years),
		YAxis: gochart.YAxis{
			Name:           spec.YAxis.Title,
			Range:          &gochart.ContinuousRange{Min: 0, Max: ymax * 1.05},
			ValueFormatter: dollarFormatter,
		},
		Series: series,
	}
	if len(legend) > 0 {
		// The legend reads from a chart holding one entry per visible series,
		// not from every drawn rectangle.
		legendChart := gochart.Chart{Series: legend}
		ch.Elements = []gochart.Renderable{gochart.Legend(&legendChart)}
	}

	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("rendering %q: %w", spec.Title, err)
	}
	return nil
}

// appendBars draws stacked bar series as rectangles. Each year's stack is
// drawn from its tallest cumulative segment down so lower segments paint
// over the upper ones.
func appendBars(series, legend []gochart.Series, visible []Series) ([]gochart.Series, []gochart.Series) {
	var bars []Series
	for _, s := range visible {
		if s.Mark == MarkBar {
			bars = append(bars, s)
		}
	}
	if len(bars) == 0 {
		return series, legend
	}

	// cumulative[k][year] = sum of bars[0..k] at year.
	cumulative := make([]map[int]float64, len(bars))
	running := make(map[int]float64)
	for k, b := range bars {
		for _, p := range b.Points {
			running[p.X] += p.Y
		}
		cumulative[k] = make(map[int]float64, len(running))
		for x, v := range running {
			cumulative[k][x] = v
		}
	}

	for k := len(bars) - 1; k >= 0; k-- {
		col := hexColor(bars[k].Color)
		style := gochart.Style{StrokeColor: col, StrokeWidth: 1, FillColor: col}
		for _, p := range bars[k].Points {
			top := cumulative[k][p.X]
			x := float64(p.X)
			series = append(series, gochart.ContinuousSeries{
				XValues: []float64{x - barHalfWidth, x + barHalfWidth},
				YValues: []float64{top, top},
				Style:   style,
			})
		}
	}

	for _, b := range bars {
		col := hexColor(b.Color)
		legend = append(legend, gochart.ContinuousSeries{
			Name:  b.Name,
			Style: gochart.Style{StrokeColor: col, StrokeWidth: 4, FillColor: col},
		})
	}
	return series, legend
}

func lineSeries(s Series) gochart.ContinuousSeries {
	col := hexColor(s.Color)
	xs, ys := padded(s.Points)
	return gochart.ContinuousSeries{
		Name:    s.Name,
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeColor: col,
			StrokeWidth: 2,
			DotColor:    col,
			DotWidth:    3,
		},
	}
}

func pointSeries(s Series) gochart.ContinuousSeries {
	xs, ys := padded(s.Points)
	return gochart.ContinuousSeries{
		Name:    s.Name,
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeColor: drawing.ColorTransparent,
			StrokeWidth: gochart.Disabled,
			DotColor:    hexColor(s.Color),
			DotWidth:    6,
		},
	}
}

// padded returns the points as x/y slices. A single point is repeated so
// go-chart has a non-degenerate x range.
func padded(pts []Point) ([]float64, []float64) {
	xs := make([]float64, 0, max(len(pts), 2))
	ys := make([]float64, 0, max(len(pts), 2))
	for _, p := range pts {
		xs = append(xs, float64(p.X))
		ys = append(ys, p.Y)
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}
	return xs, ys
}

func xAxis(a Axis, years []int) gochart.XAxis {
	ax := gochart.XAxis{Name: a.Title}
	if len(years) == 0 {
		return ax
	}
	ax.Range = &gochart.ContinuousRange{
		Min: float64(years[0]) - 0.5,
		Max: float64(years[len(years)-1]) + 0.5,
	}
	ticks := make([]gochart.Tick, len(years))
	for i, y := range years {
		ticks[i] = gochart.Tick{Value: float64(y), Label: strconv.Itoa(y)}
	}
	ax.Ticks = ticks
	return ax
}

func dollarFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	return "$" + strconv.FormatFloat(f, 'f', 0, 64)
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
