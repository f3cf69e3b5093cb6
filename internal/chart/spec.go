// Package chart builds declarative chart descriptions from long records.
//
// A ChartSpec carries everything a rendering surface needs (series, axes,
// colours, tooltips) and nothing about how to draw it. Surfaces toggle
// series visibility on the spec itself; the data is never rebuilt for that.
package chart

// Mark is how a series is drawn.
type Mark string

const (
	MarkLine  Mark = "line"
	MarkBar   Mark = "bar"
	MarkPoint Mark = "point"
)

// Shape is the glyph of a point mark.
type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeStar   Shape = "star"
)

// AxisType is the scale of an axis.
type AxisType string

const (
	Quantitative AxisType = "quantitative"
	Nominal      AxisType = "nominal"
)

// Axis describes one chart axis.
type Axis struct {
	Title string   `json:"title"`
	Type  AxisType `json:"type"`
	Ticks []int    `json:"ticks,omitempty"`
}

// Point is one (year, value) datum.
type Point struct {
	X int     `json:"x"`
	Y float64 `json:"y"`
}

// Series is one legend entry.
type Series struct {
	Name    string  `json:"name"`
	Mark    Mark    `json:"mark"`
	Color   string  `json:"color"`
	Stroke  string  `json:"stroke,omitempty"`
	Shape   Shape   `json:"shape,omitempty"`
	Size    int     `json:"size,omitempty"`
	Points  []Point `json:"points"`
	Hidden  bool    `json:"hidden"`
	Stacked bool    `json:"stacked,omitempty"`
}

// Legend configures the legend.
type Legend struct {
	Title      string `json:"title"`
	Toggleable bool   `json:"toggleable"`
}

// ChartSpec is a complete, renderer-independent chart description.
type ChartSpec struct {
	Title   string   `json:"title"`
	XAxis   Axis     `json:"x_axis"`
	YAxis   Axis     `json:"y_axis"`
	Series  []Series `json:"series"`
	Legend  Legend   `json:"legend"`
	Tooltip []string `json:"tooltip"`
	SharedY bool     `json:"shared_y"`
}

// Toggle flips the visibility of the named series and reports whether it
// was found. Points are left untouched.
func (c *ChartSpec) Toggle(name string) bool {
	for i := range c.Series {
		if c.Series[i].Name == name {
			c.Series[i].Hidden = !c.Series[i].Hidden
			return true
		}
	}
	return false
}

// ToggleIndex flips the visibility of the i-th series.
func (c *ChartSpec) ToggleIndex(i int) bool {
	if i < 0 || i >= len(c.Series) {
		return false
	}
	c.Series[i].Hidden = !c.Series[i].Hidden
	return true
}

// VisibleSeries returns the series that are not hidden, in order.
func (c *ChartSpec) VisibleSeries() []Series {
	out := make([]Series, 0, len(c.Series))
	for _, s := range c.Series {
		if !s.Hidden {
			out = append(out, s)
		}
	}
	return out
}

// Empty reports whether there is nothing to draw.
func (c *ChartSpec) Empty() bool {
	for _, s := range c.Series {
		if !s.Hidden && len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// Years returns the x values of the spec: the axis ticks when set,
// otherwise the sorted union of visible point years.
func (c *ChartSpec) Years() []int {
	if len(c.XAxis.Ticks) > 0 {
		return c.XAxis.Ticks
	}
	return unionYears(c.VisibleSeries())
}

// YMax returns the largest y the visible series reach. Stacked bar series
// contribute their per-year sum; every other series its own points. A shared
// y scale therefore covers both the bar stacks and the markers.
func (c *ChartSpec) YMax() float64 {
	var maxY float64
	stacks := make(map[int]float64)
	for _, s := range c.VisibleSeries() {
		for _, p := range s.Points {
			if s.Stacked {
				stacks[p.X] += p.Y
				continue
			}
			maxY = max(maxY, p.Y)
		}
	}
	for _, v := range stacks {
		maxY = max(maxY, v)
	}
	return maxY
}

// StackAt returns the summed value of visible stacked series at year x.
func (c *ChartSpec) StackAt(x int) float64 {
	var sum float64
	for _, s := range c.VisibleSeries() {
		if !s.Stacked {
			continue
		}
		for _, p := range s.Points {
			if p.X == x {
				sum += p.Y
			}
		}
	}
	return sum
}
