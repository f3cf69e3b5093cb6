package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/theirongolddev/salarygap/internal/model"
)

func lineRecords() []model.LongRecord {
	return []model.LongRecord{
		{Year: 2012, Category: "Professor", Value: 118000},
		{Year: 2012, Category: "RA/TA", Value: 38000},
		{Year: 2014, Category: "Professor", Value: 128000},
		{Year: 2013, Category: "RA/TA", Value: 39000},
	}
}

func TestBuildLineSpec(t *testing.T) {
	spec := BuildLineSpec(lineRecords())

	if len(spec.Series) != 2 {
		t.Fatalf("series = %d, want 2", len(spec.Series))
	}
	if spec.Series[0].Name != "Professor" || spec.Series[1].Name != "RA/TA" {
		t.Errorf("series order = %q, %q, want first-seen", spec.Series[0].Name, spec.Series[1].Name)
	}
	if spec.Series[0].Color == spec.Series[1].Color {
		t.Error("series should get distinct palette colours")
	}
	for _, s := range spec.Series {
		if s.Mark != MarkLine {
			t.Errorf("%s mark = %s, want line", s.Name, s.Mark)
		}
	}
	if spec.YAxis.Title != "Annual Salary ($)" {
		t.Errorf("YAxis.Title = %q", spec.YAxis.Title)
	}
	if spec.Title != "Annual Salaries of Different Positions: 2012-2014" {
		t.Errorf("Title = %q", spec.Title)
	}
	if !spec.Legend.Toggleable {
		t.Error("line legend must be toggleable")
	}

	ticks := spec.XAxis.Ticks
	if len(ticks) != 3 || ticks[0] != 2012 || ticks[2] != 2014 {
		t.Errorf("ticks = %v, want [2012 2013 2014]", ticks)
	}
}

func TestToggle_KeepsPoints(t *testing.T) {
	spec := BuildLineSpec(lineRecords())
	before := len(spec.Series[1].Points)

	if !spec.Toggle("RA/TA") {
		t.Fatal("Toggle(RA/TA) = false")
	}
	if !spec.Series[1].Hidden {
		t.Error("RA/TA should be hidden")
	}
	if len(spec.Series[1].Points) != before {
		t.Error("Toggle must not touch points")
	}
	vis := spec.VisibleSeries()
	if len(vis) != 1 || vis[0].Name != "Professor" {
		t.Errorf("VisibleSeries = %v", vis)
	}

	spec.Toggle("RA/TA")
	if len(spec.VisibleSeries()) != 2 {
		t.Error("second toggle should show the series again")
	}
	if spec.Toggle("Astronaut") {
		t.Error("Toggle(unknown) = true")
	}
}

func TestBuildStackedBarWithMarkerSpec(t *testing.T) {
	bars := []model.LongRecord{
		{Year: 2013, Category: "Rent", Value: 18000},
		{Year: 2013, Category: "Groceries", Value: 4300},
		{Year: 2012, Category: "Rent", Value: 17400},
		{Year: 2012, Category: "Groceries", Value: 0},
	}
	markers := []model.LongRecord{
		{Year: 2012, Category: "RA/TA", Value: 38000},
		{Year: 2013, Category: "RA/TA", Value: 39000},
	}

	spec := BuildStackedBarWithMarkerSpec(bars, markers)

	if !spec.SharedY {
		t.Error("bars and markers must share the y scale")
	}
	if spec.XAxis.Type != Nominal {
		t.Errorf("XAxis.Type = %s, want nominal", spec.XAxis.Type)
	}
	if len(spec.Series) != 3 {
		t.Fatalf("series = %d, want 2 bars + 1 marker", len(spec.Series))
	}

	rent := spec.Series[0]
	if rent.Name != "Rent" || rent.Mark != MarkBar || !rent.Stacked {
		t.Errorf("first series = %+v, want stacked Rent bar", rent)
	}
	if rent.Points[0].X != 2012 {
		t.Errorf("bar points not sorted by year: %v", rent.Points)
	}
	if spec.Series[1].Color != set2[1] {
		t.Errorf("Groceries colour = %s, want Set2[1]", spec.Series[1].Color)
	}

	star := spec.Series[2]
	if star.Mark != MarkPoint || star.Shape != ShapeStar || star.Color != markerFill || star.Stroke != markerStroke {
		t.Errorf("marker = %+v, want gold star with black stroke", star)
	}
	if star.Name != "RA/TA" || len(star.Points) != 2 {
		t.Errorf("marker = %+v, want 2 RA/TA points", star)
	}

	if got := spec.StackAt(2013); got != 22300 {
		t.Errorf("StackAt(2013) = %v, want 22300", got)
	}
	if got := spec.YMax(); got != 39000 {
		t.Errorf("YMax = %v, want 39000 (marker above stacks)", got)
	}

	spec.Toggle("RA/TA")
	if got := spec.YMax(); got != 22300 {
		t.Errorf("YMax without marker = %v, want 22300", got)
	}
}

func TestBuildStackedBarWithMarkerSpec_SumsDuplicates(t *testing.T) {
	spec := BuildStackedBarWithMarkerSpec([]model.LongRecord{
		{Year: 2012, Category: "Rent", Value: 100},
		{Year: 2012, Category: "Rent", Value: 50},
	}, nil)
	if len(spec.Series) != 1 || len(spec.Series[0].Points) != 1 || spec.Series[0].Points[0].Y != 150 {
		t.Errorf("series = %+v, want one Rent point of 150", spec.Series)
	}
}

func TestBuildStackedBarWithMarkerSpec_Empty(t *testing.T) {
	spec := BuildStackedBarWithMarkerSpec(nil, nil)
	if len(spec.Series) != 0 {
		t.Errorf("series = %d, want 0", len(spec.Series))
	}
	if !spec.Empty() {
		t.Error("Empty() = false")
	}
	if spec.YMax() != 0 {
		t.Errorf("YMax = %v, want 0", spec.YMax())
	}
}

func TestRenderPNG(t *testing.T) {
	specs := map[string]ChartSpec{
		"line":  BuildLineSpec(lineRecords()),
		"bars":  BuildStackedBarWithMarkerSpec([]model.LongRecord{{Year: 2012, Category: "Rent", Value: 1}}, []model.LongRecord{{Year: 2012, Category: "RA/TA", Value: 2}}),
		"empty": BuildStackedBarWithMarkerSpec(nil, nil),
	}

	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := RenderPNG(spec, &buf, 640, 400); err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatalf("decoding output: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 400 {
				t.Errorf("size = %dx%d, want 640x400", b.Dx(), b.Dy())
			}
		})
	}
}
