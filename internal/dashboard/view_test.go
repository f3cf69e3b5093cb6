package dashboard

import (
	"testing"

	"github.com/theirongolddev/salarygap/internal/chart"
	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/session"
)

func testDataset() *model.Dataset {
	return &model.Dataset{
		Salaries: &model.YearlyTable{
			Name:       model.TableSalaries,
			Categories: []string{"Professor", "RA/TA"},
			Rows: []model.YearRow{
				{Year: 2012, Values: map[string]float64{"Professor": 118000, "RA/TA": 0}},
				{Year: 2013, Values: map[string]float64{"Professor": 121000, "RA/TA": 39000}},
			},
		},
		CostOfLiving: &model.YearlyTable{
			Name:       model.TableCostOfLiving,
			Categories: []string{"1bed_city", "Groceries", "LocalCheese", "Cappucino"},
			Rows: []model.YearRow{
				{Year: 2012, Values: map[string]float64{"1bed_city": 1450, "Groceries": 350, "LocalCheese": 9.5, "Cappucino": 4.25}},
				{Year: 2013, Values: map[string]float64{"1bed_city": 1500, "Groceries": 360, "LocalCheese": 9.75, "Cappucino": 4.5}},
			},
		},
		AnnualCosts: &model.YearlyTable{
			Name:       model.TableAnnualCosts,
			Categories: []string{"Rent", "Groceries"},
			Rows: []model.YearRow{
				{Year: 2012, Values: map[string]float64{"Rent": 17400, "Groceries": 4200}},
				{Year: 2013, Values: map[string]float64{"Rent": 18000, "Groceries": 4320}},
			},
		},
	}
}

func TestDefaultCostView(t *testing.T) {
	cv := DefaultCostView(testDataset())
	if cv.Job != "RA/TA" {
		t.Errorf("Job = %q, want last job RA/TA", cv.Job)
	}
	if cv.MinYear != 2012 || cv.MaxYear != 2013 {
		t.Errorf("range = %d-%d, want 2012-2013", cv.MinYear, cv.MaxYear)
	}
	if len(cv.Categories) != 0 {
		t.Errorf("Categories = %v, want none checked", cv.Categories)
	}
}

func TestBuild(t *testing.T) {
	ds := testDataset()
	m, err := session.New(ds, model.DefaultCostColumns(), 500)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.OnSelectionChanged(2013, "Professor"); err != nil {
		t.Fatal(err)
	}

	cv := DefaultCostView(ds)
	v := Build(m, cv)

	if v.Selection.Job != "Professor" || v.Inputs.Salary != 121000 {
		t.Errorf("view selection/inputs = %+v / %+v", v.Selection, v.Inputs)
	}
	if v.Savings != m.Savings() {
		t.Errorf("Savings = %+v, want %+v", v.Savings, m.Savings())
	}

	// RA/TA's 2012 zero is not plotted on the line chart.
	for _, s := range v.LineChart.Series {
		if s.Name == "RA/TA" && len(s.Points) != 1 {
			t.Errorf("RA/TA line points = %d, want 1", len(s.Points))
		}
	}

	// No categories checked: only the salary marker is drawn.
	if len(v.CostChart.Series) != 1 || v.CostChart.Series[0].Mark != chart.MarkPoint {
		t.Errorf("cost chart series = %+v, want marker only", v.CostChart.Series)
	}
	if v.Footnote == "" {
		t.Error("footnote missing")
	}

	cv.Categories = []string{"Rent", "Groceries"}
	cv.MinYear, cv.MaxYear = 2013, 2013
	v = Build(m, cv)
	if len(v.CostChart.Series) != 3 {
		t.Fatalf("cost chart series = %d, want 2 bars + marker", len(v.CostChart.Series))
	}
	if got := v.CostChart.StackAt(2013); got != 22320 {
		t.Errorf("StackAt(2013) = %v, want 22320", got)
	}
	if got := v.CostChart.StackAt(2012); got != 0 {
		t.Errorf("StackAt(2012) = %v, want 0 (outside range)", got)
	}
}

func TestTone(t *testing.T) {
	tests := []struct {
		v    float64
		want SavingsTone
	}{
		{2548, TonePositive},
		{-0.01, ToneNegative},
		{0, ToneHidden},
	}
	for _, tt := range tests {
		if got := Tone(tt.v); got != tt.want {
			t.Errorf("Tone(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestLineChart_SeriesFollowColumnOrder(t *testing.T) {
	ds := testDataset()
	ds.Salaries = &model.YearlyTable{
		Name:       model.TableSalaries,
		Categories: []string{"Head Coach", "RA/TA"},
		Rows: []model.YearRow{
			{Year: 2012, Values: map[string]float64{"Head Coach": 0, "RA/TA": 38000}},
			{Year: 2013, Values: map[string]float64{"Head Coach": 2400000, "RA/TA": 39000}},
		},
	}

	spec := LineChart(ds)
	if len(spec.Series) != 2 {
		t.Fatalf("series = %d, want 2", len(spec.Series))
	}
	if spec.Series[0].Name != "Head Coach" || spec.Series[0].Color != "#636EFA" {
		t.Errorf("series 0 = %s %s, want Head Coach #636EFA", spec.Series[0].Name, spec.Series[0].Color)
	}
	if spec.Series[1].Name != "RA/TA" || spec.Series[1].Color != "#EF553B" {
		t.Errorf("series 1 = %s %s, want RA/TA #EF553B", spec.Series[1].Name, spec.Series[1].Color)
	}
	if n := len(spec.Series[0].Points); n != 1 {
		t.Errorf("Head Coach points = %d, want 1 (2012 zero dropped)", n)
	}
}
