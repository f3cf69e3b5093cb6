package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/theirongolddev/salarygap/internal/model"
)

func testDataset() *model.Dataset {
	return &model.Dataset{
		Salaries: &model.YearlyTable{
			Name:       model.TableSalaries,
			Categories: []string{"Professor", "RA/TA"},
			Rows: []model.YearRow{
				{Year: 2012, Values: map[string]float64{"Professor": 118000, "RA/TA": 38000}},
				{Year: 2013, Values: map[string]float64{"Professor": 0, "RA/TA": 39000}},
				{Year: 2014, Values: map[string]float64{"Professor": 128000, "RA/TA": 40000}},
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
		AnnualCosts: &model.YearlyTable{Name: model.TableAnnualCosts},
	}
}

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(testDataset(), model.DefaultCostColumns(), model.DefaultAdditionalMonthly)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNew_InitialState(t *testing.T) {
	m := newManager(t)
	s := m.Snapshot()

	want := State{Year: 2012, Job: "Professor"}
	if s.State != want {
		t.Errorf("State = %+v, want %+v", s.State, want)
	}
	if s.Inputs.AdditionalMonthlyExpenses != 500 {
		t.Errorf("Additional = %v, want 500", s.Inputs.AdditionalMonthlyExpenses)
	}
	if s.Inputs.Salary != 0 || s.Inputs.Rent != 0 {
		t.Errorf("money fields should start at 0, got %+v", s.Inputs)
	}
}

func TestNew_EmptySalaryTable(t *testing.T) {
	ds := testDataset()
	ds.Salaries.Rows = nil
	_, err := New(ds, model.DefaultCostColumns(), 500)
	var se *model.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *model.SchemaError", err)
	}
}

func TestOnSelectionChanged_Populates(t *testing.T) {
	m := newManager(t)
	if err := m.OnSelectionChanged(2013, "RA/TA"); err != nil {
		t.Fatalf("OnSelectionChanged: %v", err)
	}

	in := m.Inputs()
	want := model.BudgetInputs{
		Salary: 39000, Rent: 1500, Groceries: 360,
		CheeseBlockPrice: 9.75, CoffeePrice: 4.5, AdditionalMonthlyExpenses: 500,
	}
	if in != want {
		t.Errorf("Inputs = %+v, want %+v", in, want)
	}
	if sel := m.Selection(); sel.Year != 2013 || sel.Job != "RA/TA" {
		t.Errorf("Selection = %+v", sel)
	}
}

func TestOnSelectionChanged_SentinelSalaryIsData(t *testing.T) {
	m := newManager(t)
	if err := m.OnSelectionChanged(2013, "Professor"); err != nil {
		t.Fatalf("unexpected error for reported zero: %v", err)
	}
	if m.Inputs().Salary != 0 {
		t.Errorf("Salary = %v, want 0", m.Inputs().Salary)
	}
}

func TestOnSelectionChanged_DiscardsManualEdits(t *testing.T) {
	m := newManager(t)
	if err := m.OnSelectionChanged(2012, "Professor"); err != nil {
		t.Fatal(err)
	}

	for _, f := range model.Fields {
		if err := m.Override(f, 1); err != nil {
			t.Fatalf("Override(%v): %v", f, err)
		}
	}
	if got := m.Inputs().Rent; got != 1 {
		t.Fatalf("Rent after override = %v, want 1", got)
	}

	if err := m.OnSelectionChanged(2013, "RA/TA"); err != nil {
		t.Fatal(err)
	}

	for _, f := range model.Fields {
		if f.AutoPopulated() && m.Overridden(f) {
			t.Errorf("%v still overridden after selection change", f)
		}
	}
	if !m.Overridden(model.FieldAdditional) {
		t.Error("additional expenses override should survive selection change")
	}
	in := m.Inputs()
	if in.Salary != 39000 || in.Rent != 1500 || in.CoffeePrice != 4.5 {
		t.Errorf("auto fields not refreshed: %+v", in)
	}
	if in.AdditionalMonthlyExpenses != 1 {
		t.Errorf("Additional = %v, want manual 1", in.AdditionalMonthlyExpenses)
	}
}

func TestOnSelectionChanged_LookupErrorLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		job   string
		table string
	}{
		{"absent year", 1999, "Professor", model.TableSalaries},
		{"absent job", 2012, "Astronaut", model.TableSalaries},
		{"year missing from cost table", 2014, "Professor", model.TableCostOfLiving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager(t)
			if err := m.OnSelectionChanged(2012, "RA/TA"); err != nil {
				t.Fatal(err)
			}
			if err := m.Override(model.FieldRent, 999); err != nil {
				t.Fatal(err)
			}
			before := m.Snapshot()

			err := m.OnSelectionChanged(tt.year, tt.job)
			var le *model.LookupError
			if !errors.As(err, &le) {
				t.Fatalf("err = %v, want *model.LookupError", err)
			}
			if le.Table != tt.table {
				t.Errorf("Table = %q, want %q", le.Table, tt.table)
			}

			if after := m.Snapshot(); !reflect.DeepEqual(before, after) {
				t.Errorf("state changed:\nbefore %+v\nafter  %+v", before, after)
			}
		})
	}
}

func TestOverride_ClearAndUnknown(t *testing.T) {
	m := newManager(t)
	if err := m.OnSelectionChanged(2012, "Professor"); err != nil {
		t.Fatal(err)
	}

	if err := m.Override(model.FieldSalary, 60000); err != nil {
		t.Fatal(err)
	}
	if m.Value(model.FieldSalary) != 60000 {
		t.Errorf("Salary = %v, want 60000", m.Value(model.FieldSalary))
	}

	m.ClearOverride(model.FieldSalary)
	if m.Value(model.FieldSalary) != 118000 {
		t.Errorf("Salary after clear = %v, want auto 118000", m.Value(model.FieldSalary))
	}

	if err := m.Override(model.Field(42), 1); err == nil {
		t.Error("Override(unknown) should fail")
	}
}

func TestSavings_UsesInputs(t *testing.T) {
	m := newManager(t)
	overrides := map[model.Field]float64{
		model.FieldSalary:    60000,
		model.FieldRent:      1500,
		model.FieldGroceries: 400,
		model.FieldCheese:    10,
		model.FieldCoffee:    4,
	}
	for f, v := range overrides {
		if err := m.Override(f, v); err != nil {
			t.Fatal(err)
		}
	}

	got := m.Savings()
	if got.MonthlySavings != 2548 || got.AnnualSavings != 30500 {
		t.Errorf("Savings = %+v, want 2548/30500", got)
	}
}
