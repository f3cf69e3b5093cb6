package tui

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/salarygap/internal/config"
	"github.com/theirongolddev/salarygap/internal/model"
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

func newTestApp(t *testing.T) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	a := NewApp(Options{DataDir: "./data", Config: config.DefaultConfig()})
	a.loaded = true
	a.width, a.height = 120, 40
	if err := a.onLoaded(testDataset()); err != nil {
		t.Fatal(err)
	}
	return a
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestOnLoaded_PopulatesInitialSelection(t *testing.T) {
	a := newTestApp(t)
	sel := a.sess.Selection()
	if sel.Year != 2012 || sel.Job != "Professor" {
		t.Fatalf("selection = %+v, want 2012/Professor", sel)
	}
	if got := a.sess.Value(model.FieldSalary); got != 118000 {
		t.Errorf("salary = %v, want 118000", got)
	}
	if got := a.sess.Value(model.FieldRent); got != 1450 {
		t.Errorf("rent = %v, want 1450", got)
	}
}

func TestCalculator_StepSelection(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "l")
	if got := a.sess.Selection().Job; got != "RA/TA" {
		t.Errorf("job after l = %q, want RA/TA", got)
	}
	a = press(t, a, "l")
	if got := a.sess.Selection().Job; got != "Professor" {
		t.Errorf("job should wrap to Professor, got %q", got)
	}

	a = press(t, a, "j", "l")
	if got := a.sess.Selection().Year; got != 2013 {
		t.Errorf("year after l = %d, want 2013", got)
	}
	if got := a.sess.Value(model.FieldSalary); got != 121000 {
		t.Errorf("salary = %v, want 121000", got)
	}

	// Years stop at the end of the table.
	a = press(t, a, "l")
	if got := a.sess.Selection().Year; got != 2013 {
		t.Errorf("year past the end = %d, want 2013", got)
	}
}

func TestCalculator_OverrideAndRevert(t *testing.T) {
	a := newTestApp(t)

	// Cursor to the rent row.
	a = press(t, a, "j", "j", "j", "enter")
	if !a.calc.editing {
		t.Fatal("enter on a field should start editing")
	}
	a.calc.input.SetValue("$2,000")
	a = press(t, a, "enter")

	if a.calc.editing {
		t.Error("enter should finish editing")
	}
	if got := a.sess.Value(model.FieldRent); got != 2000 {
		t.Errorf("rent = %v, want 2000", got)
	}
	if !a.sess.Overridden(model.FieldRent) {
		t.Error("rent should be marked manual")
	}

	a = press(t, a, "u")
	if got := a.sess.Value(model.FieldRent); got != 1450 {
		t.Errorf("rent after revert = %v, want 1450", got)
	}
}

func TestCalculator_RejectsBadAmount(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "j", "j", "j", "enter")
	a.calc.input.SetValue("-5")
	a = press(t, a, "enter")

	if !strings.Contains(a.calc.message, "negative") {
		t.Errorf("message = %q, want a negative-amount error", a.calc.message)
	}
	if a.sess.Overridden(model.FieldRent) {
		t.Error("a rejected amount must not override")
	}
}

func TestCalculator_EscCancelsEdit(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "j", "j", "j", "enter")
	a.calc.input.SetValue("99")
	a = press(t, a, "esc")

	if a.calc.editing {
		t.Error("esc should stop editing")
	}
	if a.sess.Overridden(model.FieldRent) {
		t.Error("esc must discard the typed value")
	}
}

func TestCalculator_LegendToggle(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "1")
	if !a.calc.line.Series[0].Hidden {
		t.Error("1 should hide the first series")
	}
	a = press(t, a, "1")
	if a.calc.line.Series[0].Hidden {
		t.Error("second 1 should show it again")
	}
}

func TestTabNavigation(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "o")
	if a.activeTab != tabCostOfLiving {
		t.Errorf("o -> tab %d, want %d", a.activeTab, tabCostOfLiving)
	}
	a = press(t, a, "x")
	if a.activeTab != tabSettings {
		t.Errorf("x -> tab %d, want %d", a.activeTab, tabSettings)
	}
	a = press(t, a, "c")
	if a.activeTab != tabCalculator {
		t.Errorf("c -> tab %d, want %d", a.activeTab, tabCalculator)
	}
}

func TestCosts_CategoriesAndLegend(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "o")

	if len(a.costs.view.Categories) != 0 {
		t.Fatalf("initial categories = %v, want none", a.costs.view.Categories)
	}

	a = press(t, a, "a")
	if !slices.Equal(a.costs.view.Categories, []string{"Rent", "Groceries"}) {
		t.Errorf("after a: %v, want all categories", a.costs.view.Categories)
	}
	if got := a.costs.chart.StackAt(2013); got != 22320 {
		t.Errorf("2013 stack = %v, want 22320", got)
	}

	// Hide Rent through the legend, then rebuild by unchecking Groceries.
	a = press(t, a, "1")
	a = press(t, a, "j", "j", "j", "j", " ")
	if !slices.Equal(a.costs.view.Categories, []string{"Rent"}) {
		t.Fatalf("after unchecking Groceries: %v, want [Rent]", a.costs.view.Categories)
	}
	for _, s := range a.costs.chart.Series {
		if s.Name == "Rent" && !s.Hidden {
			t.Error("Rent should stay hidden across rebuilds")
		}
	}

	a = press(t, a, "n")
	if len(a.costs.view.Categories) != 0 {
		t.Errorf("after n: %v, want none", a.costs.view.Categories)
	}
}

func TestCosts_YearRangeNeverInverts(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "o")

	a = press(t, a, "j", "l")
	if a.costs.view.MinYear != 2013 {
		t.Errorf("from = %d, want 2013", a.costs.view.MinYear)
	}
	a = press(t, a, "j", "h")
	if a.costs.view.MaxYear != 2013 {
		t.Errorf("to = %d, must not drop below from", a.costs.view.MaxYear)
	}
}

func TestToggleCategoryKeepsDomainOrder(t *testing.T) {
	domain := []string{"Rent", "Groceries", "Cheese"}
	got := toggleCategory(domain, []string{"Cheese"}, "Rent")
	if !slices.Equal(got, []string{"Rent", "Cheese"}) {
		t.Errorf("toggle on = %v, want [Rent Cheese]", got)
	}
	got = toggleCategory(domain, got, "Cheese")
	if !slices.Equal(got, []string{"Rent"}) {
		t.Errorf("toggle off = %v, want [Rent]", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"250", 250, false},
		{" $1,234.50 ", 1234.5, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1", 0, true},
		{"NaN", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAmount(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSettings_SaveValidates(t *testing.T) {
	a := newTestApp(t)

	a.settings.cursor = settingsFieldTheme
	if err := a.saveSetting("neon"); err == nil {
		t.Error("unknown theme should be rejected")
	}

	a.settings.cursor = settingsFieldAdditional
	if err := a.saveSetting("300"); err != nil {
		t.Fatalf("saveSetting: %v", err)
	}
	if a.cfg.Budget.AdditionalMonthly != 300 {
		t.Errorf("additional = %v, want 300", a.cfg.Budget.AdditionalMonthly)
	}

	saved, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved.Budget.AdditionalMonthly != 300 {
		t.Errorf("saved additional = %v, want 300", saved.Budget.AdditionalMonthly)
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := NewSetupValues(cfg, "/srv/tables")
	if v.DataDir != "/srv/tables" || v.Additional != "500.00" {
		t.Errorf("seeded values = %+v", v)
	}

	v.Additional = "1,000"
	v.Theme = "tokyo-night"
	if err := v.Apply(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Data.Dir != "/srv/tables" || cfg.Budget.AdditionalMonthly != 1000 || cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("applied config = %+v", cfg)
	}

	v.DataDir = "  "
	if err := v.Apply(&cfg); err == nil {
		t.Error("blank data dir should fail")
	}
}

func TestViewRendersEachTab(t *testing.T) {
	a := newTestApp(t)
	for _, key := range []string{"c", "o", "x"} {
		a = press(t, a, key)
		if out := a.View(); !strings.Contains(out, "alculator") {
			t.Errorf("tab %s: view is missing the tab bar", key)
		}
	}
}
