// Package session holds the mutable selection and budget state of one dashboard user.
package session

import (
	"fmt"

	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/pipeline"
)

// State is the selection plus the values auto-populated from it.
type State struct {
	Year      int     `json:"year"`
	Job       string  `json:"job"`
	Salary    float64 `json:"salary"`
	Rent      float64 `json:"rent"`
	Groceries float64 `json:"groceries"`
	Cheese    float64 `json:"cheese"`
	Coffee    float64 `json:"coffee"`
}

// Snapshot is a value copy of everything the manager holds.
type Snapshot struct {
	State      State               `json:"state"`
	Additional float64             `json:"additional_default"`
	Overrides  map[string]float64  `json:"overrides"`
	Inputs     model.BudgetInputs  `json:"inputs"`
	Savings    model.SavingsResult `json:"savings"`
}

// Manager applies selection changes and manual overrides to the budget state.
// It is not safe for concurrent use; callers handle one event at a time.
type Manager struct {
	ds         *model.Dataset
	cols       model.CostColumns
	additional float64
	state      State
	manual     map[model.Field]float64
}

// New starts a session at the first salary year and first job with every
// money field at zero. additional is the default for additional monthly expenses.
func New(ds *model.Dataset, cols model.CostColumns, additional float64) (*Manager, error) {
	if ds == nil || ds.Salaries == nil || ds.CostOfLiving == nil {
		return nil, &model.SchemaError{File: model.TableSalaries, Reason: "dataset not loaded"}
	}
	if len(ds.Salaries.Rows) == 0 || len(ds.Salaries.Categories) == 0 {
		return nil, &model.SchemaError{File: ds.Salaries.Name, Reason: "salary table has no years or no jobs"}
	}

	return &Manager{
		ds:         ds,
		cols:       cols,
		additional: additional,
		state: State{
			Year: ds.Salaries.Rows[0].Year,
			Job:  ds.Salaries.Categories[0],
		},
		manual: make(map[model.Field]float64),
	}, nil
}

// Dataset returns the tables the session reads from.
func (m *Manager) Dataset() *model.Dataset { return m.ds }

// Selection returns the current (year, job).
func (m *Manager) Selection() model.Selection {
	return model.Selection{Year: m.state.Year, Job: m.state.Job}
}

// OnSelectionChanged looks up salary and cost values for (year, job) and
// replaces the auto-populated fields, discarding their manual overrides.
// On a *model.LookupError the state is left exactly as it was.
func (m *Manager) OnSelectionChanged(year int, job string) error {
	sal := m.ds.Salaries
	if !sal.HasYear(year) {
		return &model.LookupError{Table: sal.Name, Year: year}
	}
	if !sal.HasCategory(job) {
		return &model.LookupError{Table: sal.Name, Year: year, Key: job}
	}

	next := State{Year: year, Job: job}
	var err error
	if next.Salary, err = sal.Value(year, job); err != nil {
		return err
	}

	cost := m.ds.CostOfLiving
	targets := []*float64{&next.Rent, &next.Groceries, &next.Cheese, &next.Coffee}
	for i, col := range m.cols.All() {
		if *targets[i], err = cost.Value(year, col); err != nil {
			return err
		}
	}

	m.state = next
	for f := range m.manual {
		if f.AutoPopulated() {
			delete(m.manual, f)
		}
	}
	return nil
}

// Override records a manual value for field until the next selection change.
// Additional expenses are the exception: their override is kept.
func (m *Manager) Override(field model.Field, value float64) error {
	if !field.Valid() {
		return fmt.Errorf("override: unknown field %v", field)
	}
	m.manual[field] = value
	return nil
}

// ClearOverride drops a manual value so the auto-populated one shows again.
func (m *Manager) ClearOverride(field model.Field) {
	delete(m.manual, field)
}

// Overridden reports whether field currently holds a manual value.
func (m *Manager) Overridden(field model.Field) bool {
	_, ok := m.manual[field]
	return ok
}

// AutoValue returns the value a field takes when it is not overridden.
func (m *Manager) AutoValue(field model.Field) float64 {
	switch field {
	case model.FieldSalary:
		return m.state.Salary
	case model.FieldRent:
		return m.state.Rent
	case model.FieldGroceries:
		return m.state.Groceries
	case model.FieldCheese:
		return m.state.Cheese
	case model.FieldCoffee:
		return m.state.Coffee
	case model.FieldAdditional:
		return m.additional
	}
	return 0
}

// Value returns the effective value of field.
func (m *Manager) Value(field model.Field) float64 {
	if v, ok := m.manual[field]; ok {
		return v
	}
	return m.AutoValue(field)
}

// Inputs returns the auto-populated values with manual overrides applied.
func (m *Manager) Inputs() model.BudgetInputs {
	return model.BudgetInputs{
		Salary:                    m.Value(model.FieldSalary),
		Rent:                      m.Value(model.FieldRent),
		Groceries:                 m.Value(model.FieldGroceries),
		CheeseBlockPrice:          m.Value(model.FieldCheese),
		CoffeePrice:               m.Value(model.FieldCoffee),
		AdditionalMonthlyExpenses: m.Value(model.FieldAdditional),
	}
}

// Savings computes savings from the current inputs.
func (m *Manager) Savings() model.SavingsResult {
	return pipeline.ComputeSavings(m.Inputs())
}

// Snapshot returns a copy of the whole session state.
func (m *Manager) Snapshot() Snapshot {
	overrides := make(map[string]float64, len(m.manual))
	for f, v := range m.manual {
		overrides[f.String()] = v
	}
	return Snapshot{
		State:      m.state,
		Additional: m.additional,
		Overrides:  overrides,
		Inputs:     m.Inputs(),
		Savings:    m.Savings(),
	}
}
