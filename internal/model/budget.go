package model

import "fmt"

// DefaultAdditionalMonthly is the starting value for additional monthly expenses.
const DefaultAdditionalMonthly = 500.0

// Selection is the (year, job) pair that drives auto-population.
type Selection struct {
	Year int    `json:"year"`
	Job  string `json:"job"`
}

// BudgetInputs are the figures the savings calculator works from.
type BudgetInputs struct {
	Salary                    float64 `json:"salary"`
	Rent                      float64 `json:"rent"`
	Groceries                 float64 `json:"groceries"`
	CheeseBlockPrice          float64 `json:"cheese_block_price"`
	CoffeePrice               float64 `json:"coffee_price"`
	AdditionalMonthlyExpenses float64 `json:"additional_monthly_expenses"`
}

// SavingsResult is derived from BudgetInputs and never stored.
type SavingsResult struct {
	MonthlySavings float64 `json:"monthly_savings"`
	AnnualSavings  float64 `json:"annual_savings"`
}

// Field names one editable BudgetInputs member.
type Field int

const (
	FieldSalary Field = iota
	FieldRent
	FieldGroceries
	FieldCheese
	FieldCoffee
	FieldAdditional
)

// Fields lists every editable field in display order.
var Fields = []Field{FieldSalary, FieldRent, FieldGroceries, FieldCheese, FieldCoffee, FieldAdditional}

var fieldNames = map[Field]string{
	FieldSalary:     "salary",
	FieldRent:       "rent",
	FieldGroceries:  "groceries",
	FieldCheese:     "cheese",
	FieldCoffee:     "coffee",
	FieldAdditional: "additional",
}

var fieldLabels = map[Field]string{
	FieldSalary:     "Annual Salary",
	FieldRent:       "Monthly Rent",
	FieldGroceries:  "Monthly Groceries",
	FieldCheese:     "Cheese Block Price",
	FieldCoffee:     "Coffee Price",
	FieldAdditional: "Additional Monthly Expenses",
}

func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Label returns the human-readable field name.
func (f Field) Label() string {
	return fieldLabels[f]
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	_, ok := fieldNames[f]
	return ok
}

// AutoPopulated reports whether a selection change sets this field.
func (f Field) AutoPopulated() bool {
	return f.Valid() && f != FieldAdditional
}

// ParseField resolves a field by its String name.
func ParseField(s string) (Field, error) {
	for f, n := range fieldNames {
		if n == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", s)
}

// CostColumns names the cost-of-living columns used for auto-population.
type CostColumns struct {
	Rent      string `toml:"rent"`
	Groceries string `toml:"groceries"`
	Cheese    string `toml:"cheese"`
	Coffee    string `toml:"coffee"`
}

// DefaultCostColumns matches the bundled Seattle cost-of-living file.
func DefaultCostColumns() CostColumns {
	return CostColumns{
		Rent:      "1bed_city",
		Groceries: "Groceries",
		Cheese:    "LocalCheese",
		Coffee:    "Cappucino",
	}
}

// All returns the configured column names in rent, groceries, cheese, coffee order.
func (c CostColumns) All() []string {
	return []string{c.Rent, c.Groceries, c.Cheese, c.Coffee}
}

// FileNames are the three CSV file names inside the data directory.
type FileNames struct {
	Salaries     string `toml:"salaries"`
	CostOfLiving string `toml:"cost_of_living"`
	AnnualCosts  string `toml:"annual_costs"`
}

// DefaultFileNames returns the file names of the bundled dataset.
func DefaultFileNames() FileNames {
	return FileNames{
		Salaries:     "processed_data_FP2.csv",
		CostOfLiving: "seattle_col.csv",
		AnnualCosts:  "annual_costs.csv",
	}
}
