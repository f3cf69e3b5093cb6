// Package model defines domain types for salarygap tables and budgets.
package model

import "slices"

// YearRow is one year's amounts keyed by category name.
type YearRow struct {
	Year   int
	Values map[string]float64
}

// YearlyTable is a wide table: one row per year, one column per category.
// Amounts are non-negative; 0 is the "no data" sentinel.
type YearlyTable struct {
	Name       string
	Categories []string // column order as loaded, year column excluded
	Rows       []YearRow
}

// LongRecord is one (year, category, value) triple of a flattened table.
type LongRecord struct {
	Year     int
	Category string
	Value    float64
}

// Dataset holds the three read-only tables loaded at startup.
type Dataset struct {
	Salaries     *YearlyTable
	CostOfLiving *YearlyTable
	AnnualCosts  *YearlyTable
}

// Table names used in errors and the cache.
const (
	TableSalaries     = "salaries"
	TableCostOfLiving = "cost_of_living"
	TableAnnualCosts  = "annual_costs"
)

// YearDomain returns the table's years in row order.
func (t *YearlyTable) YearDomain() []int {
	years := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		years[i] = r.Year
	}
	return years
}

// CategoryDomain returns the category names in column order.
func (t *YearlyTable) CategoryDomain() []string {
	return slices.Clone(t.Categories)
}

// HasYear reports whether the table has a row for year.
func (t *YearlyTable) HasYear(year int) bool {
	_, ok := t.rowIndex(year)
	return ok
}

// HasCategory reports whether category is a column of the table.
func (t *YearlyTable) HasCategory(category string) bool {
	return slices.Contains(t.Categories, category)
}

// Row returns the row for year.
func (t *YearlyTable) Row(year int) (YearRow, error) {
	i, ok := t.rowIndex(year)
	if !ok {
		return YearRow{}, &LookupError{Table: t.Name, Year: year}
	}
	return t.Rows[i], nil
}

// Value returns the amount at (year, category). A missing year or category
// is a *LookupError, never a silent zero.
func (t *YearlyTable) Value(year int, category string) (float64, error) {
	row, err := t.Row(year)
	if err != nil {
		return 0, err
	}
	v, ok := row.Values[category]
	if !ok {
		return 0, &LookupError{Table: t.Name, Year: year, Key: category}
	}
	return v, nil
}

// YearBounds returns the smallest and largest year. Both are 0 for an empty table.
func (t *YearlyTable) YearBounds() (minYear, maxYear int) {
	if len(t.Rows) == 0 {
		return 0, 0
	}
	minYear, maxYear = t.Rows[0].Year, t.Rows[0].Year
	for _, r := range t.Rows[1:] {
		minYear = min(minYear, r.Year)
		maxYear = max(maxYear, r.Year)
	}
	return minYear, maxYear
}

func (t *YearlyTable) rowIndex(year int) (int, bool) {
	for i, r := range t.Rows {
		if r.Year == year {
			return i, true
		}
	}
	return 0, false
}
