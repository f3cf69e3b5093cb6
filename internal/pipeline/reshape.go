package pipeline

import (
	"slices"

	"github.com/theirongolddev/salarygap/internal/model"
)

// ToLongLine flattens a table for line series: one record per (year,
// category), column by column and then row by row, so series come out in
// column order. Zero values mean "not reported" and are dropped, which
// decides which points a line chart shows.
func ToLongLine(t *model.YearlyTable) []model.LongRecord {
	out := make([]model.LongRecord, 0, len(t.Rows)*len(t.Categories))
	for _, cat := range t.Categories {
		for _, row := range t.Rows {
			v := row.Values[cat]
			if v == 0 {
				continue
			}
			out = append(out, model.LongRecord{Year: row.Year, Category: cat, Value: v})
		}
	}
	return out
}

// ToLongBar flattens the selected categories for years in [minYear, maxYear].
// Zeros are kept so bar sums see them. Categories keep the caller's order;
// unknown and repeated names are skipped. No selection yields an empty,
// non-nil slice.
func ToLongBar(t *model.YearlyTable, selected []string, minYear, maxYear int) []model.LongRecord {
	if minYear > maxYear {
		minYear, maxYear = maxYear, minYear
	}

	cats := make([]string, 0, len(selected))
	for _, c := range selected {
		if t.HasCategory(c) && !slices.Contains(cats, c) {
			cats = append(cats, c)
		}
	}

	out := make([]model.LongRecord, 0, len(t.Rows)*len(cats))
	if len(cats) == 0 {
		return out
	}
	for _, row := range t.Rows {
		if row.Year < minYear || row.Year > maxYear {
			continue
		}
		for _, cat := range cats {
			out = append(out, model.LongRecord{Year: row.Year, Category: cat, Value: row.Values[cat]})
		}
	}
	return out
}

// Widen re-aggregates long records into year -> category -> summed value.
func Widen(records []model.LongRecord) map[int]map[string]float64 {
	out := make(map[int]map[string]float64)
	for _, r := range records {
		byCat, ok := out[r.Year]
		if !ok {
			byCat = make(map[string]float64)
			out[r.Year] = byCat
		}
		byCat[r.Category] += r.Value
	}
	return out
}

// FilterYears returns the table's years inside [minYear, maxYear], in row order.
func FilterYears(t *model.YearlyTable, minYear, maxYear int) []int {
	if minYear > maxYear {
		minYear, maxYear = maxYear, minYear
	}
	var years []int
	for _, row := range t.Rows {
		if row.Year >= minYear && row.Year <= maxYear {
			years = append(years, row.Year)
		}
	}
	return years
}
