// Package source discovers and parses the yearly CSV tables.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theirongolddev/salarygap/internal/model"
)

const yearHeader = "year"

// ParseFile opens a CSV file and parses it as the named table.
func ParseFile(path, name string) (*model.YearlyTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := ParseTable(name, f)
	if err != nil {
		var se *model.SchemaError
		if errors.As(err, &se) && se.File == name {
			se.File = filepath.Base(path)
		}
		return nil, err
	}
	return t, nil
}

// ParseTable reads a wide yearly CSV table.
//
// Headers are trimmed. The "Year" column (case-insensitive) is required and
// every year must be a unique integer. Empty and pandas "Unnamed:" index
// columns are dropped. Empty value cells load as the 0 sentinel. Any schema
// problem returns a *model.SchemaError and no table.
func ParseTable(name string, r io.Reader) (*model.YearlyTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &model.SchemaError{File: name, Reason: "empty file"}
	}
	if err != nil {
		return nil, csvError(name, err)
	}

	yearCol := -1
	cols := make([]int, 0, len(header))
	t := &model.YearlyTable{Name: name}
	seen := make(map[string]bool, len(header))

	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case strings.EqualFold(h, yearHeader):
			if yearCol >= 0 {
				return nil, &model.SchemaError{File: name, Column: h, Reason: "duplicate year column"}
			}
			yearCol = i
		case isIndexArtifact(h):
			continue
		default:
			if seen[h] {
				return nil, &model.SchemaError{File: name, Column: h, Reason: "duplicate column"}
			}
			seen[h] = true
			t.Categories = append(t.Categories, h)
			cols = append(cols, i)
		}
	}
	if yearCol < 0 {
		return nil, &model.SchemaError{File: name, Column: "Year", Reason: "missing year column"}
	}

	years := make(map[int]bool)
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}

		year, err := parseYear(rec[yearCol])
		if err != nil {
			return nil, &model.SchemaError{File: name, Column: "Year", Row: row, Reason: err.Error()}
		}
		if years[year] {
			return nil, &model.SchemaError{File: name, Column: "Year", Row: row, Reason: fmt.Sprintf("duplicate year %d", year)}
		}
		years[year] = true

		yr := model.YearRow{Year: year, Values: make(map[string]float64, len(cols))}
		for j, c := range cols {
			v, err := parseAmount(rec[c])
			if err != nil {
				return nil, &model.SchemaError{File: name, Column: t.Categories[j], Row: row, Reason: err.Error()}
			}
			yr.Values[t.Categories[j]] = v
		}
		t.Rows = append(t.Rows, yr)
	}

	return t, nil
}

// isIndexArtifact reports headers left behind by a dataframe index column.
func isIndexArtifact(h string) bool {
	return h == "" || strings.HasPrefix(h, "Unnamed:")
}

func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing year")
	}
	// Dataframe exports write integer years as 2012.0.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("year %q is not an integer", s)
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("year %q is out of range", s)
	}
	return int(f), nil
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %q is not numeric", s)
	}
	return v, nil
}

func csvError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		// ParseError lines count the header as line 1.
		return &model.SchemaError{File: name, Row: pe.Line - 1, Reason: pe.Err.Error()}
	}
	return fmt.Errorf("reading %s: %w", name, err)
}
