package model

import (
	"errors"
	"testing"
)

func sampleTable() *YearlyTable {
	return &YearlyTable{
		Name:       "salaries",
		Categories: []string{"Professor", "Librarian"},
		Rows: []YearRow{
			{Year: 2013, Values: map[string]float64{"Professor": 120000, "Librarian": 0}},
			{Year: 2012, Values: map[string]float64{"Professor": 118000, "Librarian": 61000}},
		},
	}
}

func TestYearlyTable_Domains(t *testing.T) {
	tbl := sampleTable()

	years := tbl.YearDomain()
	if len(years) != 2 || years[0] != 2013 || years[1] != 2012 {
		t.Errorf("YearDomain = %v, want [2013 2012] (row order)", years)
	}

	cats := tbl.CategoryDomain()
	cats[0] = "mutated"
	if tbl.Categories[0] != "Professor" {
		t.Error("CategoryDomain returned the backing slice")
	}

	lo, hi := tbl.YearBounds()
	if lo != 2012 || hi != 2013 {
		t.Errorf("YearBounds = (%d, %d), want (2012, 2013)", lo, hi)
	}
}

func TestYearlyTable_Value(t *testing.T) {
	tbl := sampleTable()

	v, err := tbl.Value(2012, "Librarian")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 61000 {
		t.Errorf("Value = %v, want 61000", v)
	}

	// A sentinel zero is data, not a lookup failure.
	if v, err := tbl.Value(2013, "Librarian"); err != nil || v != 0 {
		t.Errorf("Value(2013, Librarian) = (%v, %v), want (0, nil)", v, err)
	}

	var le *LookupError
	if _, err := tbl.Value(1999, "Professor"); !errors.As(err, &le) {
		t.Fatalf("missing year: err = %v, want *LookupError", err)
	}
	if le.Year != 1999 || le.Key != "" {
		t.Errorf("LookupError = %+v, want year 1999 and empty key", le)
	}

	if _, err := tbl.Value(2012, "Astronaut"); !errors.As(err, &le) {
		t.Fatalf("missing category: err = %v, want *LookupError", err)
	}
	if le.Key != "Astronaut" {
		t.Errorf("LookupError.Key = %q, want Astronaut", le.Key)
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(f.String())
		if err != nil || got != f {
			t.Errorf("ParseField(%q) = (%v, %v), want %v", f.String(), got, err, f)
		}
	}
	if _, err := ParseField("bogus"); err == nil {
		t.Error("ParseField(bogus) should fail")
	}
	if FieldAdditional.AutoPopulated() {
		t.Error("additional expenses must not be auto-populated")
	}
}

func TestSchemaError_Message(t *testing.T) {
	err := &SchemaError{File: "seattle_col.csv", Column: "Year", Row: 3, Reason: "not an integer"}
	want := `schema error in seattle_col.csv row 3 column "Year": not an integer`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
