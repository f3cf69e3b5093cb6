package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/salarygap/internal/model"
)

// writeCSV creates a temp CSV file and returns its path.
func writeCSV(t *testing.T, name string, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func parse(t *testing.T, lines ...string) (*model.YearlyTable, error) {
	t.Helper()
	return ParseTable("test", strings.NewReader(strings.Join(lines, "\n")+"\n"))
}

func TestParseTable_TrimsHeaders(t *testing.T) {
	tbl, err := parse(t,
		"Year ,Head Football Coach ,  RA/TA,Unnamed: 8",
		"2012,2300000,38000,",
		"2013,2400000,,",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Head Football Coach", "RA/TA"}
	if len(tbl.Categories) != len(want) {
		t.Fatalf("Categories = %q, want %q", tbl.Categories, want)
	}
	for i := range want {
		if tbl.Categories[i] != want[i] {
			t.Errorf("Categories[%d] = %q, want %q", i, tbl.Categories[i], want[i])
		}
	}

	v, err := tbl.Value(2013, "RA/TA")
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != 0 {
		t.Errorf("empty cell = %v, want 0 sentinel", v)
	}
}

func TestParseTable_IndexColumnAndFloatYears(t *testing.T) {
	tbl, err := parse(t,
		",Year,Groceries,1bed_city",
		"0,2012.0,\"$3,600\",1450.5",
		"1,2013.0,3700,1500",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	years := tbl.YearDomain()
	if len(years) != 2 || years[0] != 2012 || years[1] != 2013 {
		t.Errorf("YearDomain = %v, want [2012 2013]", years)
	}
	if got, _ := tbl.Value(2012, "Groceries"); got != 3600 {
		t.Errorf("Groceries 2012 = %v, want 3600", got)
	}
	if got, _ := tbl.Value(2012, "1bed_city"); got != 1450.5 {
		t.Errorf("1bed_city 2012 = %v, want 1450.5", got)
	}
	if tbl.HasCategory("") {
		t.Error("index column leaked into category domain")
	}
}

func TestParseTable_SchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		column string
		row    int
	}{
		{"missing year column", []string{"Date,Rent", "2012,1"}, "Year", 0},
		{"non-numeric year", []string{"Year,Rent", "2012,1", "twenty,2"}, "Year", 2},
		{"fractional year", []string{"Year,Rent", "2012.5,1"}, "Year", 1},
		{"huge year", []string{"Year,Rent", "1e300,1"}, "Year", 1},
		{"year past int32", []string{"Year,Rent", "2012,1", "3000000000,2"}, "Year", 2},
		{"duplicate year", []string{"Year,Rent", "2012,1", "2012,2"}, "Year", 2},
		{"non-numeric value", []string{"Year,Rent", "2012,n/a"}, "Rent", 1},
		{"duplicate column", []string{"Year,Rent,Rent ", "2012,1,2"}, "Rent", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := parse(t, tt.lines...)
			if tbl != nil {
				t.Error("expected no table on schema error")
			}
			var se *model.SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v, want *model.SchemaError", err)
			}
			if se.Column != tt.column {
				t.Errorf("Column = %q, want %q", se.Column, tt.column)
			}
			if se.Row != tt.row {
				t.Errorf("Row = %d, want %d", se.Row, tt.row)
			}
		})
	}
}

func TestParseTable_RaggedRow(t *testing.T) {
	_, err := parse(t, "Year,Rent,Groceries", "2012,1")
	var se *model.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *model.SchemaError", err)
	}
}

func TestParseTable_Empty(t *testing.T) {
	_, err := ParseTable("empty", strings.NewReader(""))
	var se *model.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *model.SchemaError", err)
	}
}

func TestParseFile_NamesFileInError(t *testing.T) {
	path := writeCSV(t, "seattle_col.csv", "Rent", "1")
	_, err := ParseFile(path, model.TableCostOfLiving)
	var se *model.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *model.SchemaError", err)
	}
	if se.File != "seattle_col.csv" {
		t.Errorf("File = %q, want seattle_col.csv", se.File)
	}
}

func TestScanDir(t *testing.T) {
	files := model.DefaultFileNames()
	dir := t.TempDir()
	for _, name := range []string{files.Salaries, files.CostOfLiving} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("Year\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	_, err := ScanDir(dir, files)
	var se *model.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *model.SchemaError for missing annual costs", err)
	}
	if se.File != files.AnnualCosts {
		t.Errorf("File = %q, want %q", se.File, files.AnnualCosts)
	}

	if err := os.WriteFile(filepath.Join(dir, files.AnnualCosts), []byte("Year\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	found, err := ScanDir(dir, files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 3 || found[0].Table != model.TableSalaries {
		t.Fatalf("ScanDir = %+v, want 3 files starting with salaries", found)
	}
	for _, df := range found {
		if df.SizeBytes != int64(len("Year\n")) || df.MtimeNs == 0 {
			t.Errorf("%s: size=%d mtime=%d, want the stat of the file", df.Table, df.SizeBytes, df.MtimeNs)
		}
	}
}
