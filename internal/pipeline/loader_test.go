package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/store"
)

const (
	fixtureSalaries = `Year,Head Football Coach ,Professor ,RA/TA
2012,2300000,118000,38000
2013,2400000,0,39000
2014,2500000,128000,40000
`
	fixtureCost = `,Year,1bed_city,Groceries,LocalCheese,Cappucino
0,2012,1450,350,9.5,4.25
1,2013,1500,360,9.75,4.5
2,2014,1600,370,10,4.75
`
	fixtureAnnual = `Year,Rent ,Groceries,Utilities
2012,17400,4200,1800
2013,18000,4320,1850
2014,19200,4440,1900
`
)

// writeDataDir writes the three fixture tables into a temp dir.
func writeDataDir(tb testing.TB) string {
	tb.Helper()
	dir := tb.TempDir()
	files := model.DefaultFileNames()
	for name, body := range map[string]string{
		files.Salaries:     fixtureSalaries,
		files.CostOfLiving: fixtureCost,
		files.AnnualCosts:  fixtureAnnual,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			tb.Fatal(err)
		}
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeDataDir(t)

	var calls atomic.Int32
	res, err := Load(context.Background(), dir, model.DefaultFileNames(), model.DefaultCostColumns(), func(current, total int) {
		calls.Add(1)
		if total != 3 {
			t.Errorf("progress total = %d, want 3", total)
		}
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if res.ParsedFiles != 3 || calls.Load() != 3 {
		t.Errorf("ParsedFiles = %d, progress calls = %d, want 3 and 3", res.ParsedFiles, calls.Load())
	}
	ds := res.Dataset
	if got := ds.Salaries.CategoryDomain(); len(got) != 3 || got[0] != "Head Football Coach" {
		t.Errorf("salary categories = %q", got)
	}
	if v, _ := ds.CostOfLiving.Value(2013, "Cappucino"); v != 4.5 {
		t.Errorf("Cappucino 2013 = %v, want 4.5", v)
	}
	if !ds.AnnualCosts.HasCategory("Rent") {
		t.Error("annual costs header not trimmed")
	}
}

func TestLoad_MissingCostColumn(t *testing.T) {
	dir := writeDataDir(t)
	cols := model.DefaultCostColumns()
	cols.Coffee = "Espresso"

	res, err := Load(context.Background(), dir, model.DefaultFileNames(), cols, nil)
	if res != nil {
		t.Error("expected no partial result")
	}
	var se *model.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *model.SchemaError", err)
	}
	if se.Column != "Espresso" {
		t.Errorf("Column = %q, want Espresso", se.Column)
	}
}

func TestLoad_BadTableIsFatal(t *testing.T) {
	dir := writeDataDir(t)
	files := model.DefaultFileNames()
	if err := os.WriteFile(filepath.Join(dir, files.AnnualCosts), []byte("Rent\n1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(context.Background(), dir, files, model.DefaultCostColumns(), nil)
	var se *model.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *model.SchemaError", err)
	}
	if !strings.Contains(err.Error(), files.AnnualCosts) {
		t.Errorf("error %q should name %s", err, files.AnnualCosts)
	}
}

func TestLoadWithCache(t *testing.T) {
	dir := writeDataDir(t)
	cache, err := store.Open(filepath.Join(t.TempDir(), "tables.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = cache.Close() }()

	files := model.DefaultFileNames()
	cols := model.DefaultCostColumns()
	ctx := context.Background()

	first, err := LoadWithCache(ctx, dir, files, cols, cache, nil)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first.CacheHits != 0 || first.Reparsed != 3 {
		t.Errorf("first load hits/reparsed = %d/%d, want 0/3", first.CacheHits, first.Reparsed)
	}
	if n, err := cache.TableCount(); err != nil || n != 3 {
		t.Errorf("TableCount = (%d, %v), want 3", n, err)
	}

	second, err := LoadWithCache(ctx, dir, files, cols, cache, nil)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if second.CacheHits != 3 || second.Reparsed != 0 {
		t.Errorf("second load hits/reparsed = %d/%d, want 3/0", second.CacheHits, second.Reparsed)
	}
	if v, _ := second.Dataset.Salaries.Value(2014, "Professor"); v != 128000 {
		t.Errorf("cached Professor 2014 = %v, want 128000", v)
	}

	// Changing a file's size forces a reparse of that table only.
	path := filepath.Join(dir, files.AnnualCosts)
	if err := os.WriteFile(path, []byte(fixtureAnnual+"2015,20000,4500,1950\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := LoadWithCache(ctx, dir, files, cols, cache, nil)
	if err != nil {
		t.Fatalf("third load: %v", err)
	}
	if third.CacheHits != 2 || third.Reparsed != 1 {
		t.Errorf("third load hits/reparsed = %d/%d, want 2/1", third.CacheHits, third.Reparsed)
	}
	if !third.Dataset.AnnualCosts.HasYear(2015) {
		t.Error("reparsed table missing new year")
	}
}
