package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/store"
)

func wideTable(years, cats int) *model.YearlyTable {
	t := &model.YearlyTable{Name: "bench"}
	for c := 0; c < cats; c++ {
		t.Categories = append(t.Categories, fmt.Sprintf("Job %d", c))
	}
	for y := 0; y < years; y++ {
		row := model.YearRow{Year: 1900 + y, Values: make(map[string]float64, cats)}
		for c, name := range t.Categories {
			row.Values[name] = float64((y * c) % 7 * 1000)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func BenchmarkToLongLine(b *testing.B) {
	tbl := wideTable(100, 50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ToLongLine(tbl)
	}
}

func BenchmarkToLongBar(b *testing.B) {
	tbl := wideTable(100, 50)
	cats := tbl.CategoryDomain()[:10]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ToLongBar(tbl, cats, 1920, 1980)
	}
}

func BenchmarkLoadWithCache(b *testing.B) {
	dir := writeDataDir(b)
	cache, err := store.Open(filepath.Join(b.TempDir(), "tables.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadWithCache(context.Background(), dir, model.DefaultFileNames(), model.DefaultCostColumns(), cache, nil); err != nil {
			b.Fatal(err)
		}
	}
}
