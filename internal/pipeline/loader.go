// Package pipeline loads the yearly tables and derives chart data and savings from them.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/source"
)

// LoadResult holds the output of the table loading pipeline.
type LoadResult struct {
	Dataset     *model.Dataset
	Files       []source.DiscoveredFile
	TotalFiles  int
	ParsedFiles int
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load resolves the three table files in dataDir, parses them in parallel and
// checks the cost-of-living table for the configured columns. Any failure is
// fatal: no partial dataset is returned.
func Load(ctx context.Context, dataDir string, files model.FileNames, cols model.CostColumns, progressFn ProgressFunc) (*LoadResult, error) {
	found, err := source.ScanDir(dataDir, files)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	tables, err := parseAll(ctx, found, 0, len(found), progressFn)
	if err != nil {
		return nil, err
	}

	ds, err := assemble(found, tables, files, cols)
	if err != nil {
		return nil, err
	}

	return &LoadResult{
		Dataset:     ds,
		Files:       found,
		TotalFiles:  len(found),
		ParsedFiles: len(found),
	}, nil
}

// parseAll parses files with a bounded errgroup. The returned slice is
// index-aligned with files. offset and total only shape progress reporting.
func parseAll(ctx context.Context, files []source.DiscoveredFile, offset, total int, progressFn ProgressFunc) ([]*model.YearlyTable, error) {
	log := zerolog.Ctx(ctx)
	results := make([]*model.YearlyTable, len(files))
	var processed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.GOMAXPROCS(0), 1))

	for i, df := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := source.ParseFile(df.Path, df.Table)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", df.Table, err)
			}
			results[i] = t
			log.Debug().Str("table", df.Table).Int("years", len(t.Rows)).Int("categories", len(t.Categories)).Msg("parsed table")

			n := processed.Add(1)
			if progressFn != nil {
				progressFn(offset+int(n), total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// assemble places parsed tables into a Dataset and validates the cost schema.
func assemble(found []source.DiscoveredFile, tables []*model.YearlyTable, files model.FileNames, cols model.CostColumns) (*model.Dataset, error) {
	ds := &model.Dataset{}
	for i, df := range found {
		switch df.Table {
		case model.TableSalaries:
			ds.Salaries = tables[i]
		case model.TableCostOfLiving:
			ds.CostOfLiving = tables[i]
		case model.TableAnnualCosts:
			ds.AnnualCosts = tables[i]
		}
	}
	if ds.Salaries == nil || ds.CostOfLiving == nil || ds.AnnualCosts == nil {
		return nil, errors.New("incomplete dataset: salaries, cost of living and annual costs are all required")
	}

	if err := ValidateCostColumns(ds.CostOfLiving, files.CostOfLiving, cols); err != nil {
		return nil, err
	}
	return ds, nil
}

// ValidateCostColumns checks that the cost-of-living table has every column
// used for auto-population.
func ValidateCostColumns(t *model.YearlyTable, fileName string, cols model.CostColumns) error {
	for _, c := range cols.All() {
		if !t.HasCategory(c) {
			return &model.SchemaError{File: fileName, Column: c, Reason: "required cost column missing"}
		}
	}
	return nil
}
