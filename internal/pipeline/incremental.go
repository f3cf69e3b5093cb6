package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/source"
	"github.com/theirongolddev/salarygap/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
}

// LoadWithCache loads like Load but serves tables whose source file is
// unchanged (same mtime and size) from the cache and reparses the rest.
// Cache failures are logged and fall back to parsing.
func LoadWithCache(ctx context.Context, dataDir string, files model.FileNames, cols model.CostColumns, cache *store.Cache, progressFn ProgressFunc) (*CachedLoadResult, error) {
	log := zerolog.Ctx(ctx)

	found, err := source.ScanDir(dataDir, files)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		log.Warn().Err(err).Msg("reading table cache, reparsing everything")
		tracked = nil
	}

	tables := make([]*model.YearlyTable, len(found))
	var toReparse []int

	for i, df := range found {
		cached, ok := tracked[df.Path]
		if ok && cached.Table == df.Table && cached.MtimeNs == df.MtimeNs && cached.SizeBytes == df.SizeBytes {
			t, err := cache.LoadTable(df.Table)
			if err == nil {
				tables[i] = t
				continue
			}
			log.Warn().Err(err).Str("table", df.Table).Msg("cached table unreadable, reparsing")
			if err := cache.DeleteTable(df.Table); err != nil {
				log.Warn().Err(err).Str("table", df.Table).Msg("dropping unreadable cached table")
			}
		}
		toReparse = append(toReparse, i)
	}

	result := &CachedLoadResult{
		LoadResult: LoadResult{
			Files:      found,
			TotalFiles: len(found),
		},
		CacheHits: len(found) - len(toReparse),
		Reparsed:  len(toReparse),
	}

	if progressFn != nil && result.CacheHits > 0 {
		progressFn(result.CacheHits, result.TotalFiles)
	}

	if len(toReparse) > 0 {
		sub := make([]source.DiscoveredFile, len(toReparse))
		for j, i := range toReparse {
			sub[j] = found[i]
		}
		parsed, err := parseAll(ctx, sub, result.CacheHits, result.TotalFiles, progressFn)
		if err != nil {
			return nil, err
		}
		for j, i := range toReparse {
			tables[i] = parsed[j]
			df := found[i]
			if err := cache.SaveTable(parsed[j], df.Path, df.MtimeNs, df.SizeBytes); err != nil {
				log.Warn().Err(err).Str("table", found[i].Table).Msg("saving table to cache")
			}
		}
	}

	ds, err := assemble(found, tables, files, cols)
	if err != nil {
		return nil, err
	}
	result.Dataset = ds
	result.ParsedFiles = len(found)

	log.Debug().Int("cache_hits", result.CacheHits).Int("reparsed", result.Reparsed).Msg("tables loaded")
	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "salarygap")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "salarygap")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "tables.db")
}
