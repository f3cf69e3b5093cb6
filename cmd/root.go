// Package cmd implements the salarygap CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/salarygap/internal/config"
	"github.com/theirongolddev/salarygap/internal/logging"
	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/pipeline"
	"github.com/theirongolddev/salarygap/internal/session"
	"github.com/theirongolddev/salarygap/internal/store"
)

var (
	flagDataDir string
	flagNoCache bool
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "salarygap",
	Short:         "Salary and cost-of-living dashboard",
	Long:          "Compare salaries by job title against the cost of living, and estimate what is left over each month.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the salary and cost-of-living CSV files")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// loadedData is everything a command needs after startup.
type loadedData struct {
	cfg     config.Config
	dataDir string
	dataset *model.Dataset
}

// loadConfig reads the config file, applies environment overrides and
// validates the result.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	config.ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", config.ConfigPath(), err)
	}
	return cfg, nil
}

// cliLogger is the console logger shared by the non-server commands.
func cliLogger() zerolog.Logger {
	return logging.New(os.Stderr, flagQuiet, flagVerbose)
}

// loadData is the shared data loading path used by all commands.
// Uses SQLite cache when available for fast subsequent runs.
func loadData(ctx context.Context) (*loadedData, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dataDir := config.ResolveDataDir(flagDataDir, cfg)

	log := zerolog.Ctx(ctx)
	log.Debug().Str("dir", dataDir).Msg("loading tables")

	progressFn := func(current, total int) {
		log.Debug().Int("current", current).Int("total", total).Msg("parsed table")
	}

	// Try cached load unless --no-cache
	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			log.Warn().Err(err).Msg("cache unavailable, doing full parse")
		} else {
			defer func() { _ = cache.Close() }()

			cr, err := pipeline.LoadWithCache(ctx, dataDir, cfg.Data.FileNames, cfg.Columns, cache, progressFn)
			var schemaErr *model.SchemaError
			switch {
			case err == nil:
				log.Info().
					Int("cached", cr.CacheHits).
					Int("reparsed", cr.Reparsed).
					Msg("tables loaded")
				return &loadedData{cfg: cfg, dataDir: dataDir, dataset: cr.Dataset}, nil
			case errors.As(err, &schemaErr):
				return nil, err
			default:
				log.Warn().Err(err).Msg("cache error, falling back to full parse")
			}
		}
	}

	// Uncached path
	result, err := pipeline.Load(ctx, dataDir, cfg.Data.FileNames, cfg.Columns, progressFn)
	if err != nil {
		return nil, err
	}
	log.Info().Int("parsed", result.ParsedFiles).Msg("tables loaded")

	return &loadedData{cfg: cfg, dataDir: dataDir, dataset: result.Dataset}, nil
}

// loadSession loads the tables and starts a selection session on them.
func loadSession(ctx context.Context) (*loadedData, *session.Manager, error) {
	data, err := loadData(ctx)
	if err != nil {
		return nil, nil, err
	}
	sess, err := session.New(data.dataset, data.cfg.Columns, data.cfg.Budget.AdditionalMonthly)
	if err != nil {
		return nil, nil, err
	}
	return data, sess, nil
}

// commandContext attaches the console logger to the command's context.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := cliLogger()
	return log.WithContext(ctx)
}
