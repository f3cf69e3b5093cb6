package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/salarygap/internal/cli"
	"github.com/theirongolddev/salarygap/internal/config"
	"github.com/theirongolddev/salarygap/internal/pipeline"
	"github.com/theirongolddev/salarygap/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Table cache: %s (%s)\n", pipeline.CachePath(), cacheStatus())
	fmt.Println()

	fmt.Println("  [Data]")
	fmt.Printf("    Directory:      %s\n", cfg.Data.Dir)
	if flagDataDir != "" {
		fmt.Printf("    Overridden by:  --data-dir %s\n", flagDataDir)
	}
	fmt.Printf("    Salaries:       %s\n", cfg.Data.Salaries)
	fmt.Printf("    Cost of living: %s\n", cfg.Data.CostOfLiving)
	fmt.Printf("    Annual costs:   %s\n", cfg.Data.AnnualCosts)
	fmt.Println()

	fmt.Println("  [Columns]")
	fmt.Printf("    Rent:      %s\n", cfg.Columns.Rent)
	fmt.Printf("    Groceries: %s\n", cfg.Columns.Groceries)
	fmt.Printf("    Cheese:    %s\n", cfg.Columns.Cheese)
	fmt.Printf("    Coffee:    %s\n", cfg.Columns.Coffee)
	fmt.Println()

	fmt.Println("  [Budget]")
	fmt.Printf("    Additional monthly: %s\n", cli.FormatMoney(cfg.Budget.AdditionalMonthly))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  Run `salarygap setup` to reconfigure.")
	return nil
}

// cacheStatus reports how many tables the cache holds without creating it.
func cacheStatus() string {
	path := pipeline.CachePath()
	if _, err := os.Stat(path); err != nil {
		return "empty"
	}
	cache, err := store.Open(path)
	if err != nil {
		return "unreadable: " + err.Error()
	}
	defer func() { _ = cache.Close() }()

	n, err := cache.TableCount()
	if err != nil {
		return "unreadable: " + err.Error()
	}
	return fmt.Sprintf("%d tables", n)
}
