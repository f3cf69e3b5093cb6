package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/salarygap/internal/config"
	"github.com/theirongolddev/salarygap/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// A broken file is not fatal here: the wizard rewrites it.
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("  Ignoring unreadable config: %v\n\n", err)
		cfg = config.DefaultConfig()
	}

	vals := tui.NewSetupValues(cfg, config.ResolveDataDir(flagDataDir, cfg))
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled. Nothing was saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	if err := vals.Apply(&cfg); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `salarygap tui` to open the dashboard.")
	return nil
}
