package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/salarygap/internal/cli"
	"github.com/theirongolddev/salarygap/internal/config"
	"github.com/theirongolddev/salarygap/internal/tui/theme"
)

// SetupValues holds the answers of the first-run wizard as typed.
type SetupValues struct {
	DataDir    string
	Theme      string
	Additional string
}

// NewSetupValues seeds the wizard from the current config. dataDir is the
// directory the tables were actually read from, which may come from a flag.
func NewSetupValues(cfg config.Config, dataDir string) SetupValues {
	if dataDir == "" {
		dataDir = cfg.Data.Dir
	}
	th := cfg.Appearance.Theme
	if !theme.Known(th) {
		th = theme.All[0].Name
	}
	return SetupValues{
		DataDir:    dataDir,
		Theme:      th,
		Additional: strings.TrimPrefix(cli.FormatMoney(cfg.Budget.AdditionalMonthly), "$"),
	}
}

// NewSetupForm builds the first-run wizard bound to v. It is shared by the
// dashboard and the setup command.
func NewSetupForm(v *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to salarygap").
				Description("Compare salaries with the cost of living.\nA few defaults and you are done."),
			huh.NewInput().
				Title("Data directory").
				Description("Folder holding the salary, cost of living and annual cost CSV files.").
				Placeholder("./data").
				Value(&v.DataDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("data directory is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Additional monthly expenses").
				Description("Pre-filled in the calculator for every job and year.").
				Placeholder("250.00").
				Value(&v.Additional).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeCatppuccin())
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) error {
	dir := strings.TrimSpace(v.DataDir)
	if dir == "" {
		return errors.New("data directory is required")
	}
	additional, err := parseAmount(v.Additional)
	if err != nil {
		return fmt.Errorf("additional expenses: %w", err)
	}
	if !theme.Known(v.Theme) {
		return fmt.Errorf("unknown theme %q", v.Theme)
	}

	cfg.Data.Dir = dir
	cfg.Budget.AdditionalMonthly = additional
	cfg.Appearance.Theme = v.Theme
	return nil
}

func (a *App) saveSetupConfig() error {
	cfg := a.cfg
	if err := a.setupVals.Apply(&cfg); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)
	a.cfg = cfg
	return nil
}
