// Package config loads and saves the salarygap TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/salarygap/internal/model"
)

// Config holds all salarygap configuration.
type Config struct {
	Data       DataConfig        `toml:"data"`
	Columns    model.CostColumns `toml:"columns"`
	Budget     BudgetConfig      `toml:"budget"`
	Appearance AppearanceConfig  `toml:"appearance"`
	Server     ServerConfig      `toml:"server"`
}

// DataConfig locates the CSV tables.
type DataConfig struct {
	Dir string `toml:"dir"`
	model.FileNames
}

// BudgetConfig holds calculator defaults.
type BudgetConfig struct {
	AdditionalMonthly float64 `toml:"additional_monthly"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Environment variables that override the file.
const (
	EnvDataDir = "SALARYGAP_DATA_DIR"
	EnvAddr    = "SALARYGAP_ADDR"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			Dir:       "./data",
			FileNames: model.DefaultFileNames(),
		},
		Columns: model.DefaultCostColumns(),
		Budget: BudgetConfig{
			AdditionalMonthly: model.DefaultAdditionalMonthly,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8788",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "salarygap")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "salarygap")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path, returning defaults if it doesn't exist.
// Keys missing from the file keep their default values.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ApplyEnv overrides config values from the environment.
func ApplyEnv(cfg *Config) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.Data.Dir = dir
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Server.Addr = addr
	}
}

// Validate checks the config for values the loader cannot work with.
func (c Config) Validate() error {
	var errs []error
	required := map[string]string{
		"data.dir":            c.Data.Dir,
		"data.salaries":       c.Data.Salaries,
		"data.cost_of_living": c.Data.CostOfLiving,
		"data.annual_costs":   c.Data.AnnualCosts,
		"columns.rent":        c.Columns.Rent,
		"columns.groceries":   c.Columns.Groceries,
		"columns.cheese":      c.Columns.Cheese,
		"columns.coffee":      c.Columns.Coffee,
		"server.addr":         c.Server.Addr,
	}
	for _, key := range sortedKeys(required) {
		if strings.TrimSpace(required[key]) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", key))
		}
	}
	if c.Budget.AdditionalMonthly < 0 {
		errs = append(errs, fmt.Errorf("budget.additional_monthly must not be negative (got %.2f)", c.Budget.AdditionalMonthly))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
