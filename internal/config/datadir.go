package config

import (
	"os"
	"path/filepath"
	"sort"
)

// ResolveDataDir picks the directory holding the CSV tables. An explicit
// flag wins, then the configured dir. A relative configured dir that does
// not exist falls back to the same name next to the config file.
func ResolveDataDir(flagDir string, cfg Config) string {
	if flagDir != "" {
		return flagDir
	}
	dir := cfg.Data.Dir
	if filepath.IsAbs(dir) {
		return dir
	}
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	alt := filepath.Join(ConfigDir(), dir)
	if info, err := os.Stat(alt); err == nil && info.IsDir() {
		return alt
	}
	return dir
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
