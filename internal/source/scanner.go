package source

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/salarygap/internal/model"
)

// ScanDir resolves the three table files inside dataDir. A missing file is a
// *model.SchemaError naming it.
func ScanDir(dataDir string, files model.FileNames) ([]DiscoveredFile, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data dir %s is not a directory", dataDir)
	}

	wanted := []DiscoveredFile{
		{Table: model.TableSalaries, Path: filepath.Join(dataDir, files.Salaries)},
		{Table: model.TableCostOfLiving, Path: filepath.Join(dataDir, files.CostOfLiving)},
		{Table: model.TableAnnualCosts, Path: filepath.Join(dataDir, files.AnnualCosts)},
	}
	for i := range wanted {
		st, err := os.Stat(wanted[i].Path)
		if err != nil || st.IsDir() {
			return nil, &model.SchemaError{File: filepath.Base(wanted[i].Path), Reason: "table file not found"}
		}
		wanted[i].MtimeNs = st.ModTime().UnixNano()
		wanted[i].SizeBytes = st.Size()
	}
	return wanted, nil
}
