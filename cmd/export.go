package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/salarygap/internal/chart"
	"github.com/theirongolddev/salarygap/internal/dashboard"
)

var (
	flagExportOut        string
	flagExportWidth      int
	flagExportHeight     int
	flagExportJob        string
	flagExportCategories []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the salary and cost charts as PNG files",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", ".", "Output directory")
	exportCmd.Flags().IntVar(&flagExportWidth, "width", 1024, "Image width in pixels")
	exportCmd.Flags().IntVar(&flagExportHeight, "height", 640, "Image height in pixels")
	exportCmd.Flags().StringVarP(&flagExportJob, "job", "j", "", "Job title for the salary marker (default: last job)")
	exportCmd.Flags().StringSliceVarP(&flagExportCategories, "category", "c", nil, "Cost categories to stack (default: all)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	data, err := loadData(ctx)
	if err != nil {
		return err
	}
	ds := data.dataset

	cv := dashboard.DefaultCostView(ds)
	cv.Categories = ds.AnnualCosts.CategoryDomain()
	if flagExportJob != "" {
		cv.Job = flagExportJob
	}
	if len(flagExportCategories) > 0 {
		cv.Categories = flagExportCategories
	}

	if err := os.MkdirAll(flagExportOut, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	charts := []struct {
		file string
		spec chart.ChartSpec
	}{
		{"salaries.png", dashboard.LineChart(ds)},
		{"costs.png", dashboard.CostChart(ds, cv)},
	}
	for _, c := range charts {
		path := filepath.Join(flagExportOut, c.file)
		if err := writePNG(path, c.spec); err != nil {
			return err
		}
		fmt.Printf("  Wrote %s\n", path)
	}
	return nil
}

func writePNG(path string, spec chart.ChartSpec) error {
	//nolint:gosec // output path is chosen by the local user
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := chart.RenderPNG(spec, f, flagExportWidth, flagExportHeight); err != nil {
		_ = f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
