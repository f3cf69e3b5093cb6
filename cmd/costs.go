package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/salarygap/internal/chart"
	"github.com/theirongolddev/salarygap/internal/cli"
	"github.com/theirongolddev/salarygap/internal/dashboard"
	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/pipeline"
)

var (
	flagCostJob        string
	flagCostFrom       int
	flagCostTo         int
	flagCostCategories []string
	flagCostAll        bool
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Annual costs by category against a job's salary",
	RunE:  runCosts,
}

func init() {
	costsCmd.Flags().StringVarP(&flagCostJob, "job", "j", "", "Job title for the salary marker (default: last job)")
	costsCmd.Flags().IntVar(&flagCostFrom, "from", 0, "First year (default: first salary year)")
	costsCmd.Flags().IntVar(&flagCostTo, "to", 0, "Last year (default: last salary year)")
	costsCmd.Flags().StringSliceVarP(&flagCostCategories, "category", "c", nil, "Cost categories to stack (repeatable)")
	costsCmd.Flags().BoolVarP(&flagCostAll, "all", "a", false, "Stack every cost category")
	rootCmd.AddCommand(costsCmd)
}

func runCosts(cmd *cobra.Command, _ []string) error {
	data, err := loadData(commandContext(cmd))
	if err != nil {
		return err
	}
	ds := data.dataset

	cv, err := costViewFromFlags(ds)
	if err != nil {
		return err
	}
	spec := dashboard.CostChart(ds, cv)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ANNUAL COSTS  %d-%d", cv.MinYear, cv.MaxYear)))
	fmt.Println()

	if len(cv.Categories) == 0 {
		fmt.Println("  No cost categories selected. Use --category or --all.")
		fmt.Println()
	}

	var bars []chart.Series
	var marker *chart.Series
	for i := range spec.Series {
		if spec.Series[i].Mark == chart.MarkPoint {
			marker = &spec.Series[i]
			continue
		}
		bars = append(bars, spec.Series[i])
	}

	headers := []string{"Year"}
	for _, s := range bars {
		headers = append(headers, s.Name)
	}
	headers = append(headers, "Total")
	if marker != nil {
		headers = append(headers, marker.Name, "Left over")
	}

	salaries := map[int]float64{}
	if marker != nil {
		for _, p := range marker.Points {
			salaries[p.X] = p.Y
		}
	}

	years := pipeline.FilterYears(ds.AnnualCosts, cv.MinYear, cv.MaxYear)
	rows := make([][]string, 0, len(years))
	for _, year := range years {
		row := []string{strconv.Itoa(year)}
		for _, s := range bars {
			row = append(row, cli.FormatAmount(pointAt(s, year)))
		}
		total := spec.StackAt(year)
		row = append(row, cli.FormatAmount(total))
		if marker != nil {
			salary := salaries[year]
			left := ""
			if salary > 0 {
				left = cli.FormatMoney(salary - total)
			}
			row = append(row, cli.FormatAmount(salary), left)
		}
		rows = append(rows, row)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   spec.YAxis.Title,
		Headers: headers,
		Rows:    rows,
	}))

	if len(bars) > 0 && len(years) > 0 {
		printLatestBreakdown(spec, bars, years[len(years)-1], salaries[years[len(years)-1]])
	}
	return nil
}

// printLatestBreakdown shows each category's share of the year's costs,
// and how much of the salary the costs take.
func printLatestBreakdown(spec chart.ChartSpec, bars []chart.Series, year int, salary float64) {
	total := spec.StackAt(year)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%d BREAKDOWN", year)))
	fmt.Println()

	labelW := len("Of salary")
	for _, s := range bars {
		labelW = max(labelW, len(s.Name))
	}
	for _, s := range bars {
		v := pointAt(s, year)
		fmt.Printf("  %-*s %10s  %s\n", labelW, s.Name, cli.FormatAmount(v), cli.RenderShareBar(v, total, 30))
	}

	if salary > 0 {
		fmt.Println()
		fmt.Printf("  %-*s %10s  %s\n", labelW, "Of salary", cli.FormatAmount(total), cli.RenderShareBar(total, salary, 30))
	}
	fmt.Println()
}

// costViewFromFlags starts from the dashboard defaults and applies the flags.
func costViewFromFlags(ds *model.Dataset) (dashboard.CostView, error) {
	cv := dashboard.DefaultCostView(ds)
	if flagCostJob != "" {
		if !ds.Salaries.HasCategory(flagCostJob) {
			return cv, &model.LookupError{Table: model.TableSalaries, Key: flagCostJob}
		}
		cv.Job = flagCostJob
	}
	if flagCostFrom != 0 {
		cv.MinYear = flagCostFrom
	}
	if flagCostTo != 0 {
		cv.MaxYear = flagCostTo
	}
	switch {
	case flagCostAll:
		cv.Categories = ds.AnnualCosts.CategoryDomain()
	case len(flagCostCategories) > 0:
		for _, c := range flagCostCategories {
			if !ds.AnnualCosts.HasCategory(c) {
				return cv, &model.LookupError{Table: model.TableAnnualCosts, Key: c}
			}
		}
		cv.Categories = flagCostCategories
	}
	return cv, nil
}

func pointAt(s chart.Series, year int) float64 {
	for _, p := range s.Points {
		if p.X == year {
			return p.Y
		}
	}
	return 0
}
