package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/salarygap/internal/cli"
	"github.com/theirongolddev/salarygap/internal/pipeline"
)

var flagSalaryJob string

var salariesCmd = &cobra.Command{
	Use:   "salaries",
	Short: "Annual salaries by job title",
	RunE:  runSalaries,
}

func init() {
	salariesCmd.Flags().StringVarP(&flagSalaryJob, "job", "j", "", "Show a single job title")
	rootCmd.AddCommand(salariesCmd)
}

func runSalaries(cmd *cobra.Command, _ []string) error {
	data, err := loadData(commandContext(cmd))
	if err != nil {
		return err
	}
	t := data.dataset.Salaries

	jobs := t.CategoryDomain()
	if flagSalaryJob != "" {
		if !t.HasCategory(flagSalaryJob) {
			return fmt.Errorf("unknown job %q", flagSalaryJob)
		}
		jobs = []string{flagSalaryJob}
	}

	// Long-form records drop the "no data" zeros, same as the chart.
	wide := pipeline.Widen(pipeline.ToLongLine(t))

	headers := append([]string{"Year"}, jobs...)
	rows := make([][]string, 0, len(t.Rows))
	for _, year := range t.YearDomain() {
		row := []string{strconv.Itoa(year)}
		for _, job := range jobs {
			row = append(row, cli.FormatAmount(wide[year][job]))
		}
		rows = append(rows, row)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ANNUAL SALARIES"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: headers,
		Rows:    rows,
	}))

	for _, job := range jobs {
		values := make([]float64, 0, len(t.Rows))
		for _, year := range t.YearDomain() {
			values = append(values, wide[year][job])
		}
		fmt.Printf("  %-28s %s\n", job, cli.RenderSparkline(values))
	}
	fmt.Println()

	return nil
}
