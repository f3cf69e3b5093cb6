package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/salarygap/internal/cli"
	"github.com/theirongolddev/salarygap/internal/dashboard"
	"github.com/theirongolddev/salarygap/internal/model"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Dataset overview and savings for the default selection",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	data, sess, err := loadSession(commandContext(cmd))
	if err != nil {
		return err
	}
	ds := data.dataset

	minYear, maxYear := ds.Salaries.YearBounds()
	jobs := ds.Salaries.CategoryDomain()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SALARY GAP  %d-%d", minYear, maxYear)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Dataset",
		Headers: []string{"Table", "Years", "Columns"},
		Rows: [][]string{
			tableRow("Salaries", ds.Salaries),
			tableRow("Cost of living", ds.CostOfLiving),
			tableRow("Annual costs", ds.AnnualCosts),
		},
	}))

	// Latest salary per job, with change over the whole range.
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		first, _ := ds.Salaries.Value(minYear, job)
		last, _ := ds.Salaries.Value(maxYear, job)
		delta := ""
		if first > 0 && last > 0 {
			delta = cli.FormatDelta(last, first)
		}
		rows = append(rows, []string{job, cli.FormatAmount(last), delta})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Salaries in %d", maxYear),
		Headers: []string{"Job", "Salary", fmt.Sprintf("vs %d", minYear)},
		Rows:    rows,
	}))

	sel := sess.Selection()
	fmt.Printf("  Default selection: %s, %d\n", sel.Job, sel.Year)
	printSavings(sess.Savings())
	fmt.Println()
	fmt.Println("  " + cli.RenderNote(dashboard.Footnote))
	fmt.Println()

	return nil
}

func tableRow(label string, t *model.YearlyTable) []string {
	minYear, maxYear := t.YearBounds()
	return []string{
		label,
		fmt.Sprintf("%d-%d", minYear, maxYear),
		cli.FormatNumber(int64(len(t.Categories))),
	}
}

// printSavings prints the savings lines with the dashboard's colour rules.
// Exactly zero prints nothing.
func printSavings(s model.SavingsResult) {
	if line := cli.RenderSavings("Monthly Savings", s.MonthlySavings); line != "" {
		fmt.Println("  " + line)
	}
	if line := cli.RenderSavings("Annual Savings", s.AnnualSavings); line != "" {
		fmt.Println("  " + line)
	}
}
