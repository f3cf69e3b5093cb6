package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/salarygap/internal/cli"
	"github.com/theirongolddev/salarygap/internal/dashboard"
	"github.com/theirongolddev/salarygap/internal/model"
)

var (
	flagSavingsYear int
	flagSavingsJob  string
	flagOverrides   = map[model.Field]*float64{}
)

var savingsCmd = &cobra.Command{
	Use:   "savings",
	Short: "Monthly and annual savings for a job and year",
	Long: "Auto-populates salary and living costs for the selected job and year, " +
		"applies any manual values given as flags, and prints the resulting savings.",
	RunE: runSavings,
}

func init() {
	savingsCmd.Flags().IntVarP(&flagSavingsYear, "year", "y", 0, "Year (default: first salary year)")
	savingsCmd.Flags().StringVarP(&flagSavingsJob, "job", "j", "", "Job title (default: first job)")
	for _, f := range model.Fields {
		v := new(float64)
		flagOverrides[f] = v
		savingsCmd.Flags().Float64Var(v, f.String(), 0, "Manual "+f.Label())
	}
	rootCmd.AddCommand(savingsCmd)
}

func runSavings(cmd *cobra.Command, _ []string) error {
	_, sess, err := loadSession(commandContext(cmd))
	if err != nil {
		return err
	}

	sel := sess.Selection()
	if flagSavingsYear != 0 {
		sel.Year = flagSavingsYear
	}
	if flagSavingsJob != "" {
		sel.Job = flagSavingsJob
	}
	if err := sess.OnSelectionChanged(sel.Year, sel.Job); err != nil {
		return err
	}

	for _, f := range model.Fields {
		if !cmd.Flags().Changed(f.String()) {
			continue
		}
		if err := sess.Override(f, *flagOverrides[f]); err != nil {
			return err
		}
	}

	rows := make([][]string, 0, len(model.Fields))
	for _, f := range model.Fields {
		source := "auto"
		switch {
		case sess.Overridden(f):
			source = "manual"
		case !f.AutoPopulated():
			source = "default"
		}
		rows = append(rows, []string{f.Label(), cli.FormatMoney(sess.Value(f)), source})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET  %s, %d", sel.Job, sel.Year)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Input", "Amount", "Source"},
		Rows:    rows,
	}))

	printSavings(sess.Savings())
	fmt.Println()
	fmt.Println("  " + cli.RenderNote(dashboard.Footnote))
	fmt.Println()
	return nil
}
