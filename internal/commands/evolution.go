package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uillasnr/mobilefinance/internal/model"
)

func newEvolutionCommand(opts *rootOptions) *cobra.Command {
	var year int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "evolution",
		Short: "Income, expense and net per month, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env(cmd)
			if err != nil {
				return err
			}
			txns, err := e.transactions(cmd)
			if err != nil {
				return err
			}

			points := e.agg.Evolution(txns)
			if year != 0 {
				kept := make([]model.MonthBalance, 0, len(points))
				for _, p := range points {
					if p.Year == year {
						kept = append(kept, p)
					}
				}
				points = kept
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, points)
			}
			if len(points) == 0 {
				fmt.Fprintln(out, e.agg.Locale().NoTransactions)
				return nil
			}
			for _, p := range points {
				fmt.Fprintf(out, "%-20s %16s %16s %16s\n",
					p.Title, e.money.Format(p.Income), e.money.Format(p.Expense.Neg()), e.money.Format(p.Net))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "only this year")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the series as JSON")

	return cmd
}
