package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uillasnr/mobilefinance/internal/ledger"
	"github.com/uillasnr/mobilefinance/internal/period"
)

func newCategoriesCommand(opts *rootOptions) *cobra.Command {
	var periodKey string
	var typ string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Total per category for one month (default: current month)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseType(typ)
			if err != nil {
				return err
			}
			var p period.Period
			if periodKey != "" {
				if p, err = period.Parse(periodKey); err != nil {
					return err
				}
			}

			e, err := opts.env(cmd)
			if err != nil {
				return err
			}
			if periodKey == "" {
				p = period.Of(e.now.In(e.agg.Location()))
			}

			txns, err := e.transactions(cmd)
			if err != nil {
				return err
			}
			txns = e.agg.FilterByPeriod(txns, &p.Month, &p.Year)
			if kind != "" {
				txns = e.agg.FilterByType(txns, kind)
			}
			totals := e.agg.SumByCategory(txns)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, totals)
			}

			fmt.Fprintln(out, e.agg.Locale().MonthYear(p.Year, p.Month))
			if ledger.IsPlaceholder(totals) {
				fmt.Fprintf(out, "  %s\n", totals[0].Label)
				return nil
			}
			for _, ct := range totals {
				fmt.Fprintf(out, "  %-24s %16s\n", ct.Label, e.money.Format(ct.Value))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&periodKey, "period", "", "month as YYYY-MM")
	cmd.Flags().StringVar(&typ, "type", "", "only expense or income")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print totals as JSON")

	return cmd
}
