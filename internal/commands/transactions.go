package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/uillasnr/mobilefinance/internal/model"
	"github.com/uillasnr/mobilefinance/internal/period"
	"github.com/uillasnr/mobilefinance/internal/source"
)

func newTransactionsCommand(opts *rootOptions) *cobra.Command {
	var month, year int
	var periodKey string
	var typ string
	var asJSON, asCSV bool

	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List transactions grouped by month, current month first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := periodFilter(cmd, month, year, periodKey)
			if err != nil {
				return err
			}
			kind, err := parseType(typ)
			if err != nil {
				return err
			}

			e, err := opts.env(cmd)
			if err != nil {
				return err
			}
			txns, err := e.transactions(cmd)
			if err != nil {
				return err
			}

			if filter != nil {
				txns = e.agg.FilterByPeriod(txns, &filter.Month, &filter.Year)
			}
			if kind != "" {
				txns = e.agg.FilterByType(txns, kind)
			}
			sections := e.agg.GroupByMonth(txns, e.now)

			out := cmd.OutOrStdout()
			if asCSV {
				var flat []model.Transaction
				for _, s := range sections {
					flat = append(flat, s.Data...)
				}
				return source.WriteTransactions(out, flat)
			}
			if asJSON {
				return writeJSON(out, sections)
			}
			printSections(out, e, sections)
			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "month to show, 1-12 (requires --year)")
	cmd.Flags().IntVar(&year, "year", 0, "year to show (requires --month)")
	cmd.Flags().StringVar(&periodKey, "period", "", "month to show as YYYY-MM")
	cmd.Flags().StringVar(&typ, "type", "", "only expense or income")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print sections as JSON")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "export the listed transactions as CSV, in section order")
	cmd.MarkFlagsRequiredTogether("month", "year")
	cmd.MarkFlagsMutuallyExclusive("month", "period")
	cmd.MarkFlagsMutuallyExclusive("year", "period")
	cmd.MarkFlagsMutuallyExclusive("json", "csv")

	return cmd
}

// periodFilter turns --month/--year or --period into a period. Nil means no filter.
func periodFilter(cmd *cobra.Command, month, year int, key string) (*period.Period, error) {
	if key != "" {
		p, err := period.Parse(key)
		if err != nil {
			return nil, err
		}
		return &p, nil
	}
	if !cmd.Flags().Changed("month") {
		return nil, nil
	}
	p, err := period.New(year, month-1)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func parseType(s string) (model.TransactionType, error) {
	switch t := model.TransactionType(s); t {
	case "", model.TypeExpense, model.TypeIncome:
		return t, nil
	}
	return "", fmt.Errorf("--type must be %q or %q, got %q", model.TypeExpense, model.TypeIncome, s)
}

func printSections(w io.Writer, e *env, sections []model.MonthSection) {
	if len(sections) == 0 {
		fmt.Fprintln(w, e.agg.Locale().NoTransactions)
		return
	}
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, s.Title)
		for _, txn := range s.Data {
			date := txn.Date
			if ts, ok := txn.Time(e.agg.Location()); ok {
				date = ts.Format("2006-01-02")
			}
			fmt.Fprintf(w, "  %s  %-24s %-16s %16s\n", date, txn.Title, txn.Category.Title, e.money.Format(txn.Amount))
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
