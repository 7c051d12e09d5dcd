package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uillasnr/mobilefinance/internal/issuelog"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	var record bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report transactions the monthly views leave out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env(cmd)
			if err != nil {
				return err
			}
			txns, err := e.src.Transactions(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching transactions: %w", err)
			}
			if e.catalog != nil {
				txns = e.catalog.ResolveAll(txns)
			}

			issues := e.agg.Check(txns)
			out := cmd.OutOrStdout()
			for _, is := range issues {
				fmt.Fprintln(out, is.Error())
			}
			fmt.Fprintf(out, "%d transactions checked, %d issues\n", len(txns), len(issues))

			if record && len(issues) > 0 {
				entries := issuelog.FromIssues(e.now, e.srcName, issues)
				if err := issuelog.Append(e.dir, entries); err != nil {
					return err
				}
			}
			if strict && len(issues) > 0 {
				return fmt.Errorf("%d issues found", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "append issues to "+issuelog.FileName)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when issues are found")

	return cmd
}
