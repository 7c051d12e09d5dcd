package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGoalsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show progress towards savings goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env(cmd)
			if err != nil {
				return err
			}
			goals, err := e.src.Goals(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching goals: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(goals) == 0 {
				fmt.Fprintln(out, e.agg.Locale().NoGoals)
				return nil
			}
			for _, g := range goals {
				mark := " "
				if g.Completed() {
					mark = "x"
				}
				fmt.Fprintf(out, "[%s] %-20s %s / %s  %s%%",
					mark, g.Name, e.money.Format(g.CurrentAmount), e.money.Format(g.TargetAmount), g.Progress().StringFixed(0))
				if g.Deadline != "" {
					fmt.Fprintf(out, "  %s", g.Deadline)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	return cmd
}
