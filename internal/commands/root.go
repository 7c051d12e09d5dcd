package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uillasnr/mobilefinance/internal/buildinfo"
	"github.com/uillasnr/mobilefinance/internal/config"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	source     string
	today      string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "finance",
		Short:   "Monthly views over your personal finance transactions",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.FileName, "config file")
	flags.StringVar(&opts.source, "source", "", "transactions file or API base URL (overrides config)")
	flags.StringVar(&opts.today, "today", "", "pretend today is this date (YYYY-MM-DD)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	_ = flags.MarkHidden("today")

	rootCmd.AddCommand(
		newInitCommand(),
		newTransactionsCommand(opts),
		newCategoriesCommand(opts),
		newEvolutionCommand(opts),
		newGoalsCommand(opts),
		newCheckCommand(opts),
		newServeCommand(opts),
	)

	return rootCmd
}
