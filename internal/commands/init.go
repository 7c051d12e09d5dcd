package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/uillasnr/mobilefinance/internal/catalog"
	"github.com/uillasnr/mobilefinance/internal/config"
)

func newInitCommand() *cobra.Command {
	var apiURL string
	var loc string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default finance.yaml and category catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, apiURL, loc, force)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "finance API base URL")
	cmd.Flags().StringVar(&loc, "locale", "pt-BR", "display locale")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	return cmd
}

func runInit(out io.Writer, dir, apiURL, loc string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Locale = loc
	if apiURL != "" {
		cfg.Source.APIURL = apiURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	svc := catalog.NewService(catalog.Default())
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing category catalog: %w", err)
	}

	gitignore := ".env\ncheck-log.csv\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(out, "Initialized finance config at %s (%d categories)\n", dir, len(svc.All()))
	return nil
}
