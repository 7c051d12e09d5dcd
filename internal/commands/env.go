package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/uillasnr/mobilefinance/internal/catalog"
	"github.com/uillasnr/mobilefinance/internal/config"
	"github.com/uillasnr/mobilefinance/internal/ledger"
	"github.com/uillasnr/mobilefinance/internal/locale"
	flog "github.com/uillasnr/mobilefinance/internal/log"
	"github.com/uillasnr/mobilefinance/internal/model"
	"github.com/uillasnr/mobilefinance/internal/money"
	"github.com/uillasnr/mobilefinance/internal/source"
)

// env is everything a subcommand needs, built from flags and finance.yaml.
type env struct {
	cfg     *config.Config
	dir     string // directory holding the config file
	src     source.Source
	srcName string
	agg     *ledger.Aggregator
	money   money.Formatter
	catalog *catalog.Service // nil without categories.csv
	logger  *slog.Logger     // tagged with the cli component
	base    *slog.Logger
	now     time.Time
}

func (o *rootOptions) env(cmd *cobra.Command) (*env, error) {
	dir := filepath.Dir(o.configPath)

	if err := config.LoadEnv(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.source != "" {
		if isURL(o.source) {
			cfg.Source.APIURL = o.source
		} else {
			cfg.Source.APIURL = ""
			cfg.Source.Path = o.source
		}
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", o.configPath, err)
	}

	base, err := flog.New(flog.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	lang := locale.Lookup(cfg.Locale)

	now := time.Now()
	if o.today != "" {
		if now, err = time.ParseInLocation("2006-01-02", o.today, loc); err != nil {
			return nil, fmt.Errorf("parsing --today: %w", err)
		}
	}

	e := &env{
		cfg:    cfg,
		dir:    dir,
		agg:    ledger.New(ledger.WithLocation(loc), ledger.WithLocale(lang)),
		money:  money.NewFormatter(cfg.Currency, lang),
		logger: flog.WithComponent(base, flog.ComponentCLI),
		base:   base,
		now:    now,
	}

	if cfg.Source.APIURL != "" {
		e.src = source.NewClient(cfg.Source.APIURL, cfg.Token(), cfg.Source.Timeout)
		e.srcName = cfg.Source.APIURL
	} else {
		txPath := o.source
		if txPath == "" {
			txPath = relTo(dir, cfg.Source.Path)
		}
		goalsPath := ""
		if cfg.Source.GoalsPath != "" {
			goalsPath = relTo(dir, cfg.Source.GoalsPath)
		}
		e.src = source.NewFileSource(txPath, goalsPath)
		e.srcName = txPath
	}

	if _, err := os.Stat(filepath.Join(dir, catalog.FileName)); err == nil {
		if e.catalog, err = catalog.Load(dir); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// transactions fetches a snapshot, resolves categories and logs anything the
// aggregator is going to drop.
func (e *env) transactions(cmd *cobra.Command) ([]model.Transaction, error) {
	txns, err := e.src.Transactions(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}
	if e.catalog != nil {
		txns = e.catalog.ResolveAll(txns)
	}
	for _, is := range e.agg.Check(txns) {
		e.logger.Warn("transaction left out of some views",
			flog.FieldTxnID, is.TransactionID,
			flog.FieldIssue, string(is.Kind),
			"detail", is.Description,
		)
	}
	return txns, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// relTo resolves a config-relative path.
func relTo(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
