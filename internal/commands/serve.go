package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/uillasnr/mobilefinance/internal/httpapi"
	flog "github.com/uillasnr/mobilefinance/internal/log"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sections, category totals, evolution and goals as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = e.cfg.Server.Addr
			}

			apiOpts := []httpapi.Option{httpapi.WithLogger(e.base)}
			if e.catalog != nil {
				apiOpts = append(apiOpts, httpapi.WithCatalog(e.catalog))
			}
			if opts.today != "" {
				fixed := e.now
				apiOpts = append(apiOpts, httpapi.WithClock(func() time.Time { return fixed }))
			}
			api := httpapi.New(e.src, e.agg, apiOpts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return serve(ctx, srv, e)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

func serve(ctx context.Context, srv *http.Server, e *env) error {
	errCh := make(chan error, 1)
	go func() {
		e.logger.Info("listening", "addr", srv.Addr, flog.FieldSource, e.srcName)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	e.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
