package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/mood/internal/adapters/prometheus"
	"github.com/emiliopalmerini/mood/internal/web"
)

const replicaSyncInterval = time.Minute

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API and vocabulary page.

Examples:
  mood serve                 # Listen on MOOD_ADDR (default :8080)
  mood serve --addr :3000    # Listen on port 3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides MOOD_ADDR)")
	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prom.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := prometheus.NewMetrics(registry)
	if err != nil {
		return err
	}

	app, err := NewAppContext(ctx, metrics)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	serverCfg := app.Config.Server
	if addr != "" {
		serverCfg.Addr = addr
	}
	srv := web.NewServer(serverCfg, app.Service, metrics, app.Logger)

	fmt.Fprintf(cmd.OutOrStdout(), "Starting server at http://localhost%s\n", serverCfg.Addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	if app.DB != nil && app.Config.Database.ReplicaPath != "" {
		g.Go(func() error {
			ticker := time.NewTicker(replicaSyncInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if err := app.DB.Sync(); err != nil {
						app.Logger.Warn("replica sync failed", "error", err)
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Server stopped")
	return nil
}
