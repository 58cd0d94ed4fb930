package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/progressit/progressive/internal/config"
	"github.com/progressit/progressive/pkg/components"
	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/diagnostics"
	"github.com/progressit/progressive/pkg/jsonfmt"
	"github.com/progressit/progressive/pkg/toolkit"
	"github.com/progressit/progressive/pkg/uithread"
)

var errDebugDisabled = errors.New("debug server is disabled (debug.enabled: false in progressive.yaml)")

func debugCmd() *cobra.Command {
	var (
		addr  string
		input string
	)

	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Run the formatter app with the diagnostics server",
		Long: `Debug runs the formatter app on a UI thread and serves:

  GET /health   server status
  GET /tree     component and widget trees
  GET /metrics  Prometheus metrics
  GET /events   websocket stream of lifecycle records

Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.DebugAddr = addr
			}
			seed := ""
			if input != "" {
				data, err := os.ReadFile(input)
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				seed = string(data)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := setupLogging(cmd.ErrOrStderr(), cfg)
			return runDebug(ctx, logger, cfg, seed, func(bound string) {
				fmt.Fprintf(cmd.OutOrStdout(), "Debug server listening on http://%s\n", bound)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides debug.addr)")
	cmd.Flags().StringVar(&input, "input", "", "JSON file to load into the app")

	return cmd
}

// runDebug serves diagnostics for a formatter app until ctx is done. ready is
// called with the bound address once the server accepts connections.
func runDebug(ctx context.Context, logger *slog.Logger, cfg *config.Resolved, seed string, ready func(addr string)) error {
	if !cfg.DebugEnabled {
		return errDebugDisabled
	}

	// The UI thread outlives ctx so the app can be removed on shutdown.
	execCtx, cancelExec := context.WithCancel(context.Background())
	defer cancelExec()
	exec := uithread.New(uithread.WithQueueSize(cfg.QueueSize), uithread.WithLogger(logger))
	if err := exec.Start(execCtx); err != nil {
		return err
	}
	defer exec.Close()

	registry := prometheus.NewRegistry()
	server := diagnostics.New(diagnostics.Config{
		Addr:     cfg.DebugAddr,
		UI:       exec,
		Gatherer: registry,
		Logger:   logger,
	})
	rt, err := core.NewRuntime(exec,
		core.WithLogger(logger),
		core.WithGlobalBus(core.NewGlobalBus()),
		core.WithMetrics(core.NewMetrics(core.WithMetricsRegistry(registry))),
		core.WithObserver(server.Observer()),
	)
	if err != nil {
		return err
	}

	var app *jsonfmt.App
	err = exec.Invoke(ctx, func() {
		app = jsonfmt.NewApp(components.ContainerPlacers(toolkit.NewVBox("root", 0)), rt)
		core.Place(app, nil, cfg.Format)
		app.SetInput(seed)
	})
	if err != nil {
		return err
	}
	server.SetRoots(app)

	bound, err := server.Start()
	if err != nil {
		return err
	}
	if ready != nil {
		ready(bound)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("debug server shutdown", "error", err)
	}
	return exec.Invoke(shutdownCtx, func() { core.Remove(app) })
}
