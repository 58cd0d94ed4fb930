package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/progressit/progressive/internal/config"
	"github.com/progressit/progressive/pkg/components"
	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/jsonfmt"
	"github.com/progressit/progressive/pkg/toolkit"
	"github.com/progressit/progressive/pkg/uithread"
)

func formatCmd() *cobra.Command {
	var (
		pretty bool
		nulls  bool
	)

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Sort and format JSON",
		Long: `Format reads JSON from file (or stdin), sorts object keys and prints it.

Defaults come from the format section of progressive.yaml; flags override.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts := cfg.Format
			if cmd.Flags().Changed("pretty") {
				opts.PrettyPrint = pretty
			}
			if cmd.Flags().Changed("nulls") {
				opts.SerializeNulls = nulls
			}

			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			logger := setupLogging(cmd.ErrOrStderr(), cfg)
			out, err := runFormat(logger, cfg, opts, input)
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", true, "Indent output")
	cmd.Flags().BoolVarP(&nulls, "nulls", "n", true, "Keep null object members")

	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// runFormat drives the formatter app on the calling goroutine: place it,
// type the input, read the output pane, remove it.
func runFormat(logger *slog.Logger, cfg *config.Resolved, opts jsonfmt.Options, input string) (string, error) {
	exec := uithread.New(uithread.WithQueueSize(cfg.QueueSize), uithread.WithLogger(logger))
	if err := exec.Bind(); err != nil {
		return "", err
	}
	defer exec.Close()

	global := core.NewGlobalBus()
	rt, err := core.NewRuntime(exec,
		core.WithLogger(logger),
		core.WithGlobalBus(global),
		core.WithMetrics(core.NewMetrics(core.WithMetricsRegistry(prometheus.NewRegistry()))),
	)
	if err != nil {
		return "", err
	}

	var last jsonfmt.Formatted
	unsubscribe := global.Subscribe(jsonfmt.FormattedKind, func(e core.Event) {
		last = e.(jsonfmt.Formatted)
	})
	defer unsubscribe()

	root := toolkit.NewVBox("root", 0)
	app := jsonfmt.NewApp(components.ContainerPlacers(root), rt)
	core.Place(app, nil, opts)
	defer core.Remove(app)

	app.SetInput(input)
	if _, err := exec.Drain(); err != nil {
		return "", err
	}

	if last.Err != "" {
		return "", fmt.Errorf("%s", last.Err)
	}
	return app.Output(), nil
}
