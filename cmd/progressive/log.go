package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/progressit/progressive/internal/config"
	"github.com/progressit/progressive/pkg/errors"
)

func loadConfig(cmd *cobra.Command) (*config.Resolved, error) {
	dir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return nil, err
	}
	return config.Resolve(dir)
}

// setupLogging builds the logger described by cfg and routes engine error
// reports to it. Stack traces are included at debug level.
func setupLogging(w io.Writer, cfg *config.Resolved) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	}
	logger := slog.New(handler)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: cfg.LogLevel <= slog.LevelDebug})
	return logger
}
