package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	functionsPath string
	contextPath   string
	verbose       bool
}

func (f *rootFlags) logHandler() slog.Handler {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "tplforge",
		Short:         "Render templates and execute scripts with user-defined functions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.functionsPath, "functions", "f", "",
		"function definitions file (YAML or JSON)")
	cmd.PersistentFlags().StringVarP(&flags.contextPath, "context", "c", "",
		"context data file (JSON)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"enable debug logging")

	cmd.AddCommand(
		newRenderCmd(flags),
		newExecCmd(flags),
		newScanCmd(flags),
		newTestFnCmd(flags),
	)
	return cmd
}
