package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tplforge/tplforge"
	risorSandbox "github.com/tplforge/tplforge/engines/risor/sandbox"
	starlarkSandbox "github.com/tplforge/tplforge/engines/starlark/sandbox"
	"github.com/tplforge/tplforge/engines/types"
	"github.com/tplforge/tplforge/platform"
)

func newExecCmd(flags *rootFlags) *cobra.Command {
	var scriptPath string
	var engineName string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Execute a script against a context, printing logs and the final context",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(scriptPath)
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}

			data, err := loadContext(flags.contextPath)
			if err != nil {
				return err
			}
			funcs, err := loadDefinitions(flags.functionsPath)
			if err != nil {
				return err
			}

			engine, err := types.Parse(engineName)
			if err != nil {
				return err
			}

			box, err := newSandbox(engine, flags, timeout)
			if err != nil {
				return err
			}

			result := box.Execute(cmd.Context(), string(code), data, funcs)

			out := cmd.OutOrStdout()
			for _, line := range result.Logs {
				fmt.Fprintln(out, line)
			}

			finalJSON, err := json.MarshalIndent(result.FinalContext, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode final context: %w", err)
			}
			fmt.Fprintln(out, string(finalJSON))

			if result.Failed() {
				return fmt.Errorf("script failed (%s): %s", result.Kind, result.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "script file")
	cmd.Flags().StringVarP(&engineName, "engine", "e", types.Risor.String(), "script engine (risor or starlark)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "execution budget (0 disables)")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func newSandbox(engine types.Type, flags *rootFlags, timeout time.Duration) (platform.Sandbox, error) {
	handler := flags.logHandler()
	switch engine {
	case types.Starlark:
		return tplforge.NewStarlarkSandbox(
			starlarkSandbox.WithLogHandler(handler),
			starlarkSandbox.WithTimeout(timeout),
		)
	default:
		return tplforge.NewRisorSandbox(
			risorSandbox.WithLogHandler(handler),
			risorSandbox.WithTimeout(timeout),
		)
	}
}
