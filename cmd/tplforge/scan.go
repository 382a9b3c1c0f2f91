package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tplforge/tplforge"
)

func newScanCmd(flags *rootFlags) *cobra.Command {
	var templatePath string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Report function references missing from the definition set",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(templatePath)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}

			funcs, err := loadDefinitions(flags.functionsPath)
			if err != nil {
				return err
			}

			missing := tplforge.ScanTemplate(string(source), funcs)
			if len(missing) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no missing functions")
				return nil
			}

			for _, name := range missing {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return fmt.Errorf("%d missing function(s)", len(missing))
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "template file")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}
