package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tplforge/tplforge"
	"github.com/tplforge/tplforge/preview"
)

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var templatePath string
	var sanitize bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template against a context",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(templatePath)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}

			data, err := loadContext(flags.contextPath)
			if err != nil {
				return err
			}
			funcs, err := loadDefinitions(flags.functionsPath)
			if err != nil {
				return err
			}

			renderer, err := tplforge.NewRenderer(flags.logHandler())
			if err != nil {
				return err
			}

			out, err := renderer.Render(cmd.Context(), string(source), data, funcs)
			if err != nil {
				return err
			}

			if sanitize {
				out = preview.New().Sanitize(out)
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "template file")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "sanitize rendered HTML for preview")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}
