package main

import (
	"fmt"

	"github.com/spf13/cobra"

	risorCompiler "github.com/tplforge/tplforge/engines/risor/compiler"
	"github.com/tplforge/tplforge/platform/script"
	"github.com/tplforge/tplforge/template"
)

func newTestFnCmd(flags *rootFlags) *cobra.Command {
	var name string
	var argsText string

	cmd := &cobra.Command{
		Use:   "testfn",
		Short: "Invoke a single function definition with ad-hoc arguments",
		RunE: func(cmd *cobra.Command, args []string) error {
			funcs, err := loadDefinitions(flags.functionsPath)
			if err != nil {
				return err
			}

			var def *script.Definition
			for _, d := range script.ActiveSet(funcs) {
				if d.Name == name {
					d := d
					def = &d
					break
				}
			}
			if def == nil {
				return fmt.Errorf("function %q not found in %s", name, flags.functionsPath)
			}

			callArgs := []any{}
			for _, piece := range template.SplitArgs(argsText) {
				callArgs = append(callArgs, script.CoerceArg(piece))
			}

			comp, err := risorCompiler.New(risorCompiler.WithLogHandler(flags.logHandler()))
			if err != nil {
				return err
			}
			fn, err := comp.Compile(*def)
			if err != nil {
				return err
			}

			out, err := fn(cmd.Context(), callArgs...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "function name")
	cmd.Flags().StringVarP(&argsText, "args", "a", "", "comma-separated argument values")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
