package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/makjak/blockly-lua/pkg/codegen"
)

// BindingsCmd emits Go constants for every registered block type.
func BindingsCmd(a *app) *cobra.Command {
	var (
		pkg    string
		output string
	)

	cmd := &cobra.Command{
		Use:   "bindings",
		Short: "Generate Go constants for the registered blocks",
		Long: `Write a Go source file declaring a constant per block type, the Lua
call each block makes, and which blocks are statements.

Examples:
  blockly-lua bindings --package ccblocks > ccblocks/blocks.go
  blockly-lua bindings -o blocks_gen.go --catalog extra.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.registry()
			if err != nil {
				return err
			}
			res := codegen.GenerateBindings(pkg, r.Schemas())
			if err := report(cmd.ErrOrStderr(), res, false); err != nil {
				return err
			}
			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), res.Code)
				return nil
			}
			if err := os.WriteFile(output, []byte(res.Code), 0o644); err != nil {
				return fmt.Errorf("writing bindings: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "blocks", "package name of the generated file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
