package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/makjak/blockly-lua/pkg/schema"
)

// BlocksCmd lists the registered block types.
func BlocksCmd(a *app) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List available block types",
		Long: `List every registered block type with its shape and callee.

Examples:
  blockly-lua blocks                    # Built-in blocks
  blockly-lua blocks --prefix turtle    # Only the turtle API
  blockly-lua blocks --catalog my.yaml  # Include extra definitions`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.registry()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			shown := 0
			for _, s := range r.Schemas() {
				if prefix != "" && s.Prefix != prefix {
					continue
				}
				fmt.Fprintf(out, "%-28s %-10s %s\n", s.BlockName, shape(s), color.New(color.FgCyan).Sprint(callee(s)))
				shown++
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d block type(s)\n", shown)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only list blocks of this API")
	return cmd
}

func shape(s *schema.Schema) string {
	switch {
	case s.Literal != schema.LiteralNone:
		return "literal"
	case s.Dual:
		return "dual"
	case s.Side:
		return "side"
	case s.Dependent != nil:
		return "dependent"
	case s.HasOutput():
		return "value"
	default:
		return "statement"
	}
}

func callee(s *schema.Schema) string {
	switch {
	case s.Literal != schema.LiteralNone:
		return ""
	case s.DropdownFuncName != "":
		in, _ := s.Input(s.DropdownFuncName)
		values := make([]string, len(in.Choices))
		for i, c := range in.Choices {
			values[i] = c.Value
		}
		return s.Prefix + ".{" + strings.Join(values, ",") + "}"
	default:
		return s.Prefix + "." + s.FuncName
	}
}
