package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/makjak/blockly-lua/pkg/blocks"
	"github.com/makjak/blockly-lua/pkg/codegen"
	"github.com/makjak/blockly-lua/pkg/program"
)

// GenerateCmd turns a program document into Lua.
func GenerateCmd(a *app) *cobra.Command {
	var (
		strict bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "generate [program.yaml]",
		Short: "Generate Lua from a program document",
		Long: `Read a program document (YAML or JSON) from a file or stdin and print
the generated Lua to stdout. Blocks that cannot be generated are reported
on stderr and left out of the output.

Examples:
  blockly-lua generate miner.yaml
  cat miner.json | blockly-lua generate --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, err := program.Parse(input)
			if err != nil {
				return err
			}
			r, err := a.registry()
			if err != nil {
				return err
			}
			return emit(cmd, r, doc, strict, dryRun)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any block cannot be generated")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report diagnostics without printing code")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("no input provided")
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// emit generates doc and writes the code, with diagnostics on stderr.
func emit(cmd *cobra.Command, r *blocks.Registry, doc *program.Document, strict, dryRun bool) error {
	ws, err := program.Load(r, doc)
	if err != nil {
		return err
	}
	res := codegen.New(r).Generate(ws)
	if err := report(cmd.ErrOrStderr(), res, strict); err != nil {
		return err
	}
	if dryRun {
		fmt.Fprintf(cmd.ErrOrStderr(), "Dry run - would generate %d bytes of Lua\n", len(res.Code))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), res.Code)
	return nil
}
