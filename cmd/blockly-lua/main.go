// blockly-lua - block vocabulary and Lua generator for ComputerCraft programs
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/makjak/blockly-lua/pkg/blocks"
	"github.com/makjak/blockly-lua/pkg/catalog"
	"github.com/makjak/blockly-lua/pkg/store"
)

const versionStr = "0.3.0"

// app carries the persistent flags shared by every subcommand.
type app struct {
	catalogs []string
	dbPath   string
	noColor  bool
}

// registry builds the built-in vocabulary plus any --catalog files.
func (a *app) registry() (*blocks.Registry, error) {
	r, err := catalog.Builtin()
	if err != nil {
		return nil, fmt.Errorf("loading built-in catalog: %w", err)
	}
	for _, path := range a.catalogs {
		if _, err := catalog.LoadFile(r, path); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return r, nil
}

func (a *app) openStore() (*store.Store, error) {
	return store.New(&store.Config{DBPath: a.dbPath})
}

func rootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:     "blockly-lua",
		Short:   "Generate ComputerCraft Lua from block programs",
		Version: versionStr,
		Long: `blockly-lua defines blocks for the ComputerCraft turtle, redstone,
peripheral, os and term APIs and turns saved block programs into Lua.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.noColor {
				disableColor()
			}
		},
	}

	root.PersistentFlags().StringArrayVar(&a.catalogs, "catalog", nil, "additional block catalog (YAML), may be repeated")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "program database (default $"+store.EnvDBPath+" or ~/.blockly-lua/programs.db)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured diagnostics")

	root.AddCommand(BlocksCmd(a))
	root.AddCommand(GenerateCmd(a))
	root.AddCommand(BindingsCmd(a))
	root.AddCommand(CheckCmd(a))
	root.AddCommand(StoreCmd(a))
	return root
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
