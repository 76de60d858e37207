package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/makjak/blockly-lua/pkg/catalog"
)

// CheckCmd validates catalog files without using them.
func CheckCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <catalog.yaml>...",
		Short: "Validate block catalogs and report every malformed entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading catalog: %w", err)
				}
				if err := catalog.Check(data); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n%v\n", failMark, path, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okMark, path)
			}
			if failed > 0 {
				return fmt.Errorf("%d catalog(s) invalid", failed)
			}
			return nil
		},
	}
}
