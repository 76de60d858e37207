package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/makjak/blockly-lua/pkg/codegen"
)

var (
	warnMark = color.New(color.FgYellow).Sprint("⚠")
	failMark = color.New(color.FgRed).Sprint("✗")
	okMark   = color.New(color.FgGreen).Sprint("✓")
)

func disableColor() {
	color.NoColor = true
	warnMark, failMark, okMark = "⚠", "✗", "✓"
}

// report prints the diagnostics of a generation run and returns an error
// when strict is set and any block failed.
func report(w io.Writer, res *codegen.Result, strict bool) error {
	for _, f := range res.FailedBlocks {
		fmt.Fprintf(w, "  %s %s (%s) - %s\n", failMark, f.Type, f.BlockID, f.Reason)
	}
	for _, msg := range res.Warnings {
		fmt.Fprintf(w, "  %s %s\n", warnMark, msg)
	}
	if len(res.FailedBlocks) == 0 {
		if len(res.Warnings) > 0 {
			fmt.Fprintf(w, "  %s generated with %d warning(s)\n", okMark, len(res.Warnings))
		}
		return nil
	}

	fmt.Fprintf(w, "\n%d block(s) could not be generated and were left out.\n", len(res.FailedBlocks))
	if strict {
		return fmt.Errorf("--strict mode enabled, refusing to emit code with failed blocks")
	}
	return nil
}
