// bindings.go emits Go declarations describing a block catalog.

package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/makjak/blockly-lua/pkg/schema"
)

// GenerateBindings produces a Go source file declaring a constant for every
// block type, plus lookup tables of the Lua call each block makes and of the
// blocks that may stand alone as statements. Host programs use it to refer
// to block types without string literals.
func GenerateBindings(pkg string, schemas []*schema.Schema) *Result {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by blockly-lua bindings. DO NOT EDIT.")

	var (
		warnings []string
		defs     []jen.Code
		seen     = map[string]string{}
	)
	calls := jen.Dict{}
	statements := jen.Dict{}

	for _, s := range schemas {
		id := ExportedName(s.BlockName)
		if prev, dup := seen[id]; dup {
			warnings = append(warnings, fmt.Sprintf("%s and %s both map to %s; skipping %s", prev, s.BlockName, id, s.BlockName))
			continue
		}
		seen[id] = s.BlockName

		if s.Tooltip != "" {
			defs = append(defs, jen.Comment(id+": "+s.Tooltip))
		}
		defs = append(defs, jen.Id(id).Op("=").Lit(s.BlockName))

		if s.Literal != schema.LiteralNone {
			continue
		}
		call := s.Prefix
		if s.FuncName != "" {
			call += "." + s.FuncName
		}
		calls[jen.Id(id)] = jen.Lit(call)
		if s.Dual || !s.HasOutput() {
			statements[jen.Id(id)] = jen.True()
		}
	}

	f.Comment("Block types.")
	f.Const().Defs(defs...)
	f.Line()

	f.Comment("Calls maps a block type to the Lua function it calls. Blocks whose")
	f.Comment("function is picked from a dropdown map to their API table.")
	f.Var().Id("Calls").Op("=").Map(jen.String()).String().Values(calls)
	f.Line()

	f.Comment("Statements lists the block types that can stand alone as statements.")
	f.Var().Id("Statements").Op("=").Map(jen.String()).Bool().Values(statements)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return &Result{
			Warnings: append(warnings, "render error: "+err.Error()),
		}
	}
	return &Result{
		Code:     buf.String(),
		Warnings: warnings,
	}
}

// ExportedName converts a block type such as turtle_turn_left into a Go
// identifier such as TurtleTurnLeft.
func ExportedName(blockName string) string {
	var sb strings.Builder
	for _, part := range strings.Split(blockName, "_") {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}
