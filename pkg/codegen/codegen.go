// Package codegen renders placed blocks as Lua source.
//
// Each block type has a Func registered for it. Funcs return a Code value
// that is either a statement (text ending in a newline) or an expression
// paired with its precedence tier. A Func that fails, or panics, only
// affects its own block: the failure is recorded on the Result and on the
// block's warning text, and an empty fragment stands in for its code.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/makjak/blockly-lua/pkg/block"
)

// Code is the output of one block.
type Code struct {
	Text      string
	Order     Order // Meaningful for expressions only
	Statement bool
}

// Statement wraps text as a statement line.
func Statement(text string) Code {
	return Code{Text: text + "\n", Statement: true}
}

// Expression pairs text with its precedence tier.
func Expression(text string, order Order) Code {
	return Code{Text: text, Order: order}
}

// Func generates the code of one block.
type Func func(g *Generator, b *block.Block) (Code, error)

// Source resolves the generator registered for a block type.
type Source interface {
	GeneratorFor(typ string) (Func, bool)
}

// ErrGeneration is matched by every GenerationError via errors.Is.
var ErrGeneration = errors.New("code generation failed")

// GenerationError reports a block whose code could not be produced.
type GenerationError struct {
	BlockID string
	Type    string
	Reason  string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Type, e.BlockID, e.Reason)
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// Errorf builds a GenerationError for b.
func Errorf(b *block.Block, format string, args ...interface{}) error {
	return &GenerationError{BlockID: b.ID(), Type: b.Type(), Reason: fmt.Sprintf(format, args...)}
}

// FailedBlock records a block whose code was replaced by a placeholder.
type FailedBlock struct {
	BlockID string
	Type    string
	Reason  string
}

// Result contains the generated code and any problems met on the way.
type Result struct {
	Code         string
	Warnings     []string
	FailedBlocks []FailedBlock
}

// Generator walks blocks and accumulates diagnostics for one run.
type Generator struct {
	source   Source
	warnings []string
	failed   []FailedBlock
}

// New creates a generator resolving block types through src.
func New(src Source) *Generator {
	return &Generator{source: src}
}

// Generate renders every top-level stack of ws, in creation order.
func (g *Generator) Generate(ws *block.Workspace) *Result {
	g.reset()
	var sb strings.Builder
	for _, top := range ws.TopBlocks() {
		sb.WriteString(g.StackToCode(top))
	}
	return g.result(sb.String())
}

// GenerateBlock renders a single block and its children.
func (g *Generator) GenerateBlock(b *block.Block) (Code, *Result) {
	g.reset()
	code := g.BlockToCode(b)
	return code, g.result(code.Text)
}

func (g *Generator) reset() {
	g.warnings = nil
	g.failed = nil
}

func (g *Generator) result(code string) *Result {
	return &Result{
		Code:         code,
		Warnings:     g.warnings,
		FailedBlocks: g.failed,
	}
}

// Warn records a non-fatal problem.
func (g *Generator) Warn(format string, args ...interface{}) {
	g.warnings = append(g.warnings, fmt.Sprintf(format, args...))
}

// BlockToCode renders one block. Failures never propagate: they are
// recorded and an empty fragment is returned.
func (g *Generator) BlockToCode(b *block.Block) Code {
	if b == nil {
		return Code{}
	}
	code, err := g.generate(b)
	if err != nil {
		g.fail(b, err)
		return Code{Order: OrderAtomic, Statement: b.IsStatement()}
	}
	b.SetWarningText("")
	return code
}

func (g *Generator) generate(b *block.Block) (code Code, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Errorf(b, "generator panicked: %v", r)
		}
	}()

	fn, ok := g.source.GeneratorFor(b.Type())
	if !ok {
		return Code{}, Errorf(b, "no generator registered")
	}
	return fn(g, b)
}

func (g *Generator) fail(b *block.Block, err error) {
	reason := err.Error()
	var ge *GenerationError
	if errors.As(err, &ge) {
		reason = ge.Reason
	}
	b.SetWarningText(reason)
	g.failed = append(g.failed, FailedBlock{BlockID: b.ID(), Type: b.Type(), Reason: reason})
}

// ValueToCode renders the child plugged into a value input, grouping it if
// its tier is looser than outer. An empty socket renders as "".
func (g *Generator) ValueToCode(b *block.Block, name string, outer Order) string {
	in := b.Input(name)
	if in == nil || in.Target() == nil {
		g.Warn("%s (%s): input %q is empty", b.Type(), b.ID(), name)
		return ""
	}
	code := g.BlockToCode(in.Target())
	if code.Text == "" {
		return ""
	}
	if code.Statement {
		g.Warn("%s (%s): statement plugged into input %q", b.Type(), b.ID(), name)
		return strings.TrimRight(code.Text, "\n")
	}
	if needsParens(code.Order, outer) {
		return "(" + code.Text + ")"
	}
	return code.Text
}

// StackToCode renders b and every block chained below it.
func (g *Generator) StackToCode(b *block.Block) string {
	var sb strings.Builder
	for cur := b; cur != nil; cur = cur.Next() {
		code := g.BlockToCode(cur)
		if code.Text == "" {
			continue
		}
		if !code.Statement {
			sb.WriteString(ScrubNakedValue(code.Text))
			continue
		}
		sb.WriteString(code.Text)
	}
	return sb.String()
}

// ScrubNakedValue turns an expression left on its own into a statement.
func ScrubNakedValue(text string) string {
	return "local _ = " + text + "\n"
}
