// Package blocks builds block schemas from descriptors and keeps the
// registry that maps each block type to its schema and code generator.
package blocks

import (
	"errors"
	"fmt"

	"github.com/makjak/blockly-lua/pkg/block"
	"github.com/makjak/blockly-lua/pkg/codegen"
	"github.com/makjak/blockly-lua/pkg/schema"
)

// ErrDuplicateBlock indicates a block type registered twice.
var ErrDuplicateBlock = errors.New("block type already registered")

// Entry pairs a schema with the function generating its code.
type Entry struct {
	Schema   *schema.Schema
	Generate codegen.Func
}

// Registry maps block types to entries. It is append-only: a type can be
// registered once and never replaced. A registry is populated while block
// definitions load and only read afterwards.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// NewRegistry creates a registry holding the core literal blocks.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	for _, lit := range []struct {
		typ     string
		literal schema.LiteralType
		output  string
		gen     codegen.Func
	}{
		{block.TextType, schema.LiteralString, "String", codegen.TextCode},
		{block.NumberType, schema.LiteralNumber, "Number", codegen.NumberCode},
		{block.BooleanType, schema.LiteralBoolean, "Boolean", codegen.BooleanCode},
	} {
		s := &schema.Schema{
			BlockName: lit.typ,
			Literal:   lit.literal,
			Outputs:   []schema.OutputSlot{{Type: lit.output}},
		}
		if err := r.Register(s, lit.gen); err != nil {
			panic(err)
		}
	}
	return r
}

// Register validates s and adds it under its block name.
func (r *Registry) Register(s *schema.Schema, gen codegen.Func) error {
	if err := schema.Validate(s); err != nil {
		return err
	}
	if _, dup := r.entries[s.BlockName]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateBlock, s.BlockName)
	}
	r.entries[s.BlockName] = Entry{Schema: s, Generate: gen}
	r.order = append(r.order, s.BlockName)
	return nil
}

// Schema returns the schema registered for typ.
func (r *Registry) Schema(typ string) (*schema.Schema, bool) {
	e, ok := r.entries[typ]
	return e.Schema, ok
}

// GeneratorFor returns the code generator registered for typ.
func (r *Registry) GeneratorFor(typ string) (codegen.Func, bool) {
	e, ok := r.entries[typ]
	return e.Generate, ok
}

// Names returns the registered block types in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Schemas returns the registered schemas in registration order.
func (r *Registry) Schemas() []*schema.Schema {
	out := make([]*schema.Schema, len(r.order))
	for i, name := range r.order {
		out[i] = r.entries[name].Schema
	}
	return out
}

// Len returns the number of registered block types.
func (r *Registry) Len() int {
	return len(r.order)
}
