// Package block is the in-memory host for placed blocks. It offers the
// editing capabilities a visual editor would (connect and detach children,
// toggle connectors, add and move inputs, set dropdowns, context menus) and
// implements the per-instance state machines: statement/expression mode and
// dependent input visibility.
//
// Everything here runs on a single goroutine. Nothing is locked.
package block

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/makjak/blockly-lua/pkg/schema"
)

// Core literal block types. Registries are expected to provide them.
const (
	TextType    = "text"
	NumberType  = "math_number"
	BooleanType = "logic_boolean"
)

// SchemaSource looks up the schema registered for a block type.
type SchemaSource interface {
	Schema(typ string) (*schema.Schema, bool)
}

// Workspace owns every block of one program.
type Workspace struct {
	source SchemaSource
	blocks []*Block
	byID   map[string]*Block
}

// NewWorkspace creates an empty workspace resolving types through src.
func NewWorkspace(src SchemaSource) *Workspace {
	return &Workspace{
		source: src,
		byID:   make(map[string]*Block),
	}
}

// NewBlock places a new block of the given type.
func (w *Workspace) NewBlock(typ string) (*Block, error) {
	return w.NewBlockWithID(typ, uuid.NewString())
}

// NewBlockWithID places a block with a caller-chosen id, as when restoring
// a saved program.
func (w *Workspace) NewBlockWithID(typ, id string) (*Block, error) {
	s, ok := w.source.Schema(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	if id == "" {
		id = uuid.NewString()
	}
	if _, dup := w.byID[id]; dup {
		return nil, fmt.Errorf("block id %q already in use", id)
	}

	b := &Block{
		id:             id,
		typ:            typ,
		schema:         s,
		workspace:      w,
		dependentIndex: -1,
	}
	if err := b.init(); err != nil {
		return nil, fmt.Errorf("initializing %s: %w", typ, err)
	}

	w.blocks = append(w.blocks, b)
	w.byID[id] = b
	return b, nil
}

// NewLiteral places a literal block holding value.
func (w *Workspace) NewLiteral(typ, value string) (*Block, error) {
	b, err := w.NewBlock(typ)
	if err != nil {
		return nil, err
	}
	if err := b.SetLiteral(value); err != nil {
		b.Dispose()
		return nil, err
	}
	return b, nil
}

// Block returns the block with the given id, or nil.
func (w *Workspace) Block(id string) *Block {
	return w.byID[id]
}

// Blocks returns all live blocks in creation order.
func (w *Workspace) Blocks() []*Block {
	out := make([]*Block, len(w.blocks))
	copy(out, w.blocks)
	return out
}

// TopBlocks returns the blocks without a parent, in creation order.
func (w *Workspace) TopBlocks() []*Block {
	var out []*Block
	for _, b := range w.blocks {
		if b.parent == nil {
			out = append(out, b)
		}
	}
	return out
}

func (w *Workspace) remove(b *Block) {
	delete(w.byID, b.id)
	for i, x := range w.blocks {
		if x == b {
			w.blocks = append(w.blocks[:i], w.blocks[i+1:]...)
			return
		}
	}
}
