package block

import (
	"fmt"
	"strconv"

	"github.com/makjak/blockly-lua/pkg/schema"
)

// Block is one placed instance of a schema.
type Block struct {
	id        string
	typ       string
	schema    *schema.Schema
	workspace *Workspace

	inputs []*Input

	hasOutput   bool
	hasPrevious bool
	hasNext     bool
	outputType  string

	parent      *Block
	parentInput *Input // nil when attached below parent's next connector
	next        *Block

	isStatement bool

	dependent      *Input
	dependentShown bool
	dependentIndex int // Captured at initialization, never updated
	addPolicy      schema.AddPolicy

	literal string

	hue      int
	tooltip  string
	helpURL  string
	helpFunc func() string
	menus    []MenuProvider
	warning  string
	disposed bool
}

// Input is one live row of a block.
type Input struct {
	Name  string
	Kind  schema.InputKind
	Label string
	Check string

	dropdown *Dropdown
	target   *Block
	owner    *Block
}

// Dropdown returns the input's dropdown, or nil for non-dropdown inputs.
func (in *Input) Dropdown() *Dropdown { return in.dropdown }

// Target returns the child attached to a value input, or nil.
func (in *Input) Target() *Block { return in.target }

// Dropdown is a closed-choice field.
type Dropdown struct {
	options  []schema.Choice
	value    string
	onChange func(value string) error
}

// Value returns the selected internal value.
func (d *Dropdown) Value() string { return d.value }

// Options returns the choices offered.
func (d *Dropdown) Options() []schema.Choice { return d.options }

// SetValue selects a choice and notifies the owning block.
func (d *Dropdown) SetValue(value string) error {
	if err := d.restore(value); err != nil {
		return err
	}
	if d.onChange != nil {
		return d.onChange(value)
	}
	return nil
}

// restore selects a choice without notifying anyone.
func (d *Dropdown) restore(value string) error {
	for _, c := range d.options {
		if c.Value == value {
			d.value = value
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidChoice, value)
}

// MenuOption is one entry of a block's context menu.
type MenuOption struct {
	Text     string
	Enabled  bool
	Callback func() error
}

// MenuProvider contributes context-menu entries for a block.
type MenuProvider func(b *Block) []MenuOption

func (b *Block) ID() string              { return b.id }
func (b *Block) Type() string            { return b.typ }
func (b *Block) Schema() *schema.Schema  { return b.schema }
func (b *Block) Workspace() *Workspace   { return b.workspace }
func (b *Block) Parent() *Block          { return b.parent }
func (b *Block) Next() *Block            { return b.next }
func (b *Block) HasOutput() bool         { return b.hasOutput }
func (b *Block) HasPrevious() bool       { return b.hasPrevious }
func (b *Block) HasNext() bool           { return b.hasNext }
func (b *Block) OutputType() string      { return b.outputType }
func (b *Block) Hue() int                { return b.hue }
func (b *Block) Tooltip() string         { return b.tooltip }
func (b *Block) Disposed() bool          { return b.disposed }
func (b *Block) WarningText() string     { return b.warning }
func (b *Block) SetHue(hue int)          { b.hue = hue }
func (b *Block) SetTooltip(text string)  { b.tooltip = text }
func (b *Block) SetWarningText(s string) { b.warning = s }

// SetHelpURL sets a fixed help reference.
func (b *Block) SetHelpURL(url string) {
	b.helpURL = url
	b.helpFunc = nil
}

// SetHelpFunc sets a help reference computed on demand.
func (b *Block) SetHelpFunc(fn func() string) {
	b.helpFunc = fn
	b.helpURL = ""
}

// HelpURL returns the current help reference.
func (b *Block) HelpURL() string {
	if b.helpFunc != nil {
		return b.helpFunc()
	}
	return b.helpURL
}

// Literal returns the value held by a literal block.
func (b *Block) Literal() string { return b.literal }

// SetLiteral stores a literal value after checking it parses as the block's
// literal type.
func (b *Block) SetLiteral(value string) error {
	switch b.schema.Literal {
	case schema.LiteralNone:
		return fmt.Errorf("%w: %s is not a literal block", ErrInvalidLiteral, b.typ)
	case schema.LiteralNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidLiteral, value)
		}
	case schema.LiteralBoolean:
		if value != "true" && value != "false" {
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidLiteral, value)
		}
	}
	b.literal = value
	return nil
}

// RegisterContextMenu adds a provider of context-menu entries.
func (b *Block) RegisterContextMenu(p MenuProvider) {
	b.menus = append(b.menus, p)
}

// ContextMenu collects the entries of every registered provider.
func (b *Block) ContextMenu() []MenuOption {
	var out []MenuOption
	for _, p := range b.menus {
		out = append(out, p(b)...)
	}
	return out
}

// Dispose removes the block from its workspace. Children and the next block
// are detached first and stay in the workspace as top-level blocks.
func (b *Block) Dispose() {
	if b.disposed {
		return
	}
	b.Unplug()
	if b.next != nil {
		b.next.Unplug()
	}
	for _, in := range b.inputs {
		if in.target != nil {
			in.target.Unplug()
		}
	}
	if b.dependent != nil && b.dependent.target != nil {
		b.dependent.target.Unplug()
	}
	b.workspace.remove(b)
	b.disposed = true
}

func (b *Block) String() string {
	return fmt.Sprintf("%s(%s)", b.typ, b.id)
}
