package block

import (
	"fmt"

	"github.com/makjak/blockly-lua/pkg/schema"
)

// AppendValueInput adds a socket accepting a child of type check.
func (b *Block) AppendValueInput(name, check, label string) *Input {
	in := &Input{Name: name, Kind: schema.InputValue, Label: label, Check: check, owner: b}
	b.inputs = append(b.inputs, in)
	return in
}

// AppendDropdownInput adds a dropdown selecting its first option.
func (b *Block) AppendDropdownInput(name, label string, options []schema.Choice) *Input {
	d := &Dropdown{options: options}
	if len(options) > 0 {
		d.value = options[0].Value
	}
	in := &Input{Name: name, Kind: schema.InputDropdown, Label: label, dropdown: d, owner: b}
	b.inputs = append(b.inputs, in)
	return in
}

// AppendLabelInput adds a text-only row.
func (b *Block) AppendLabelInput(label string) *Input {
	in := &Input{Kind: schema.InputLabel, Label: label, owner: b}
	b.inputs = append(b.inputs, in)
	return in
}

func (b *Block) appendSpec(spec schema.InputSpec) *Input {
	switch spec.Kind {
	case schema.InputDropdown:
		return b.AppendDropdownInput(spec.Name, spec.Label, spec.Choices)
	case schema.InputLabel:
		return b.AppendLabelInput(spec.Label)
	default:
		return b.AppendValueInput(spec.Name, spec.Check, spec.Label)
	}
}

// Inputs returns the live inputs in display order.
func (b *Block) Inputs() []*Input {
	out := make([]*Input, len(b.inputs))
	copy(out, b.inputs)
	return out
}

// Input returns the live named input, or nil.
func (b *Block) Input(name string) *Input {
	if i := b.InputIndex(name); i >= 0 {
		return b.inputs[i]
	}
	return nil
}

// InputIndex returns the position of a live named input, or -1.
func (b *Block) InputIndex(name string) int {
	if name == "" {
		return -1
	}
	for i, in := range b.inputs {
		if in.Name == name {
			return i
		}
	}
	return -1
}

// MoveInput moves a named input to index, shifting the rows between.
func (b *Block) MoveInput(name string, index int) error {
	from := b.InputIndex(name)
	if from < 0 {
		return fmt.Errorf("%w: %q on %s", ErrUnknownInput, name, b.typ)
	}
	if index < 0 || index >= len(b.inputs) {
		return fmt.Errorf("%w: move %q to %d of %d inputs", ErrStructural, name, index, len(b.inputs))
	}
	in := b.inputs[from]
	b.inputs = append(b.inputs[:from], b.inputs[from+1:]...)
	b.inputs = append(b.inputs[:index], append([]*Input{in}, b.inputs[index:]...)...)
	return nil
}

// RemoveInput removes a named input, detaching any child. The dependent
// input, and inputs laid out before its recorded position, cannot be
// removed; the dependent input is hidden through its controlling dropdown.
func (b *Block) RemoveInput(name string) error {
	i := b.InputIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: %q on %s", ErrUnknownInput, name, b.typ)
	}
	if b.dependent != nil && b.inputs[i] == b.dependent {
		return fmt.Errorf("%w: %q is controlled by %q", ErrStructural, name, b.schema.Dependent.Control)
	}
	if b.dependent != nil && i < b.dependentIndex {
		return fmt.Errorf("%w: %q precedes dependent input %q", ErrStructural, name, b.dependent.Name)
	}
	b.removeInputAt(i)
	return nil
}

func (b *Block) removeInputAt(i int) {
	in := b.inputs[i]
	if in.target != nil {
		in.target.Unplug()
	}
	b.inputs = append(b.inputs[:i], b.inputs[i+1:]...)
}

// FieldValue returns the selected value of a named dropdown.
func (b *Block) FieldValue(name string) (string, bool) {
	in := b.Input(name)
	if in == nil || in.dropdown == nil {
		return "", false
	}
	return in.dropdown.value, true
}

// SetFieldValue selects a value in a named dropdown, as a user edit would.
func (b *Block) SetFieldValue(name, value string) error {
	d, err := b.dropdownNamed(name)
	if err != nil {
		return err
	}
	return d.SetValue(value)
}

// RestoreFieldValue selects a value without triggering shape changes. It is
// used when rebuilding a block from saved state, where the mutation record
// already describes the shape.
func (b *Block) RestoreFieldValue(name, value string) error {
	d, err := b.dropdownNamed(name)
	if err != nil {
		return err
	}
	return d.restore(value)
}

func (b *Block) dropdownNamed(name string) (*Dropdown, error) {
	in := b.Input(name)
	if in == nil {
		// A hidden dependent input still owns its dropdown.
		if b.dependent != nil && b.dependent.Name == name {
			in = b.dependent
		} else {
			return nil, fmt.Errorf("%w: %q on %s", ErrUnknownInput, name, b.typ)
		}
	}
	if in.dropdown == nil {
		return nil, fmt.Errorf("%w: %q on %s is not a dropdown", ErrUnknownInput, name, b.typ)
	}
	return in.dropdown, nil
}
