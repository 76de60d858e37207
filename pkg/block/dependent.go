package block

import (
	"fmt"

	"github.com/makjak/blockly-lua/pkg/schema"
)

// DependentInputShown reports whether the dependent input is in the live
// input list.
func (b *Block) DependentInputShown() bool { return b.dependentShown }

// DependentIndex returns the recorded position of the dependent input, or
// -1 for blocks without one.
func (b *Block) DependentIndex() int { return b.dependentIndex }

// AddPolicy returns the remaining default-child policy.
func (b *Block) AddPolicy() schema.AddPolicy { return b.addPolicy }

func (b *Block) initDependent() error {
	d := b.schema.Dependent
	idx := b.InputIndex(d.Input.Name)
	if idx < 0 {
		return fmt.Errorf("%w: dependent input %q missing", ErrStructural, d.Input.Name)
	}
	control := b.Input(d.Control)
	if control == nil || control.dropdown == nil {
		return fmt.Errorf("%w: controlling dropdown %q missing", ErrStructural, d.Control)
	}

	b.dependent = b.inputs[idx]
	b.dependentIndex = idx
	b.dependentShown = true
	b.addPolicy = d.Policy

	control.dropdown.onChange = func(value string) error {
		return b.updateDependentInput(value == d.EnablingValue, true)
	}
	return b.updateDependentInput(control.dropdown.value == d.EnablingValue, false)
}

// SyncDependentInput shows or hides the dependent input to match the
// controlling dropdown's current value, without attaching a default child.
// It is used when rebuilding a block from fields that carry no saved shape.
func (b *Block) SyncDependentInput() error {
	if b.dependent == nil {
		return nil
	}
	d := b.schema.Dependent
	value, _ := b.FieldValue(d.Control)
	return b.updateDependentInput(value == d.EnablingValue, false)
}

// updateDependentInput brings the dependent input's visibility in line with
// show. autoAttach allows the add policy to supply a default child.
func (b *Block) updateDependentInput(show, autoAttach bool) error {
	if b.dependent == nil || show == b.dependentShown {
		return nil
	}
	if !show {
		b.hideDependent()
		return nil
	}
	return b.showDependent(autoAttach)
}

func (b *Block) hideDependent() {
	for i, in := range b.inputs {
		if in == b.dependent {
			b.removeInputAt(i)
			break
		}
	}
	b.dependentShown = false
}

func (b *Block) showDependent(autoAttach bool) error {
	idx := b.dependentIndex
	if idx > len(b.inputs) {
		idx = len(b.inputs)
	}
	b.inputs = append(b.inputs, nil)
	copy(b.inputs[idx+1:], b.inputs[idx:])
	b.inputs[idx] = b.dependent
	b.dependentShown = true

	if !autoAttach || b.addPolicy == schema.AddNone || b.dependent.target != nil {
		return nil
	}
	if b.dependent.Kind != schema.InputValue {
		return nil
	}
	if err := b.attachDefaultChild(); err != nil {
		return err
	}
	if b.addPolicy == schema.AddFirst {
		b.addPolicy = schema.AddNone
	}
	return nil
}

// attachDefaultChild plugs a literal matching the dependent input's type
// into it.
func (b *Block) attachDefaultChild() error {
	d := b.schema.Dependent
	typ, value := TextType, d.DefaultValue
	if b.dependent.Check == "Number" {
		typ = NumberType
		if value == "" {
			value = "0"
		}
	}

	child, err := b.workspace.NewLiteral(typ, value)
	if err != nil {
		return fmt.Errorf("default child for %q: %w", b.dependent.Name, err)
	}
	if err := b.Connect(b.dependent.Name, child); err != nil {
		child.Dispose()
		return fmt.Errorf("default child for %q: %w", b.dependent.Name, err)
	}
	return nil
}
