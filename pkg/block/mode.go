package block

import "fmt"

// IsStatement reports the current mode of a dual block. Other blocks report
// whether they lack an output.
func (b *Block) IsStatement() bool {
	if b.schema.Dual {
		return b.isStatement
	}
	return !b.hasOutput
}

// ChangeModes switches a dual block between statement and expression form.
// The block is first detached from its parent and from the block below it;
// those neighbours are left as top-level blocks, never reattached.
func (b *Block) ChangeModes(toStatement bool) error {
	if b.disposed {
		return fmt.Errorf("%w: %s is disposed", ErrStructural, b)
	}
	if !b.schema.Dual {
		return fmt.Errorf("%w: %s has no statement/expression mode", ErrStructural, b)
	}

	b.Unplug()
	if b.next != nil {
		b.next.Unplug()
	}

	if toStatement {
		if err := b.SetOutput(false, b.outputType); err != nil {
			return err
		}
		if err := b.SetPreviousStatement(true); err != nil {
			return err
		}
		b.SetNextStatement(true)
	} else {
		if err := b.SetPreviousStatement(false); err != nil {
			return err
		}
		b.SetNextStatement(false)
		if err := b.SetOutput(true, b.schema.OutputType()); err != nil {
			return err
		}
	}
	b.isStatement = toStatement
	return nil
}

// Context menu labels for the mode toggle.
const (
	MenuAddOutput    = "Add Output"
	MenuRemoveOutput = "Remove Output"
)

func modeMenu(b *Block) []MenuOption {
	if b.isStatement {
		return []MenuOption{{
			Text:     MenuAddOutput,
			Enabled:  true,
			Callback: func() error { return b.ChangeModes(false) },
		}}
	}
	return []MenuOption{{
		Text:     MenuRemoveOutput,
		Enabled:  true,
		Callback: func() error { return b.ChangeModes(true) },
	}}
}
