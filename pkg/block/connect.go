package block

import "fmt"

// Connect attaches child to the named value input. A child already in the
// socket is detached and left as a top-level block.
func (b *Block) Connect(inputName string, child *Block) error {
	in := b.Input(inputName)
	if in == nil {
		return fmt.Errorf("%w: %q on %s", ErrUnknownInput, inputName, b.typ)
	}
	if in.dropdown != nil || in.Name == "" {
		return fmt.Errorf("%w: %q on %s is not a value input", ErrIncompatible, inputName, b.typ)
	}
	if err := b.checkAttachable(child); err != nil {
		return err
	}
	if !child.hasOutput {
		return fmt.Errorf("%w: %s has no output", ErrIncompatible, child)
	}
	if in.Check != "" && child.outputType != "" && in.Check != child.outputType {
		return fmt.Errorf("%w: %q expects %s, %s yields %s", ErrIncompatible, inputName, in.Check, child, child.outputType)
	}

	child.Unplug()
	if in.target != nil {
		in.target.Unplug()
	}
	in.target = child
	child.parent = b
	child.parentInput = in
	return nil
}

// ConnectNext attaches child below b. A block already there is detached and
// left as a top-level block.
func (b *Block) ConnectNext(child *Block) error {
	if !b.hasNext {
		return fmt.Errorf("%w: %s has no next connector", ErrIncompatible, b)
	}
	if err := b.checkAttachable(child); err != nil {
		return err
	}
	if !child.hasPrevious {
		return fmt.Errorf("%w: %s has no previous connector", ErrIncompatible, child)
	}

	child.Unplug()
	if b.next != nil {
		b.next.Unplug()
	}
	b.next = child
	child.parent = b
	return nil
}

func (b *Block) checkAttachable(child *Block) error {
	if child == nil || child.disposed || b.disposed {
		return fmt.Errorf("%w: disposed block", ErrIncompatible)
	}
	if child.workspace != b.workspace {
		return fmt.Errorf("%w: %s belongs to another workspace", ErrIncompatible, child)
	}
	for p := b; p != nil; p = p.parent {
		if p == child {
			return fmt.Errorf("%w: attaching %s under %s would form a cycle", ErrIncompatible, child, b)
		}
	}
	return nil
}

// Unplug detaches b from its parent. Its own children stay attached.
func (b *Block) Unplug() {
	p := b.parent
	if p == nil {
		return
	}
	if b.parentInput != nil {
		b.parentInput.target = nil
	} else if p.next == b {
		p.next = nil
	}
	b.parent = nil
	b.parentInput = nil
}

// OutputConnected reports whether b is plugged into a value input.
func (b *Block) OutputConnected() bool {
	return b.parentInput != nil
}

// SetOutput enables or disables the output connector. Disabling it detaches
// b from the socket it is plugged into.
func (b *Block) SetOutput(on bool, typ string) error {
	if on && b.hasPrevious {
		return fmt.Errorf("%w: %s cannot have both output and previous connectors", ErrStructural, b)
	}
	if !on && b.parentInput != nil {
		b.Unplug()
	}
	b.hasOutput = on
	b.outputType = typ
	return nil
}

// SetPreviousStatement enables or disables the previous connector.
func (b *Block) SetPreviousStatement(on bool) error {
	if on && b.hasOutput {
		return fmt.Errorf("%w: %s cannot have both output and previous connectors", ErrStructural, b)
	}
	if !on && b.parent != nil && b.parentInput == nil {
		b.Unplug()
	}
	b.hasPrevious = on
	return nil
}

// SetNextStatement enables or disables the next connector. Disabling it
// leaves any block below as a top-level block.
func (b *Block) SetNextStatement(on bool) {
	if !on && b.next != nil {
		b.next.Unplug()
	}
	b.hasNext = on
}
