package block

import "github.com/makjak/blockly-lua/pkg/schema"

// init lays out a fresh block from its schema.
func (b *Block) init() error {
	s := b.schema
	b.SetHue(s.Hue)
	b.SetTooltip(s.Tooltip)
	switch {
	case s.HelpFromCallee && s.DropdownFuncName != "":
		b.SetHelpFunc(func() string {
			callee, _ := b.FieldValue(s.DropdownFuncName)
			return s.HelpFor(callee)
		})
	case s.HelpURL != "":
		b.SetHelpURL(s.HelpURL)
	}

	for _, spec := range s.Inputs {
		b.appendSpec(spec)
	}

	if s.Literal != schema.LiteralNone {
		b.literal = literalDefault(s.Literal)
	}

	if s.Dual {
		// Dual blocks start as statements.
		b.isStatement = true
		b.outputType = s.OutputType()
		if err := b.SetPreviousStatement(true); err != nil {
			return err
		}
		b.SetNextStatement(true)
		b.RegisterContextMenu(modeMenu)
	} else {
		conns := s.ResolvedConnections()
		if s.HasOutput() {
			if err := b.SetOutput(true, s.OutputType()); err != nil {
				return err
			}
		}
		if err := b.SetPreviousStatement(conns.Previous()); err != nil {
			return err
		}
		b.SetNextStatement(conns.Next())
	}

	if s.Dependent != nil {
		return b.initDependent()
	}
	return nil
}

func literalDefault(t schema.LiteralType) string {
	switch t {
	case schema.LiteralNumber:
		return "0"
	case schema.LiteralBoolean:
		return "true"
	default:
		return ""
	}
}
