package block

import "errors"

var (
	// ErrUnknownType indicates no schema is registered under a block type.
	ErrUnknownType = errors.New("unknown block type")

	// ErrUnknownInput indicates a block has no live input with that name.
	ErrUnknownInput = errors.New("unknown input")

	// ErrIncompatible indicates two connectors cannot be joined.
	ErrIncompatible = errors.New("incompatible connection")

	// ErrInvalidChoice indicates a dropdown value outside its options.
	ErrInvalidChoice = errors.New("invalid dropdown choice")

	// ErrInvalidLiteral indicates a literal that does not parse as its type.
	ErrInvalidLiteral = errors.New("invalid literal")

	// ErrStructural indicates an edit that would corrupt a block's shape,
	// such as removing an input ahead of the dependent slot or switching
	// modes on a block that has none.
	ErrStructural = errors.New("structural violation")
)
