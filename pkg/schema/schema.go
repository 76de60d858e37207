// Package schema defines the declarative description of a block: where its
// call goes, what inputs it has, whether it yields a value, and which of its
// inputs only appear for a particular dropdown selection.
//
// A Schema is authored once per API function and never mutated after
// Validate succeeds. Live blocks (package block) share it read-only.
package schema

import (
	"fmt"
	"strings"
)

// InputKind tags an input as one of the three shapes a block row can take.
type InputKind int

const (
	InputValue    InputKind = iota // Socket accepting a child expression
	InputDropdown                  // Closed choice rendered from a fixed option list
	InputLabel                     // Text only; never an argument
)

func (k InputKind) String() string {
	switch k {
	case InputValue:
		return "value"
	case InputDropdown:
		return "dropdown"
	case InputLabel:
		return "label"
	default:
		return "unknown"
	}
}

// Choice is one option of a dropdown. Label is shown, Value is generated.
type Choice struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// InputSpec describes one input row of a block.
type InputSpec struct {
	Name    string
	Kind    InputKind
	Label   string   // Text shown before the socket or dropdown
	Check   string   // Accepted value type for value inputs; "" accepts anything
	Choices []Choice // Dropdown options; the first one is the default
}

// HasChoice reports whether value is one of the dropdown's options.
func (in InputSpec) HasChoice(value string) bool {
	for _, c := range in.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// OutputSlot is a declared output with its value type.
type OutputSlot struct {
	Name string
	Type string
}

// Connections describes which sequencing connectors a block offers.
type Connections int

const (
	ConnectionsUnset Connections = iota
	ConnectionsNone
	ConnectionsPreviousOnly
	ConnectionsNextOnly
	ConnectionsBoth
)

func (c Connections) String() string {
	switch c {
	case ConnectionsNone:
		return "none"
	case ConnectionsPreviousOnly:
		return "previous"
	case ConnectionsNextOnly:
		return "next"
	case ConnectionsBoth:
		return "both"
	default:
		return "unset"
	}
}

// Previous reports whether a previous-statement connector is present.
func (c Connections) Previous() bool {
	return c == ConnectionsPreviousOnly || c == ConnectionsBoth
}

// Next reports whether a next-statement connector is present.
func (c Connections) Next() bool {
	return c == ConnectionsNextOnly || c == ConnectionsBoth
}

// ParseConnections converts the authoring spelling to a Connections value.
func ParseConnections(s string) (Connections, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unset":
		return ConnectionsUnset, nil
	case "none":
		return ConnectionsNone, nil
	case "previous", "previous_only":
		return ConnectionsPreviousOnly, nil
	case "next", "next_only":
		return ConnectionsNextOnly, nil
	case "both":
		return ConnectionsBoth, nil
	}
	return ConnectionsUnset, fmt.Errorf("unknown connections %q", s)
}

// AddPolicy controls whether a default child is attached to a dependent
// input when it is revealed.
type AddPolicy int

const (
	AddNone  AddPolicy = iota // Never attach
	AddFirst                  // Attach on the first reveal only
	AddAll                    // Attach on every reveal
)

func (p AddPolicy) String() string {
	switch p {
	case AddFirst:
		return "FIRST"
	case AddAll:
		return "ALL"
	default:
		return "NONE"
	}
}

// ParseAddPolicy accepts NONE, FIRST or ALL in any case.
func ParseAddPolicy(s string) (AddPolicy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return AddNone, nil
	case "FIRST":
		return AddFirst, nil
	case "ALL":
		return AddAll, nil
	}
	return AddNone, fmt.Errorf("unknown add policy %q", s)
}

// LiteralType marks the core literal blocks that hold a constant.
type LiteralType int

const (
	LiteralNone LiteralType = iota
	LiteralString
	LiteralNumber
	LiteralBoolean
)

// DependentInput pairs a controlling dropdown with an input that is only
// present while the dropdown holds EnablingValue.
type DependentInput struct {
	Control       string
	EnablingValue string
	Input         InputSpec
	Policy        AddPolicy
	DefaultValue  string // Literal attached on reveal; "" or 0 by type when empty
	KeepControl   bool   // Control stays an argument while the input is hidden
}

// Schema is the static description of one block.
type Schema struct {
	Prefix           string
	BlockName        string // Canonical registry name, prefix included
	FuncName         string
	DropdownFuncName string

	Hue            int
	Tooltip        string
	HelpURL        string
	HelpFromCallee bool // Help URL follows the currently selected callee

	Outputs     []OutputSlot
	Connections Connections
	Dual        bool
	Literal     LiteralType

	Text   string
	Inputs []InputSpec

	ParameterOrder      []string
	QuoteDropdownValues *bool

	Dependent *DependentInput
	Side      bool
}

// Input returns the declared input with the given name.
func (s *Schema) Input(name string) (InputSpec, bool) {
	for _, in := range s.Inputs {
		if in.Name == name && in.Kind != InputLabel {
			return in, true
		}
	}
	return InputSpec{}, false
}

// inputIndex returns the declaration position of a named input, or -1.
func (s *Schema) inputIndex(name string) int {
	for i, in := range s.Inputs {
		if in.Name == name && in.Kind != InputLabel {
			return i
		}
	}
	return -1
}

// HasOutput reports whether the block declares any output slot.
func (s *Schema) HasOutput() bool {
	return len(s.Outputs) > 0
}

// OutputType returns the type of the value output, or "".
func (s *Schema) OutputType() string {
	if len(s.Outputs) == 0 {
		return ""
	}
	return s.Outputs[len(s.Outputs)-1].Type
}

// QuoteDropdowns reports whether dropdown values render as string literals.
// Only an explicit false disables quoting.
func (s *Schema) QuoteDropdowns() bool {
	return s.QuoteDropdownValues == nil || *s.QuoteDropdownValues
}

// ResolvedConnections applies the defaulting rule: both connectors for a
// block without output, none for a block with one.
func (s *Schema) ResolvedConnections() Connections {
	if s.Connections != ConnectionsUnset {
		return s.Connections
	}
	if s.HasOutput() {
		return ConnectionsNone
	}
	return ConnectionsBoth
}

// HelpBase is the reference documentation root for generated help links.
const HelpBase = "http://computercraft.info/wiki/"

// HelpFor builds the help reference for a callee of this block's API.
func (s *Schema) HelpFor(callee string) string {
	if s.Prefix == "" || callee == "" {
		return ""
	}
	return HelpBase + strings.ToUpper(s.Prefix[:1]) + s.Prefix[1:] + "." + callee
}

// Bool is a convenience for optional boolean fields.
func Bool(v bool) *bool {
	return &v
}
