package blocks

import (
	"strconv"
	"strings"

	"github.com/makjak/blockly-lua/pkg/codegen"
	"github.com/makjak/blockly-lua/pkg/naming"
	"github.com/makjak/blockly-lua/pkg/schema"
)

// DirectionsInput names the dropdown added for Descriptor.Directions.
const DirectionsInput = "DIRECTION"

// Descriptor is what a block author writes for one API function.
type Descriptor struct {
	Prefix           string
	BlockName        string // Overrides the name derived from FuncName
	FuncName         string
	DropdownFuncName string

	Hue     int
	Tooltip string
	Help    bool   // Derive the help URL from prefix and callee
	HelpURL string // Used when Help is false

	Outputs     []schema.OutputSlot
	Connections schema.Connections

	// Inputs are laid out as given. Text and Args, when set, are
	// interpolated and appended after them.
	Inputs []schema.InputSpec
	Text   string
	Args   []schema.Arg

	// Directions adds a leading dropdown whose selected value is the
	// callee, as in turtle.detect / detectUp / detectDown.
	Directions []schema.Choice

	ParameterOrder      []string
	QuoteDropdownValues *bool

	// Dependent is the explicit dependent input descriptor. When the
	// pairing is declared with markers instead, DependentPolicy and
	// DependentDefault configure the default child.
	Dependent        *schema.DependentInput
	DependentPolicy  schema.AddPolicy
	DependentDefault string
}

// Must panics if err is non-nil. It is meant for built-in definitions,
// where a malformed schema is a programming error.
func Must(s *schema.Schema, err error) *schema.Schema {
	if err != nil {
		panic(err)
	}
	return s
}

// DefineBlock registers a plain call block.
func (r *Registry) DefineBlock(d Descriptor) (*schema.Schema, error) {
	s, err := d.build()
	if err != nil {
		return nil, err
	}
	return s, r.define(s)
}

// DefineExpStmt registers a block that the user can switch between a
// statement and an expression yielding the descriptor's output type.
func (r *Registry) DefineExpStmt(d Descriptor) (*schema.Schema, error) {
	s, err := d.build()
	if err != nil {
		return nil, err
	}
	valueType := ""
	if len(d.Outputs) > 0 {
		valueType = d.Outputs[len(d.Outputs)-1].Type
	}
	s.Dual = true
	s.Outputs = []schema.OutputSlot{
		{Name: "isStatement", Type: "Boolean"},
		{Name: "value", Type: valueType},
	}
	s.Connections = schema.ConnectionsUnset
	return s, r.define(s)
}

// DefineValue registers a block whose inputs are the fixed, ordered slots
// of a message template. Without Text every arg is laid out in order after
// the function name.
func (r *Registry) DefineValue(d Descriptor) (*schema.Schema, error) {
	if d.Text == "" && len(d.Args) > 0 {
		d.Text = defaultText(d)
	}
	s, err := d.build()
	if err != nil {
		return nil, err
	}
	return s, r.define(s)
}

// DefineWithDependentInput registers a template block with one input shown
// only for a particular selection of a controlling dropdown. The pairing
// comes from Descriptor.Dependent or from marker suffixes in the args.
func (r *Registry) DefineWithDependentInput(d Descriptor) (*schema.Schema, error) {
	s, err := r.dependentSchema(d)
	if err != nil {
		return nil, err
	}
	if s.Dependent == nil {
		return nil, &schema.AuthoringError{Block: s.BlockName, Reason: "no dependent input declared"}
	}
	return s, r.define(s)
}

// DefineWithSide registers a template block followed by the side selector:
// a direction dropdown and a cable id input shown when "cable" is chosen.
func (r *Registry) DefineWithSide(d Descriptor) (*schema.Schema, error) {
	s, err := r.dependentSchema(d)
	if err != nil {
		return nil, err
	}
	if err := schema.ApplySide(s); err != nil {
		return nil, err
	}
	return s, r.define(s)
}

func (r *Registry) dependentSchema(d Descriptor) (*schema.Schema, error) {
	if d.Text == "" && len(d.Args) > 0 {
		d.Text = defaultText(d)
	}
	s, err := d.build()
	if err != nil {
		return nil, err
	}
	marked, err := schema.ExtractDependent(s.BlockName, s.Inputs)
	if err != nil {
		return nil, err
	}
	switch {
	case marked != nil && d.Dependent != nil:
		return nil, &schema.AuthoringError{Block: s.BlockName, Reason: "dependent input declared both by markers and explicitly"}
	case marked != nil:
		marked.Policy = d.DependentPolicy
		marked.DefaultValue = d.DependentDefault
		s.Dependent = marked
	}
	return s, nil
}

func (r *Registry) define(s *schema.Schema) error {
	return r.Register(s, codegen.CallCode)
}

// build binds descriptor fields into a fresh schema.
func (d Descriptor) build() (*schema.Schema, error) {
	s := &schema.Schema{
		Prefix:              d.Prefix,
		FuncName:            d.FuncName,
		DropdownFuncName:    d.DropdownFuncName,
		Hue:                 d.Hue,
		Tooltip:             d.Tooltip,
		HelpURL:             d.HelpURL,
		Outputs:             append([]schema.OutputSlot(nil), d.Outputs...),
		Connections:         d.Connections,
		Text:                d.Text,
		ParameterOrder:      append([]string(nil), d.ParameterOrder...),
		QuoteDropdownValues: d.QuoteDropdownValues,
	}
	if d.BlockName != "" || d.FuncName != "" {
		s.BlockName = naming.ResolveBlockName(d.Prefix, d.BlockName, d.FuncName)
	}

	if len(d.Directions) > 0 {
		if s.DropdownFuncName != "" || s.FuncName != "" {
			return nil, &schema.AuthoringError{Block: s.BlockName, Reason: "directions dropdown supplies the callee; drop funcName/dropdownFuncName"}
		}
		s.DropdownFuncName = DirectionsInput
		s.Inputs = append(s.Inputs, schema.InputSpec{
			Name:    DirectionsInput,
			Kind:    schema.InputDropdown,
			Choices: append([]schema.Choice(nil), d.Directions...),
		})
	}

	s.Inputs = append(s.Inputs, d.Inputs...)
	if d.Text != "" {
		laid, err := schema.Interpolate(d.Text, d.Args)
		if err != nil {
			return nil, &schema.AuthoringError{Block: s.BlockName, Reason: err.Error()}
		}
		s.Inputs = append(s.Inputs, laid...)
	} else if len(d.Args) > 0 {
		return nil, &schema.AuthoringError{Block: s.BlockName, Reason: "args given without a message template"}
	}

	if d.Help {
		if s.DropdownFuncName != "" {
			s.HelpFromCallee = true
		} else {
			s.HelpURL = s.HelpFor(s.FuncName)
		}
	}
	if d.Dependent != nil {
		dep := *d.Dependent
		s.Dependent = &dep
	}
	return s, nil
}

// defaultText lays out every arg after the function name: "forward %1".
func defaultText(d Descriptor) string {
	parts := []string{d.FuncName}
	if d.FuncName == "" {
		parts = parts[:0]
	}
	for i := range d.Args {
		parts = append(parts, "%"+strconv.Itoa(i+1))
	}
	return strings.Join(parts, " ")
}
