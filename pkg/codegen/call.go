package codegen

import (
	"strings"

	"github.com/makjak/blockly-lua/pkg/block"
	"github.com/makjak/blockly-lua/pkg/schema"
)

// CallCode renders a block as prefix.callee(args). Dual blocks become a
// statement or an expression according to their current mode; other blocks
// according to whether they have an output.
func CallCode(g *Generator, b *block.Block) (Code, error) {
	text, err := g.CallText(b)
	if err != nil {
		return Code{}, err
	}
	statement := !b.HasOutput()
	if b.Schema().Dual {
		statement = b.IsStatement()
	}
	if statement {
		return Statement(text), nil
	}
	return Expression(text, OrderHigh), nil
}

// CallText assembles the call expression without statement wrapping.
func (g *Generator) CallText(b *block.Block) (string, error) {
	callee, err := g.Callee(b)
	if err != nil {
		return "", err
	}
	args, err := g.Arguments(b)
	if err != nil {
		return "", err
	}
	return b.Schema().Prefix + "." + callee + "(" + strings.Join(args, ", ") + ")", nil
}

// Callee returns the called function: the selected value of the callee
// dropdown when the schema names one, otherwise the fixed function name.
func (g *Generator) Callee(b *block.Block) (string, error) {
	s := b.Schema()
	if s.DropdownFuncName == "" {
		return s.FuncName, nil
	}
	d, err := resolveDropdown(b, b.Input(s.DropdownFuncName), s.DropdownFuncName)
	if err != nil {
		return "", err
	}
	return d.Value(), nil
}

// Arguments renders the call arguments in order. With a parameter order the
// named inputs are used as listed. Otherwise every value input is used, and
// every dropdown except the callee dropdown and a controlling dropdown whose
// dependent input is hidden.
func (g *Generator) Arguments(b *block.Block) ([]string, error) {
	s := b.Schema()
	dep := s.Dependent
	hidden := dep != nil && !b.DependentInputShown()

	var args []string
	if len(s.ParameterOrder) > 0 {
		for _, name := range s.ParameterOrder {
			in := b.Input(name)
			if in == nil && hidden && name == dep.Input.Name {
				continue
			}
			spec, ok := s.Input(name)
			if !ok {
				return nil, Errorf(b, "parameter %q is not an input", name)
			}
			arg, err := g.renderArg(b, spec.Kind, name, in)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return args, nil
	}

	for _, in := range b.Inputs() {
		switch in.Kind {
		case schema.InputLabel:
			continue
		case schema.InputDropdown:
			if in.Name == s.DropdownFuncName {
				continue
			}
			if hidden && in.Name == dep.Control && !dep.KeepControl {
				continue
			}
		}
		arg, err := g.renderArg(b, in.Kind, in.Name, in)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (g *Generator) renderArg(b *block.Block, kind schema.InputKind, name string, in *block.Input) (string, error) {
	if kind == schema.InputDropdown {
		d, err := resolveDropdown(b, in, name)
		if err != nil {
			return "", err
		}
		if b.Schema().QuoteDropdowns() {
			return Quote(d.Value()), nil
		}
		return d.Value(), nil
	}
	if in == nil {
		return "", Errorf(b, "input %q is not present", name)
	}
	return g.ValueToCode(b, in.Name, OrderNone), nil
}

// resolveDropdown finds the single dropdown carried by an input.
func resolveDropdown(b *block.Block, in *block.Input, name string) (*block.Dropdown, error) {
	if in == nil {
		return nil, Errorf(b, "cannot resolve dropdown %q: input not present", name)
	}
	d := in.Dropdown()
	if d == nil {
		return nil, Errorf(b, "cannot resolve dropdown %q: input has no dropdown field", name)
	}
	if len(d.Options()) == 0 {
		return nil, Errorf(b, "cannot resolve dropdown %q: no options", name)
	}
	return d, nil
}
