package schema

import "strings"

// Marker suffixes let a compact template declare a dependent input without
// an explicit descriptor. ControlMarker ends the controlling dropdown's name
// and its enabling choice value; DependentMarker ends the dependent input's
// name. Both are stripped once the pairing is extracted.
const (
	ControlMarker   = "*"
	DependentMarker = "^"
)

// Side descriptor inputs.
const (
	SideInput  = "SIDE"
	CableInput = "CABLE"
	CableValue = "cable"
)

// SideChoices are the fixed directions offered by the side dropdown.
var SideChoices = []Choice{
	{Label: "front", Value: "front"},
	{Label: "back", Value: "back"},
	{Label: "left", Value: "left"},
	{Label: "right", Value: "right"},
	{Label: "top", Value: "top"},
	{Label: "bottom", Value: "bottom"},
	{Label: "cable", Value: CableValue},
}

// ExtractDependent resolves marker suffixes in inputs, stripping them in
// place. It returns nil when no markers are present.
func ExtractDependent(block string, inputs []InputSpec) (*DependentInput, error) {
	var (
		control, dependent int = -1, -1
		enabling           string
	)

	for i := range inputs {
		in := &inputs[i]
		if in.Kind == InputLabel {
			continue
		}

		marked := ""
		if in.Kind == InputDropdown {
			choices := make([]Choice, len(in.Choices))
			copy(choices, in.Choices)
			for j := range choices {
				if v, ok := strings.CutSuffix(choices[j].Value, ControlMarker); ok {
					if marked != "" {
						return nil, authoringf(block, "dropdown %q marks more than one enabling choice", in.Name)
					}
					marked = v
					choices[j].Value = v
				}
			}
			in.Choices = choices
		}

		if name, ok := strings.CutSuffix(in.Name, ControlMarker); ok {
			if control >= 0 {
				return nil, authoringf(block, "more than one controlling dropdown (%q, %q)", inputs[control].Name, name)
			}
			if in.Kind != InputDropdown {
				return nil, authoringf(block, "controlling input %q is not a dropdown", name)
			}
			if marked == "" {
				return nil, authoringf(block, "controlling dropdown %q has no enabling choice", name)
			}
			in.Name = name
			control = i
			enabling = marked
		} else if marked != "" {
			return nil, authoringf(block, "dropdown %q marks an enabling choice but is not a controlling input", in.Name)
		}

		if name, ok := strings.CutSuffix(in.Name, DependentMarker); ok {
			if dependent >= 0 {
				return nil, authoringf(block, "more than one dependent input (%q, %q)", inputs[dependent].Name, name)
			}
			in.Name = name
			dependent = i
		}
	}

	switch {
	case control < 0 && dependent < 0:
		return nil, nil
	case control < 0:
		return nil, authoringf(block, "dependent input %q has no controlling dropdown", inputs[dependent].Name)
	case dependent < 0:
		return nil, authoringf(block, "controlling dropdown %q has no dependent input", inputs[control].Name)
	}

	return &DependentInput{
		Control:       inputs[control].Name,
		EnablingValue: enabling,
		Input:         inputs[dependent],
	}, nil
}

// ApplySide appends the side dropdown and its cable id input to s and makes
// the cable id the dependent input.
func ApplySide(s *Schema) error {
	if s.Dependent != nil {
		return authoringf(s.BlockName, "side selector cannot be combined with dependent input %q", s.Dependent.Input.Name)
	}
	if _, ok := s.Input(SideInput); ok {
		return authoringf(s.BlockName, "input %q is reserved for the side selector", SideInput)
	}
	if _, ok := s.Input(CableInput); ok {
		return authoringf(s.BlockName, "input %q is reserved for the side selector", CableInput)
	}

	side := InputSpec{Name: SideInput, Kind: InputDropdown, Label: "on side", Choices: SideChoices}
	cable := InputSpec{Name: CableInput, Kind: InputValue, Label: "cable id", Check: "String"}
	s.Inputs = append(s.Inputs, side, cable)
	s.Dependent = &DependentInput{
		Control:       SideInput,
		EnablingValue: CableValue,
		Input:         cable,
		Policy:        AddFirst,
		KeepControl:   true,
	}
	s.Side = true
	return nil
}

// attachDependent makes sure the dependent input is declared. An explicit
// descriptor may name an input that the template did not lay out; it is
// then appended after the declared inputs.
func attachDependent(s *Schema) error {
	d := s.Dependent
	i := s.inputIndex(d.Input.Name)
	if i < 0 {
		if d.Input.Kind == InputLabel {
			return authoringf(s.BlockName, "dependent input %q cannot be a label", d.Input.Name)
		}
		s.Inputs = append(s.Inputs, d.Input)
		return nil
	}
	if s.Inputs[i].Kind != d.Input.Kind {
		return authoringf(s.BlockName, "dependent input %q declared as %s, described as %s",
			d.Input.Name, s.Inputs[i].Kind, d.Input.Kind)
	}
	d.Input = s.Inputs[i]
	return nil
}
