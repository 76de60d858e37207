package schema

// Validate checks the schema invariants and completes derived fields. It is
// called once by the factories before a schema is registered.
func Validate(s *Schema) error {
	name := s.BlockName
	if name == "" {
		return authoringf("", "no block name could be resolved (prefix %q, func %q)", s.Prefix, s.FuncName)
	}

	if s.Literal == LiteralNone {
		switch {
		case s.FuncName != "" && s.DropdownFuncName != "":
			return authoringf(name, "both funcName %q and dropdownFuncName %q supply the callee", s.FuncName, s.DropdownFuncName)
		case s.FuncName == "" && s.DropdownFuncName == "":
			return authoringf(name, "no callee: set funcName or dropdownFuncName")
		}
	}

	if len(s.Outputs) > 2 {
		return authoringf(name, "%d outputs declared, at most 2 allowed", len(s.Outputs))
	}
	if s.Dual && len(s.Outputs) != 2 {
		return authoringf(name, "expression/statement block needs 2 outputs, has %d", len(s.Outputs))
	}

	seen := map[string]bool{}
	for _, in := range s.Inputs {
		if in.Kind == InputLabel {
			continue
		}
		if in.Name == "" {
			return authoringf(name, "unnamed %s input", in.Kind)
		}
		if seen[in.Name] {
			return authoringf(name, "duplicate input %q", in.Name)
		}
		seen[in.Name] = true
		if in.Kind == InputDropdown && len(in.Choices) == 0 {
			return authoringf(name, "dropdown %q has no choices", in.Name)
		}
	}

	if s.DropdownFuncName != "" {
		in, ok := s.Input(s.DropdownFuncName)
		if !ok || in.Kind != InputDropdown {
			return authoringf(name, "dropdownFuncName %q is not a dropdown input", s.DropdownFuncName)
		}
	}

	if s.Dependent != nil {
		if err := validateDependent(s); err != nil {
			return err
		}
	}

	for _, p := range s.ParameterOrder {
		if _, ok := s.Input(p); !ok {
			return authoringf(name, "parameterOrder references unknown input %q", p)
		}
	}
	return nil
}

func validateDependent(s *Schema) error {
	d := s.Dependent
	name := s.BlockName
	switch {
	case d.Control == "" && d.Input.Name == "":
		return authoringf(name, "dependent input descriptor names neither control nor input")
	case d.Control == "":
		return authoringf(name, "dependent input %q has no controlling dropdown", d.Input.Name)
	case d.Input.Name == "":
		return authoringf(name, "controlling dropdown %q has no dependent input", d.Control)
	case d.Control == d.Input.Name:
		return authoringf(name, "input %q cannot control itself", d.Control)
	}

	control, ok := s.Input(d.Control)
	if !ok || control.Kind != InputDropdown {
		return authoringf(name, "controlling input %q is not a dropdown", d.Control)
	}
	if !control.HasChoice(d.EnablingValue) {
		return authoringf(name, "enabling value %q is not a choice of %q", d.EnablingValue, d.Control)
	}
	if control.Choices[0].Value == d.EnablingValue {
		return authoringf(name, "enabling value %q is the default choice of %q", d.EnablingValue, d.Control)
	}
	return attachDependent(s)
}
