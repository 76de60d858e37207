package schema

import (
	"errors"
	"strings"
	"testing"
)

func choices(values ...string) []Choice {
	out := make([]Choice, len(values))
	for i, v := range values {
		out[i] = Choice{Label: strings.TrimSuffix(v, ControlMarker), Value: v}
	}
	return out
}

func TestInterpolate(t *testing.T) {
	args := []Arg{
		{Name: "COUNT", Type: "Number"},
		{Name: "DIR", Choices: choices("up", "down")},
	}

	inputs, err := Interpolate("move %2 by %1 blocks", args)
	if err != nil {
		t.Fatalf("Interpolate() error = %v", err)
	}
	if len(inputs) != 3 {
		t.Fatalf("expected 3 inputs, got %d: %+v", len(inputs), inputs)
	}

	want := []struct {
		name  string
		kind  InputKind
		label string
	}{
		{"DIR", InputDropdown, "move"},
		{"COUNT", InputValue, "by"},
		{"", InputLabel, "blocks"},
	}
	for i, w := range want {
		got := inputs[i]
		if got.Name != w.name || got.Kind != w.kind || got.Label != w.label {
			t.Errorf("input %d = {%q %v %q}, want {%q %v %q}", i, got.Name, got.Kind, got.Label, w.name, w.kind, w.label)
		}
	}
	if inputs[1].Check != "Number" {
		t.Errorf("COUNT check = %q, want Number", inputs[1].Check)
	}
}

func TestInterpolateErrors(t *testing.T) {
	args := []Arg{{Name: "A"}, {Name: "B"}}
	tests := []struct {
		name string
		text string
	}{
		{"out of range", "%1 %3"},
		{"reused", "%1 %1 %2"},
		{"missing", "only %1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Interpolate(tt.text, args); err == nil {
				t.Errorf("Interpolate(%q) expected error", tt.text)
			}
		})
	}
}

func TestInterpolateLiteralPercent(t *testing.T) {
	inputs, err := Interpolate("set %1 to 50%", []Arg{{Name: "X"}})
	if err != nil {
		t.Fatalf("Interpolate() error = %v", err)
	}
	if last := inputs[len(inputs)-1]; last.Kind != InputLabel || last.Label != "to 50%" {
		t.Errorf("trailing label = %+v", last)
	}
}

func TestExtractDependent(t *testing.T) {
	inputs := []InputSpec{
		{Name: "MODE*", Kind: InputDropdown, Choices: choices("any", "named*")},
		{Name: "FILTER^", Kind: InputValue, Check: "String"},
	}

	dep, err := ExtractDependent("os_pull_event", inputs)
	if err != nil {
		t.Fatalf("ExtractDependent() error = %v", err)
	}
	if dep == nil {
		t.Fatal("expected a dependent input")
	}
	if dep.Control != "MODE" || dep.EnablingValue != "named" || dep.Input.Name != "FILTER" {
		t.Errorf("dependent = %+v", dep)
	}
	if inputs[0].Name != "MODE" || inputs[1].Name != "FILTER" {
		t.Errorf("markers not stripped: %q %q", inputs[0].Name, inputs[1].Name)
	}
	if inputs[0].Choices[1].Value != "named" {
		t.Errorf("choice marker not stripped: %q", inputs[0].Choices[1].Value)
	}
}

func TestExtractDependentDoesNotAliasChoices(t *testing.T) {
	shared := choices("a", "b*")
	inputs := []InputSpec{
		{Name: "C*", Kind: InputDropdown, Choices: shared},
		{Name: "D^", Kind: InputValue},
	}
	if _, err := ExtractDependent("x", inputs); err != nil {
		t.Fatalf("ExtractDependent() error = %v", err)
	}
	if shared[1].Value != "b*" {
		t.Errorf("caller's choices modified: %q", shared[1].Value)
	}
}

func TestExtractDependentNone(t *testing.T) {
	inputs := []InputSpec{{Name: "A", Kind: InputValue}}
	dep, err := ExtractDependent("x", inputs)
	if err != nil || dep != nil {
		t.Errorf("ExtractDependent() = %v, %v; want nil, nil", dep, err)
	}
}

func TestExtractDependentErrors(t *testing.T) {
	tests := []struct {
		name   string
		inputs []InputSpec
	}{
		{"two controls", []InputSpec{
			{Name: "A*", Kind: InputDropdown, Choices: choices("x", "y*")},
			{Name: "B*", Kind: InputDropdown, Choices: choices("x", "y*")},
			{Name: "C^", Kind: InputValue},
		}},
		{"two dependents", []InputSpec{
			{Name: "A*", Kind: InputDropdown, Choices: choices("x", "y*")},
			{Name: "B^", Kind: InputValue},
			{Name: "C^", Kind: InputValue},
		}},
		{"control without dependent", []InputSpec{
			{Name: "A*", Kind: InputDropdown, Choices: choices("x", "y*")},
		}},
		{"dependent without control", []InputSpec{
			{Name: "B^", Kind: InputValue},
		}},
		{"control is not dropdown", []InputSpec{
			{Name: "A*", Kind: InputValue},
			{Name: "B^", Kind: InputValue},
		}},
		{"control without enabling choice", []InputSpec{
			{Name: "A*", Kind: InputDropdown, Choices: choices("x", "y")},
			{Name: "B^", Kind: InputValue},
		}},
		{"enabling choice on plain dropdown", []InputSpec{
			{Name: "A", Kind: InputDropdown, Choices: choices("x", "y*")},
		}},
		{"two enabling choices", []InputSpec{
			{Name: "A*", Kind: InputDropdown, Choices: choices("x", "y*", "z*")},
			{Name: "B^", Kind: InputValue},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractDependent("blk", tt.inputs)
			if !errors.Is(err, ErrAuthoring) {
				t.Errorf("ExtractDependent() error = %v, want authoring error", err)
			}
		})
	}
}

func baseSchema() *Schema {
	return &Schema{
		Prefix:    "os",
		BlockName: "os_pull_event",
		FuncName:  "pullEvent",
		Inputs: []InputSpec{
			{Name: "MODE", Kind: InputDropdown, Choices: choices("any", "named")},
			{Name: "FILTER", Kind: InputValue, Check: "String"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Schema)
		wantErr string
	}{
		{"valid", func(s *Schema) {}, ""},
		{"no name", func(s *Schema) { s.BlockName = "" }, "no block name"},
		{"no callee", func(s *Schema) { s.FuncName = "" }, "no callee"},
		{"two callees", func(s *Schema) { s.DropdownFuncName = "MODE" }, "both funcName"},
		{"callee dropdown missing", func(s *Schema) {
			s.FuncName = ""
			s.DropdownFuncName = "FILTER"
		}, "not a dropdown"},
		{"too many outputs", func(s *Schema) {
			s.Outputs = []OutputSlot{{Type: "A"}, {Type: "B"}, {Type: "C"}}
		}, "at most 2"},
		{"duplicate input", func(s *Schema) {
			s.Inputs = append(s.Inputs, InputSpec{Name: "MODE", Kind: InputValue})
		}, "duplicate input"},
		{"unknown parameter", func(s *Schema) { s.ParameterOrder = []string{"NOPE"} }, "unknown input"},
		{"enabling is default", func(s *Schema) {
			s.Dependent = &DependentInput{Control: "MODE", EnablingValue: "any", Input: InputSpec{Name: "FILTER", Kind: InputValue}}
		}, "default choice"},
		{"enabling not a choice", func(s *Schema) {
			s.Dependent = &DependentInput{Control: "MODE", EnablingValue: "bogus", Input: InputSpec{Name: "FILTER", Kind: InputValue}}
		}, "not a choice"},
		{"missing control", func(s *Schema) {
			s.Dependent = &DependentInput{Input: InputSpec{Name: "FILTER", Kind: InputValue}}
		}, "no controlling dropdown"},
		{"missing input", func(s *Schema) {
			s.Dependent = &DependentInput{Control: "MODE", EnablingValue: "named"}
		}, "no dependent input"},
		{"kind mismatch", func(s *Schema) {
			s.Dependent = &DependentInput{Control: "MODE", EnablingValue: "named", Input: InputSpec{Name: "FILTER", Kind: InputDropdown}}
		}, "declared as value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSchema()
			tt.mutate(s)
			err := Validate(s)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
			if !errors.Is(err, ErrAuthoring) {
				t.Errorf("error %v is not an authoring error", err)
			}
		})
	}
}

func TestValidateAppendsUndeclaredDependent(t *testing.T) {
	s := baseSchema()
	s.Dependent = &DependentInput{
		Control:       "MODE",
		EnablingValue: "named",
		Input:         InputSpec{Name: "TIMEOUT", Kind: InputValue, Check: "Number"},
	}
	if err := Validate(s); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	last := s.Inputs[len(s.Inputs)-1]
	if last.Name != "TIMEOUT" || last.Check != "Number" {
		t.Errorf("last input = %+v, want TIMEOUT", last)
	}
}

func TestApplySide(t *testing.T) {
	s := &Schema{Prefix: "peripheral", BlockName: "peripheral_is_present", FuncName: "isPresent"}
	if err := ApplySide(s); err != nil {
		t.Fatalf("ApplySide() error = %v", err)
	}
	if err := Validate(s); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	side, ok := s.Input(SideInput)
	if !ok || len(side.Choices) != 7 || side.Choices[6].Value != "cable" {
		t.Fatalf("side input = %+v", side)
	}
	if s.Dependent.Control != SideInput || s.Dependent.Input.Name != CableInput {
		t.Errorf("dependent = %+v", s.Dependent)
	}
	if s.Dependent.Policy != AddFirst {
		t.Errorf("policy = %v, want FIRST", s.Dependent.Policy)
	}

	if err := ApplySide(s); !errors.Is(err, ErrAuthoring) {
		t.Errorf("second ApplySide() error = %v, want authoring error", err)
	}
}

func TestResolvedConnections(t *testing.T) {
	s := &Schema{}
	if got := s.ResolvedConnections(); got != ConnectionsBoth {
		t.Errorf("no output: got %v, want both", got)
	}
	s.Outputs = []OutputSlot{{Type: "Boolean"}}
	if got := s.ResolvedConnections(); got != ConnectionsNone {
		t.Errorf("with output: got %v, want none", got)
	}
	s.Connections = ConnectionsPreviousOnly
	if got := s.ResolvedConnections(); got != ConnectionsPreviousOnly {
		t.Errorf("explicit: got %v", got)
	}
}

func TestQuoteDropdowns(t *testing.T) {
	s := &Schema{}
	if !s.QuoteDropdowns() {
		t.Error("absent flag should quote")
	}
	s.QuoteDropdownValues = Bool(true)
	if !s.QuoteDropdowns() {
		t.Error("true should quote")
	}
	s.QuoteDropdownValues = Bool(false)
	if s.QuoteDropdowns() {
		t.Error("false should not quote")
	}
}

func TestParseAddPolicy(t *testing.T) {
	for in, want := range map[string]AddPolicy{"": AddNone, "none": AddNone, "First": AddFirst, "ALL": AddAll} {
		got, err := ParseAddPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseAddPolicy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAddPolicy("sometimes"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
