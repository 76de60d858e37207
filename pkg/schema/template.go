package schema

import (
	"fmt"
	"strings"
)

// Arg is one named slot of a message template. A non-nil Choices list makes
// it a dropdown, otherwise it is a value input of the given Type.
type Arg struct {
	Name    string
	Type    string
	Choices []Choice
}

// Spec converts the arg into an input row with the given label.
func (a Arg) Spec(label string) InputSpec {
	if a.Choices != nil {
		return InputSpec{Name: a.Name, Kind: InputDropdown, Label: label, Choices: a.Choices}
	}
	return InputSpec{Name: a.Name, Kind: InputValue, Label: label, Check: a.Type}
}

// Interpolate lays out args according to a template such as
// "move %1 steps %2". Each %N refers to args[N-1] and must appear exactly
// once. Text before a placeholder becomes that input's label; text after the
// last placeholder becomes a trailing label input.
func Interpolate(text string, args []Arg) ([]InputSpec, error) {
	var (
		inputs []InputSpec
		label  strings.Builder
		used   = make([]bool, len(args))
	)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '%' || i+1 >= len(text) || !isDigit(text[i+1]) {
			label.WriteByte(c)
			continue
		}
		j := i + 1
		n := 0
		for j < len(text) && isDigit(text[j]) {
			n = n*10 + int(text[j]-'0')
			j++
		}
		if n < 1 || n > len(args) {
			return nil, fmt.Errorf("placeholder %%%d out of range (%d args)", n, len(args))
		}
		if used[n-1] {
			return nil, fmt.Errorf("placeholder %%%d used more than once", n)
		}
		used[n-1] = true
		inputs = append(inputs, args[n-1].Spec(strings.TrimSpace(label.String())))
		label.Reset()
		i = j - 1
	}

	for n, ok := range used {
		if !ok {
			return nil, fmt.Errorf("arg %q (%%%d) missing from message", args[n].Name, n+1)
		}
	}
	if rest := strings.TrimSpace(label.String()); rest != "" {
		inputs = append(inputs, InputSpec{Kind: InputLabel, Label: rest})
	}
	return inputs, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
