package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/makjak/blockly-lua/pkg/schema"
)

// Kind selects the factory a catalog entry is defined with.
type Kind int

const (
	KindPlain Kind = iota
	KindExpStmt
	KindValue
	KindDependent
	KindSide
)

func (k Kind) String() string {
	switch k {
	case KindExpStmt:
		return "expstmt"
	case KindValue:
		return "value"
	case KindDependent:
		return "dependent"
	case KindSide:
		return "side"
	default:
		return "plain"
	}
}

func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain", "block":
		*k = KindPlain
	case "expstmt":
		*k = KindExpStmt
	case "value":
		*k = KindValue
	case "dependent":
		*k = KindDependent
	case "side":
		*k = KindSide
	default:
		return fmt.Errorf("line %d: unknown block kind %q", value.Line, s)
	}
	return nil
}

// Policy is an add policy spelled NONE, FIRST or ALL.
type Policy schema.AddPolicy

func (p Policy) MarshalYAML() (interface{}, error) {
	return schema.AddPolicy(p).String(), nil
}

func (p *Policy) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := schema.ParseAddPolicy(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = Policy(parsed)
	return nil
}

// Choices is a dropdown option list. Each item is either a mapping with
// label and value or a bare string used as both.
type Choices []schema.Choice

func (c *Choices) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: choices must be a list", value.Line)
	}
	out := make(Choices, 0, len(value.Content))
	for _, item := range value.Content {
		if item.Kind == yaml.ScalarNode {
			out = append(out, schema.Choice{Label: item.Value, Value: item.Value})
			continue
		}
		var ch schema.Choice
		if err := item.Decode(&ch); err != nil {
			return err
		}
		if ch.Label == "" {
			ch.Label = ch.Value
		}
		out = append(out, ch)
	}
	*c = out
	return nil
}
