// Package program saves a workspace as a document tree and restores it.
// Documents are written as YAML or JSON; both decode through the YAML
// parser.
package program

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/makjak/blockly-lua/pkg/block"
	"github.com/makjak/blockly-lua/pkg/schema"
)

// ErrInvalidDocument wraps decoding and restoring failures.
var ErrInvalidDocument = errors.New("invalid program document")

// Format selects the encoding used by Encode.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// ParseFormat accepts "yaml", "yml" or "json".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatYAML, fmt.Errorf("unknown format %q", s)
}

// Document is a saved program: its top-level stacks in workspace order.
type Document struct {
	Name   string  `yaml:"name,omitempty" json:"name,omitempty"`
	Blocks []*Node `yaml:"blocks" json:"blocks"`
}

// Node is one block with everything plugged into it.
type Node struct {
	Type     string            `yaml:"type" json:"type"`
	ID       string            `yaml:"id,omitempty" json:"id,omitempty"`
	Value    string            `yaml:"value,omitempty" json:"value,omitempty"`
	Fields   map[string]string `yaml:"fields,omitempty" json:"fields,omitempty"`
	Mutation *block.Mutation   `yaml:"mutation,omitempty" json:"mutation,omitempty"`
	Inputs   map[string]*Node  `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Next     *Node             `yaml:"next,omitempty" json:"next,omitempty"`
}

// Parse decodes a YAML or JSON document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Encode renders doc in the given format.
func Encode(doc *Document, f Format) ([]byte, error) {
	if f == FormatJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

// Load places every block of doc in a new workspace. Each block is restored
// in the order fields, mutation, inputs, next, so dependent inputs exist
// before their saved children are plugged in and no default child is added.
// A block without a saved visibility shows its dependent input when the
// controlling field holds the enabling value.
func Load(src block.SchemaSource, doc *Document) (*block.Workspace, error) {
	ws := block.NewWorkspace(src)
	for i, n := range doc.Blocks {
		if _, err := restore(ws, n); err != nil {
			return nil, fmt.Errorf("%w: stack %d: %v", ErrInvalidDocument, i, err)
		}
	}
	return ws, nil
}

func restore(ws *block.Workspace, n *Node) (*block.Block, error) {
	if n == nil || n.Type == "" {
		return nil, errors.New("node without a type")
	}
	b, err := ws.NewBlockWithID(n.Type, n.ID)
	if err != nil {
		return nil, err
	}
	switch {
	case n.Value == "":
	case b.Schema().Literal == schema.LiteralNone:
		return nil, fmt.Errorf("%s: value set on a non-literal block", b)
	default:
		if err := b.SetLiteral(n.Value); err != nil {
			return nil, err
		}
	}

	for _, name := range sortedKeys(n.Fields) {
		if err := b.RestoreFieldValue(name, n.Fields[name]); err != nil {
			return nil, err
		}
	}
	// Without a saved visibility the fields decide the shape.
	if err := b.SyncDependentInput(); err != nil {
		return nil, err
	}
	if err := b.LoadMutation(n.Mutation); err != nil {
		return nil, err
	}
	for _, name := range sortedKeys(n.Inputs) {
		child, err := restore(ws, n.Inputs[name])
		if err != nil {
			return nil, err
		}
		if err := b.Connect(name, child); err != nil {
			return nil, err
		}
	}
	if n.Next != nil {
		next, err := restore(ws, n.Next)
		if err != nil {
			return nil, err
		}
		if err := b.ConnectNext(next); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Save records every top-level stack of ws.
func Save(ws *block.Workspace) *Document {
	doc := &Document{}
	for _, top := range ws.TopBlocks() {
		doc.Blocks = append(doc.Blocks, save(top))
	}
	return doc
}

func save(b *block.Block) *Node {
	n := &Node{
		Type:     b.Type(),
		ID:       b.ID(),
		Mutation: b.SaveMutation(),
	}
	if b.Schema().Literal != schema.LiteralNone {
		n.Value = b.Literal()
	}
	for _, in := range b.Inputs() {
		if d := in.Dropdown(); d != nil {
			if n.Fields == nil {
				n.Fields = make(map[string]string)
			}
			n.Fields[in.Name] = d.Value()
			continue
		}
		if child := in.Target(); child != nil {
			if n.Inputs == nil {
				n.Inputs = make(map[string]*Node)
			}
			n.Inputs[in.Name] = save(child)
		}
	}
	if next := b.Next(); next != nil {
		n.Next = save(next)
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
