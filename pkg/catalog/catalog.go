// Package catalog reads block definitions written in YAML and registers
// them through the block factories. A catalog file describes one API:
//
//	prefix: turtle
//	hue: 120
//	help: true
//	blocks:
//	  - funcName: turnLeft
//	  - kind: value
//	    funcName: select
//	    text: select slot %1
//	    args:
//	      - {name: SLOT, type: Number}
//
// The built-in ComputerCraft catalog is embedded in the package.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/makjak/blockly-lua/pkg/blocks"
	"github.com/makjak/blockly-lua/pkg/schema"
)

// ErrInvalidCatalog wraps every decoding failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed builtin/*.yaml
var builtin embed.FS

// File is one catalog document.
type File struct {
	Prefix string  `yaml:"prefix"`
	Hue    int     `yaml:"hue"`
	Help   bool    `yaml:"help"`
	Blocks []Entry `yaml:"blocks"`
}

// Entry describes one block. Hue and Help default to the file's values.
type Entry struct {
	Kind             Kind   `yaml:"kind,omitempty"`
	BlockName        string `yaml:"blockName,omitempty"`
	FuncName         string `yaml:"funcName,omitempty"`
	DropdownFuncName string `yaml:"dropdownFuncName,omitempty"`

	Hue     *int   `yaml:"hue,omitempty"`
	Tooltip string `yaml:"tooltip,omitempty"`
	Help    *bool  `yaml:"help,omitempty"`
	HelpURL string `yaml:"helpUrl,omitempty"`

	// Output is shorthand for a single unnamed output of that type.
	Output      string   `yaml:"output,omitempty"`
	Outputs     []Output `yaml:"outputs,omitempty"`
	Connections string   `yaml:"connections,omitempty"`

	Text       string  `yaml:"text,omitempty"`
	Args       []Arg   `yaml:"args,omitempty"`
	Directions Choices `yaml:"directions,omitempty"`

	ParameterOrder      []string `yaml:"parameterOrder,omitempty"`
	QuoteDropdownValues *bool    `yaml:"quoteDropdownValues,omitempty"`

	Dependent    *Dependent `yaml:"dependent,omitempty"`
	AddPolicy    Policy     `yaml:"addPolicy,omitempty"`
	DefaultValue string     `yaml:"defaultValue,omitempty"`
}

// Output is a declared output slot.
type Output struct {
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type"`
}

// Arg is a template slot. Choices make it a dropdown.
type Arg struct {
	Name    string  `yaml:"name"`
	Type    string  `yaml:"type,omitempty"`
	Label   string  `yaml:"label,omitempty"`
	Choices Choices `yaml:"choices,omitempty"`
}

// Dependent is the explicit form of a dependent input pairing.
type Dependent struct {
	Control       string `yaml:"control"`
	EnablingValue string `yaml:"enablingValue"`
	Input         Arg    `yaml:"input"`
}

// Parse decodes a catalog document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if f.Prefix == "" {
		return nil, fmt.Errorf("%w: missing prefix", ErrInvalidCatalog)
	}
	return &f, nil
}

// Load parses data and registers every block in it. Registration stops at
// the first failing entry; earlier entries stay registered.
func Load(r *blocks.Registry, data []byte) ([]*schema.Schema, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return f.Register(r)
}

// Register defines every entry of f in r.
func (f *File) Register(r *blocks.Registry) ([]*schema.Schema, error) {
	out := make([]*schema.Schema, 0, len(f.Blocks))
	for i, e := range f.Blocks {
		s, err := f.define(r, e)
		if err != nil {
			return out, f.entryError(i, e, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Check defines every entry of data in a scratch registry and reports all
// failing entries instead of stopping at the first.
func Check(data []byte) error {
	f, err := Parse(data)
	if err != nil {
		return err
	}
	r := blocks.NewRegistry()
	var result *multierror.Error
	for i, e := range f.Blocks {
		if _, err := f.define(r, e); err != nil {
			result = multierror.Append(result, f.entryError(i, e, err))
		}
	}
	return result.ErrorOrNil()
}

func (f *File) entryError(i int, e Entry, err error) error {
	return fmt.Errorf("%s block %d (%s): %w", f.Prefix, i, e.name(), err)
}

// LoadFile registers the catalog stored at path.
func LoadFile(r *blocks.Registry, path string) ([]*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Load(r, data)
}

// LoadBuiltin registers the embedded ComputerCraft catalog, one file per
// API in lexical order.
func LoadBuiltin(r *blocks.Registry) ([]*schema.Schema, error) {
	names, err := fs.Glob(builtin, "builtin/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	var all []*schema.Schema
	for _, name := range names {
		data, err := builtin.ReadFile(name)
		if err != nil {
			return nil, err
		}
		defined, err := Load(r, data)
		all = append(all, defined...)
		if err != nil {
			return all, fmt.Errorf("%s: %w", path.Base(name), err)
		}
	}
	return all, nil
}

// Builtin returns a registry holding the core literals and the built-in
// catalog.
func Builtin() (*blocks.Registry, error) {
	r := blocks.NewRegistry()
	if _, err := LoadBuiltin(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (f *File) define(r *blocks.Registry, e Entry) (*schema.Schema, error) {
	d, err := f.descriptor(e)
	if err != nil {
		return nil, err
	}
	switch e.Kind {
	case KindExpStmt:
		return r.DefineExpStmt(d)
	case KindValue:
		return r.DefineValue(d)
	case KindDependent:
		return r.DefineWithDependentInput(d)
	case KindSide:
		return r.DefineWithSide(d)
	default:
		return r.DefineBlock(d)
	}
}

func (f *File) descriptor(e Entry) (blocks.Descriptor, error) {
	conns, err := schema.ParseConnections(e.Connections)
	if err != nil {
		return blocks.Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	d := blocks.Descriptor{
		Prefix:              f.Prefix,
		BlockName:           e.BlockName,
		FuncName:            e.FuncName,
		DropdownFuncName:    e.DropdownFuncName,
		Hue:                 f.Hue,
		Tooltip:             e.Tooltip,
		Help:                f.Help,
		HelpURL:             e.HelpURL,
		Connections:         conns,
		Text:                e.Text,
		Directions:          e.Directions,
		ParameterOrder:      e.ParameterOrder,
		QuoteDropdownValues: e.QuoteDropdownValues,
		DependentPolicy:     schema.AddPolicy(e.AddPolicy),
		DependentDefault:    e.DefaultValue,
	}
	if e.Hue != nil {
		d.Hue = *e.Hue
	}
	if e.Help != nil {
		d.Help = *e.Help
	}
	if e.HelpURL != "" {
		d.Help = false
	}

	if e.Output != "" {
		d.Outputs = append(d.Outputs, schema.OutputSlot{Type: e.Output})
	}
	for _, o := range e.Outputs {
		d.Outputs = append(d.Outputs, schema.OutputSlot{Name: o.Name, Type: o.Type})
	}

	for _, a := range e.Args {
		if a.Label != "" {
			return blocks.Descriptor{}, fmt.Errorf("%w: arg %q: labels come from the message text", ErrInvalidCatalog, a.Name)
		}
		d.Args = append(d.Args, a.arg())
	}

	if dep := e.Dependent; dep != nil {
		input := dep.Input.arg().Spec(dep.Input.Label)
		d.Dependent = &schema.DependentInput{
			Control:       dep.Control,
			EnablingValue: dep.EnablingValue,
			Input:         input,
			Policy:        schema.AddPolicy(e.AddPolicy),
			DefaultValue:  e.DefaultValue,
		}
	}
	return d, nil
}

func (a Arg) arg() schema.Arg {
	out := schema.Arg{Name: a.Name, Type: a.Type}
	if a.Choices != nil {
		out.Choices = []schema.Choice(a.Choices)
	}
	return out
}

func (e Entry) name() string {
	if e.BlockName != "" {
		return e.BlockName
	}
	if e.FuncName != "" {
		return e.FuncName
	}
	return "unnamed"
}
