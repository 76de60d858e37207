package block

import (
	"fmt"

	"github.com/makjak/blockly-lua/pkg/schema"
)

// Mutation is the saved per-instance state that is not implied by the
// schema: the dual-block mode and the dependent input's visibility with the
// remaining add policy.
type Mutation struct {
	IsStatement         *bool  `yaml:"is_statement,omitempty" json:"is_statement,omitempty"`
	DependentInputShown *bool  `yaml:"dependent_input_shown,omitempty" json:"dependent_input_shown,omitempty"`
	AddPolicy           string `yaml:"add_policy,omitempty" json:"add_policy,omitempty"`

	// LegacyShown is the older name of DependentInputShown. It is read
	// when DependentInputShown is absent and never written.
	LegacyShown *bool `yaml:"cable_input_shown,omitempty" json:"cable_input_shown,omitempty"`
}

// SaveMutation records the block's mutable shape, or returns nil when the
// block has none.
func (b *Block) SaveMutation() *Mutation {
	if !b.schema.Dual && b.dependent == nil {
		return nil
	}
	m := &Mutation{}
	if b.schema.Dual {
		m.IsStatement = schema.Bool(b.isStatement)
	}
	if b.dependent != nil {
		m.DependentInputShown = schema.Bool(b.dependentShown)
		m.AddPolicy = b.addPolicy.String()
	}
	return m
}

// LoadMutation restores state recorded by SaveMutation. Revealing the
// dependent input here never attaches a default child; saved children are
// restored separately.
func (b *Block) LoadMutation(m *Mutation) error {
	if m == nil {
		return nil
	}

	if b.schema.Dual && m.IsStatement != nil {
		if err := b.ChangeModes(*m.IsStatement); err != nil {
			return err
		}
	}

	if b.dependent == nil {
		return nil
	}
	if m.AddPolicy != "" {
		p, err := schema.ParseAddPolicy(m.AddPolicy)
		if err != nil {
			return fmt.Errorf("loading %s: %w", b, err)
		}
		b.addPolicy = p
	}
	shown := m.DependentInputShown
	if shown == nil {
		shown = m.LegacyShown
	}
	if shown != nil {
		return b.updateDependentInput(*shown, false)
	}
	return nil
}
