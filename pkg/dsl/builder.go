package dsl

import (
	"fmt"
	"slices"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
)

// Builder accumulates one machine description.
type Builder struct {
	desc domain.Description
}

// New creates a builder for a machine called name.
func New(name string) *Builder {
	return &Builder{desc: domain.Description{
		Name:   name,
		States: []domain.State{},
		Sigma:  []string{},
		Rules:  []domain.Rule{},
	}}
}

// Kind declares the machine kind instead of letting it be inferred.
func (b *Builder) Kind(kind domain.Kind) *Builder {
	b.desc.Kind = kind
	return b
}

// Start declares the start state.
func (b *Builder) Start(id string) *Builder {
	return b.state(id, domain.RoleStart)
}

// Final declares a final state (the halting state of a Turing machine).
func (b *Builder) Final(id string) *Builder {
	return b.state(id, domain.RoleFinal)
}

// State declares plain states.
func (b *Builder) State(ids ...string) *Builder {
	for _, id := range ids {
		b.state(id, domain.RolePlain)
	}
	return b
}

func (b *Builder) state(id string, role domain.Role) *Builder {
	b.desc.States = append(b.desc.States, domain.State{ID: id, Role: role})
	return b
}

// Symbols adds symbols to the alphabet, keeping the first occurrence of each.
func (b *Builder) Symbols(symbols ...string) *Builder {
	for _, s := range symbols {
		if !slices.Contains(b.desc.Sigma, s) {
			b.desc.Sigma = append(b.desc.Sigma, s)
		}
	}
	return b
}

// From starts a rule leaving state id. The rule is added when To is called.
func (b *Builder) From(id string) *RuleBuilder {
	return &RuleBuilder{builder: b, from: id}
}

// Rule appends a raw rule tuple.
func (b *Builder) Rule(fields ...string) *Builder {
	b.desc.Rules = append(b.desc.Rules, domain.Rule(slices.Clone(fields)))
	return b
}

// Build returns a copy of the description built so far.
func (b *Builder) Build() *domain.Description {
	d, err := b.desc.Clone()
	if err != nil {
		// Clone only fails on unsupported field types, which Description has none of.
		panic(fmt.Sprintf("dsl: clone description: %v", err))
	}
	return d
}

// Table builds the immutable transition table. It is not validated.
func (b *Builder) Table() *domain.Table {
	return domain.NewTable(b.Build())
}

// Loader compiles this and any other builders into an in-memory loader.
func (b *Builder) Loader(others ...*Builder) (*memory.Store, error) {
	descs := []*domain.Description{b.Build()}
	for _, o := range others {
		descs = append(descs, o.Build())
	}
	loader, err := memory.NewFromDescriptions(descs...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
