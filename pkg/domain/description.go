package domain

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// Reserved tokens used when a description does not override them.
const (
	EpsilonNFA = "epsilon"
	EpsilonPDA = "e"
	EmptyStack = "e"
	Blank      = "_"
)

// Description is the structured value produced by a description source.
// A nil collection means the section was absent, which the validator rejects;
// an empty one means the section was present but had no entries.
type Description struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty" cbor:"name,omitempty"`
	Kind   Kind     `json:"kind,omitempty" yaml:"kind,omitempty" cbor:"kind,omitempty"`
	States []State  `json:"states" yaml:"states" cbor:"states"`
	Sigma  []string `json:"sigma" yaml:"sigma" cbor:"sigma"`
	Rules  []Rule   `json:"rules" yaml:"rules" cbor:"rules"`

	// Optional overrides of the reserved tokens.
	Epsilon    string `json:"epsilon,omitempty" yaml:"epsilon,omitempty" cbor:"epsilon,omitempty"`
	EmptyStack string `json:"empty_stack,omitempty" yaml:"empty_stack,omitempty" cbor:"empty_stack,omitempty"`
	Blank      string `json:"blank,omitempty" yaml:"blank,omitempty" cbor:"blank,omitempty"`
}

// Clone returns a deep copy that shares no slices with d.
func (d *Description) Clone() (*Description, error) {
	if d == nil {
		return nil, nil
	}
	out := &Description{}
	if err := copier.CopyWithOption(out, d, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone description %q: %w", d.Name, err)
	}
	// Presence of a section is meaningful, keep empty-but-present collections non-nil.
	if d.States != nil && out.States == nil {
		out.States = []State{}
	}
	if d.Sigma != nil && out.Sigma == nil {
		out.Sigma = []string{}
	}
	if d.Rules != nil && out.Rules == nil {
		out.Rules = []Rule{}
	}
	return out, nil
}

// Tokens resolves the reserved tokens of a description.
type Tokens struct {
	epsilon string
	empty   string
	blank   string
}

func (d *Description) tokens() Tokens {
	return Tokens{epsilon: d.Epsilon, empty: d.EmptyStack, blank: d.Blank}
}

// Epsilon returns the epsilon token for the kind, or "" when the kind has none.
func (t Tokens) Epsilon(kind Kind) string {
	if t.epsilon != "" {
		return t.epsilon
	}
	switch kind {
	case KindNondeterministic:
		return EpsilonNFA
	case KindPushdown:
		return EpsilonPDA
	}
	return ""
}

// Empty is the pushdown marker meaning "no stack condition" / "push nothing".
func (t Tokens) Empty() string {
	if t.empty != "" {
		return t.empty
	}
	return EmptyStack
}

// Blank is the Turing blank tape symbol.
func (t Tokens) Blank() string {
	if t.blank != "" {
		return t.blank
	}
	return Blank
}

// reserved reports whether sym is a marker rather than an alphabet symbol for kind.
func (t Tokens) reserved(kind Kind, sym string) bool {
	switch kind {
	case KindNondeterministic:
		return sym == t.Epsilon(kind)
	case KindPushdown:
		return sym == t.Epsilon(kind) || sym == t.Empty()
	}
	return false
}
