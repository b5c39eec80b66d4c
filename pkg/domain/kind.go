package domain

import (
	"fmt"
	"strings"
)

// Kind tags the automaton class, and with it the rule shape and the engine used.
type Kind string

const (
	KindFinite           Kind = "dfa"
	KindNondeterministic Kind = "nfa"
	KindPushdown         Kind = "pda"
	KindTuring           Kind = "turing"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindFinite, KindNondeterministic, KindPushdown, KindTuring}

// Arity returns the number of fields a rule of this kind must have.
func (k Kind) Arity() int {
	switch k {
	case KindFinite, KindNondeterministic:
		return 3
	case KindPushdown, KindTuring:
		return 5
	}
	return 0
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k.Arity() != 0
}

// Title is the human label used by reports ("DFA", "NFA", "PDA", "Turing machine").
func (k Kind) Title() string {
	switch k {
	case KindFinite:
		return "DFA"
	case KindNondeterministic:
		return "NFA"
	case KindPushdown:
		return "PDA"
	case KindTuring:
		return "Turing machine"
	}
	return string(k)
}

// ParseKind accepts the canonical names plus a few aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dfa", "finite", "deterministic":
		return KindFinite, nil
	case "nfa", "nondeterministic", "enfa", "epsilon-nfa":
		return KindNondeterministic, nil
	case "pda", "pushdown":
		return KindPushdown, nil
	case "turing", "tm":
		return KindTuring, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// InferKind guesses the kind of a description from the shape of its rules.
// It returns the declared kind when there is one.
func InferKind(desc *Description) Kind {
	if desc == nil {
		return ""
	}
	if desc.Kind.Valid() {
		return desc.Kind
	}
	if len(desc.Rules) == 0 {
		return KindFinite
	}

	arity := len(desc.Rules[0])
	if arity == 5 {
		last := desc.Rules[0][4]
		if last == string(MoveLeft) || last == string(MoveRight) {
			return KindTuring
		}
		return KindPushdown
	}

	epsilon := desc.tokens().Epsilon(KindNondeterministic)
	targets := make(map[[2]string]string)
	for _, r := range desc.Rules {
		if len(r) != 3 {
			continue
		}
		if r[1] == epsilon {
			return KindNondeterministic
		}
		key := [2]string{r[0], r[1]}
		if to, ok := targets[key]; ok && to != r[2] {
			return KindNondeterministic
		}
		targets[key] = r[2]
	}
	return KindFinite
}
