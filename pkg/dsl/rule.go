package dsl

import "github.com/aretw0/automata/pkg/domain"

// RuleBuilder configures a single rule.
//
// The shape follows what was set: Pop/Push (or a pushdown builder) give a 5-field
// pushdown rule, Write/Left/Right (or a Turing builder) a 5-field Turing rule,
// otherwise a 3-field finite rule.
type RuleBuilder struct {
	builder *Builder
	from    string
	symbol  string
	pop     string
	push    string
	write   string
	move    domain.Direction
}

// On sets the input symbol (or read symbol on a Turing tape).
func (r *RuleBuilder) On(symbol string) *RuleBuilder {
	r.symbol = symbol
	return r
}

// Read is On for Turing rules.
func (r *RuleBuilder) Read(symbol string) *RuleBuilder {
	return r.On(symbol)
}

// Epsilon makes the rule fire without consuming input.
func (r *RuleBuilder) Epsilon() *RuleBuilder {
	if r.builder.desc.Kind == domain.KindPushdown || r.pop != "" || r.push != "" {
		r.symbol = domain.EpsilonPDA
	} else {
		r.symbol = domain.EpsilonNFA
	}
	return r
}

// Pop requires symbol on top of the stack and removes it.
func (r *RuleBuilder) Pop(symbol string) *RuleBuilder {
	r.pop = symbol
	if r.symbol == domain.EpsilonNFA {
		r.symbol = domain.EpsilonPDA
	}
	return r
}

// Push pushes symbol after the transition.
func (r *RuleBuilder) Push(symbol string) *RuleBuilder {
	r.push = symbol
	if r.symbol == domain.EpsilonNFA {
		r.symbol = domain.EpsilonPDA
	}
	return r
}

// Write sets the symbol a Turing rule writes.
func (r *RuleBuilder) Write(symbol string) *RuleBuilder {
	r.write = symbol
	return r
}

// Left moves the Turing head left.
func (r *RuleBuilder) Left() *RuleBuilder {
	r.move = domain.MoveLeft
	return r
}

// Right moves the Turing head right.
func (r *RuleBuilder) Right() *RuleBuilder {
	r.move = domain.MoveRight
	return r
}

// To completes the rule with its target state and returns the machine builder.
func (r *RuleBuilder) To(id string) *Builder {
	kind := r.builder.desc.Kind
	var rule domain.Rule

	switch {
	case kind == domain.KindTuring || r.move != "" || r.write != "":
		write := r.write
		if write == "" {
			write = r.symbol
		}
		move := r.move
		if move == "" {
			move = domain.MoveRight
		}
		rule = domain.Rule{r.from, r.symbol, id, write, string(move)}
	case kind == domain.KindPushdown || r.pop != "" || r.push != "":
		rule = domain.Rule{r.from, r.symbol, orEmpty(r.pop), orEmpty(r.push), id}
	default:
		rule = domain.Rule{r.from, r.symbol, id}
	}

	r.builder.desc.Rules = append(r.builder.desc.Rules, rule)
	return r.builder
}

func orEmpty(s string) string {
	if s == "" {
		return domain.EmptyStack
	}
	return s
}
