package domain

import "slices"

// Table is the immutable in-memory form of one automaton.
// It is built once with NewTable and only read afterwards; accessors return copies.
type Table struct {
	name   string
	kind   Kind
	tokens Tokens

	states []State
	index  map[string]int

	alphabet []string
	symbols  map[string]bool

	rules []Rule

	hasStates bool
	hasSigma  bool
	hasRules  bool
}

// NewTable builds a Table from a description.
//
// Ingestion is idempotent: identical rule tuples and identical state lines collapse to
// their first occurrence, alphabet symbols are de-duplicated in insertion order, and
// reserved markers (epsilon, empty stack) listed in sigma are dropped. Nothing is
// validated here; conflicting duplicates survive for the validator to report.
func NewTable(desc *Description) *Table {
	if desc == nil {
		desc = &Description{}
	}
	kind := InferKind(desc)
	t := &Table{
		name:      desc.Name,
		kind:      kind,
		tokens:    desc.tokens(),
		index:     make(map[string]int),
		symbols:   make(map[string]bool),
		hasStates: desc.States != nil,
		hasSigma:  desc.Sigma != nil,
		hasRules:  desc.Rules != nil,
	}

	for _, s := range desc.States {
		if slices.Contains(t.states, s) {
			continue
		}
		if _, ok := t.index[s.ID]; !ok {
			t.index[s.ID] = len(t.states)
		}
		t.states = append(t.states, s)
	}

	for _, sym := range desc.Sigma {
		if sym == "" || t.symbols[sym] || t.tokens.reserved(kind, sym) {
			continue
		}
		t.symbols[sym] = true
		t.alphabet = append(t.alphabet, sym)
	}

	for _, r := range desc.Rules {
		if slices.ContainsFunc(t.rules, r.Equal) {
			continue
		}
		t.rules = append(t.rules, slices.Clone(r))
	}

	return t
}

func (t *Table) Name() string { return t.name }
func (t *Table) Kind() Kind   { return t.kind }

// HasSections reports which of the three sections were present in the description.
func (t *Table) HasSections() (states, sigma, rules bool) {
	return t.hasStates, t.hasSigma, t.hasRules
}

// States returns the declared states in declaration order.
func (t *Table) States() []State { return slices.Clone(t.states) }

// NumStates is the number of distinct state entries.
func (t *Table) NumStates() int { return len(t.states) }

// Alphabet returns the ordered alphabet.
func (t *Table) Alphabet() []string { return slices.Clone(t.alphabet) }

// Rules returns the de-duplicated rules in table order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		out[i] = slices.Clone(r)
	}
	return out
}

// NumRules is the number of rules after de-duplication.
func (t *Table) NumRules() int { return len(t.rules) }

// Rule returns the i-th rule. The returned tuple must not be modified.
func (t *Table) Rule(i int) Rule { return t.rules[i] }

// HasState reports whether id is declared.
func (t *Table) HasState(id string) bool {
	_, ok := t.index[id]
	return ok
}

// Index returns the ordinal of a state, or -1 when it is not declared.
func (t *Table) Index(id string) int {
	if i, ok := t.index[id]; ok {
		return i
	}
	return -1
}

// StateAt returns the state id at ordinal i.
func (t *Table) StateAt(i int) string { return t.states[i].ID }

// HasSymbol reports whether sym belongs to the alphabet.
func (t *Table) HasSymbol(sym string) bool { return t.symbols[sym] }

// Start returns the first state tagged Start.
func (t *Table) Start() (string, bool) {
	for _, s := range t.states {
		if s.Role == RoleStart {
			return s.ID, true
		}
	}
	return "", false
}

// Finals returns the states tagged Final in declaration order.
func (t *Table) Finals() []string {
	var out []string
	for _, s := range t.states {
		if s.Role == RoleFinal {
			out = append(out, s.ID)
		}
	}
	return out
}

// IsFinal reports whether id is tagged Final.
func (t *Table) IsFinal(id string) bool {
	for _, s := range t.states {
		if s.ID == id && s.Role == RoleFinal {
			return true
		}
	}
	return false
}

// Epsilon is the epsilon token of this table's kind ("" for dfa and turing).
func (t *Table) Epsilon() string { return t.tokens.Epsilon(t.kind) }

// EmptyStack is the pushdown "no condition / push nothing" marker.
func (t *Table) EmptyStack() string { return t.tokens.Empty() }

// Blank is the Turing blank symbol.
func (t *Table) Blank() string { return t.tokens.Blank() }

// Description rebuilds a description equivalent to the table.
func (t *Table) Description() *Description {
	d := &Description{
		Name:   t.name,
		Kind:   t.kind,
		States: t.States(),
		Sigma:  t.Alphabet(),
		Rules:  t.Rules(),
	}
	if t.hasStates && d.States == nil {
		d.States = []State{}
	}
	if t.hasSigma && d.Sigma == nil {
		d.Sigma = []string{}
	}
	if t.hasRules && d.Rules == nil {
		d.Rules = []Rule{}
	}
	d.Epsilon, d.EmptyStack, d.Blank = t.tokens.epsilon, t.tokens.empty, t.tokens.blank
	return d
}
