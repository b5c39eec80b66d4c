package validator

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// Validate runs every structural check in order and stops at the first failure:
// kind, sections, state roles, rules and, for dfa and turing tables, the entry rule.
// A table that fails must never be simulated.
func Validate(t *domain.Table) error {
	if !t.Kind().Valid() {
		return &domain.ValidationError{
			Check:  domain.CheckKind,
			Index:  -1,
			Detail: fmt.Sprintf("kind %q", t.Kind()),
			Err:    domain.ErrUnknownKind,
		}
	}
	if err := StructureOK(t); err != nil {
		return err
	}
	if err := StatesOK(t); err != nil {
		return err
	}
	if err := RulesOK(t); err != nil {
		return err
	}
	switch t.Kind() {
	case domain.KindFinite, domain.KindTuring:
		if err := FirstRuleStartsAtStart(t); err != nil {
			return err
		}
	}
	return nil
}

// StructureOK requires the three sections. States and sigma must also be non-empty;
// an empty rule list is allowed (trivial machine), an absent one is not.
func StructureOK(t *domain.Table) error {
	states, sigma, rules := t.HasSections()

	missing := func(section string) error {
		return &domain.ValidationError{
			Check:  domain.CheckStructure,
			Index:  -1,
			Detail: fmt.Sprintf("[%s]", section),
			Err:    domain.ErrMissingSection,
		}
	}

	switch {
	case !states || t.NumStates() == 0:
		return missing("states")
	case !sigma || len(t.Alphabet()) == 0:
		return missing("sigma")
	case !rules:
		return missing("rules")
	}
	return nil
}

// StatesOK checks role tags: exactly one Start, and for turing tables exactly one
// Final (the halting state). A state id declared twice with different roles is an error.
func StatesOK(t *domain.Table) error {
	seen := make(map[string]domain.Role)
	starts, finals := 0, 0

	for _, s := range t.States() {
		if role, ok := seen[s.ID]; ok {
			return &domain.ValidationError{
				Check:  domain.CheckStates,
				Index:  -1,
				Detail: fmt.Sprintf("state %q declared as %s and %s", s.ID, role, s.Role),
				Err:    domain.ErrDuplicateState,
			}
		}
		seen[s.ID] = s.Role

		switch s.Role {
		case domain.RoleStart:
			starts++
		case domain.RoleFinal:
			finals++
		}
	}

	if starts != 1 {
		return &domain.ValidationError{
			Check:  domain.CheckStates,
			Index:  -1,
			Detail: fmt.Sprintf("expected exactly one start state, found %d", starts),
			Err:    domain.ErrStateRoles,
		}
	}
	if t.Kind() == domain.KindTuring && finals != 1 {
		return &domain.ValidationError{
			Check:  domain.CheckStates,
			Index:  -1,
			Detail: fmt.Sprintf("turing machines need exactly one final (halting) state, found %d", finals),
			Err:    domain.ErrStateRoles,
		}
	}
	return nil
}

// RulesOK checks every rule against the arity of the table kind and the declared
// states and symbols. It is fail-fast: the first bad rule rejects the whole table.
func RulesOK(t *domain.Table) error {
	arity := t.Kind().Arity()

	for i := 0; i < t.NumRules(); i++ {
		rule := t.Rule(i)
		if len(rule) != arity {
			return &domain.ValidationError{
				Check:  domain.CheckRules,
				Index:  i,
				Rule:   rule,
				Detail: fmt.Sprintf("expected %d fields, got %d", arity, len(rule)),
				Err:    domain.ErrArityMismatch,
			}
		}
		if detail := checkRule(t, rule); detail != "" {
			return &domain.ValidationError{
				Check:  domain.CheckRules,
				Index:  i,
				Rule:   rule,
				Detail: detail,
				Err:    domain.ErrUnknownReference,
			}
		}
	}
	return nil
}

// checkRule returns a description of the first undeclared reference, or "".
func checkRule(t *domain.Table, rule domain.Rule) string {
	state := func(id string) string {
		if !t.HasState(id) {
			return fmt.Sprintf("state %q is not declared", id)
		}
		return ""
	}
	symbol := func(sym string, markers ...string) string {
		for _, m := range markers {
			if m != "" && sym == m {
				return ""
			}
		}
		if !t.HasSymbol(sym) {
			return fmt.Sprintf("symbol %q is not in the alphabet", sym)
		}
		return ""
	}

	var problems []string
	switch t.Kind() {
	case domain.KindFinite:
		r := rule.Finite()
		problems = []string{state(r.From), symbol(r.Symbol), state(r.To)}
	case domain.KindNondeterministic:
		r := rule.Finite()
		problems = []string{state(r.From), symbol(r.Symbol, t.Epsilon()), state(r.To)}
	case domain.KindPushdown:
		r := rule.Pushdown()
		problems = []string{
			state(r.From),
			symbol(r.Symbol, t.Epsilon()),
			symbol(r.Pop, t.EmptyStack()),
			symbol(r.Push, t.EmptyStack()),
			state(r.To),
		}
	case domain.KindTuring:
		r := rule.Turing()
		problems = []string{state(r.From), symbol(r.Read, t.Blank()), state(r.To), symbol(r.Write, t.Blank())}
		if r.Move != domain.MoveLeft && r.Move != domain.MoveRight {
			problems = append(problems, fmt.Sprintf("direction %q is neither %s nor %s", r.Move, domain.MoveLeft, domain.MoveRight))
		}
	}

	for _, p := range problems {
		if p != "" {
			return p
		}
	}
	return ""
}

// FirstRuleStartsAtStart enforces the entry-rule convention of dfa and turing tables:
// the first rule in table order must leave the Start state. An empty rule list passes.
func FirstRuleStartsAtStart(t *domain.Table) error {
	if t.NumRules() == 0 {
		return nil
	}
	start, _ := t.Start()
	first := t.Rule(0)
	if first.From() != start {
		return &domain.ValidationError{
			Check:  domain.CheckEntryRule,
			Index:  0,
			Rule:   first,
			Detail: fmt.Sprintf("starts from %q, start state is %q", first.From(), start),
			Err:    domain.ErrMalformedEntryRule,
		}
	}
	return nil
}

// InputOK checks that every run input symbol (or initial tape cell) is in the alphabet.
// Turing tapes may also contain the blank symbol.
func InputOK(t *domain.Table, input []string) error {
	for i, sym := range input {
		if t.Kind() == domain.KindTuring && sym == t.Blank() {
			continue
		}
		if !t.HasSymbol(sym) {
			return &domain.InputError{Position: i, Symbol: sym}
		}
	}
	return nil
}
