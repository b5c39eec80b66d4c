package runtime

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/aretw0/automata/pkg/domain"
)

// nondeterministic tracks the set of active states, closed under epsilon rules
// after every symbol. An empty set ends the run.
type nondeterministic struct{}

func (nondeterministic) simulate(r *run, input []string) error {
	t := r.table
	start, _ := t.Start()

	active := bitset.New(uint(t.NumStates()))
	active.Set(uint(t.Index(start)))
	active = closure(t, active)
	r.result.Initial = domain.Step{Rule: -1, States: names(t, active)}

	for i, sym := range input {
		if err := r.charge(); err != nil {
			r.result.Consumed = i
			return err
		}

		active = closure(t, move(t, active, sym))
		r.record(domain.Step{Symbol: sym, Rule: -1, States: names(t, active)})

		if active.None() {
			r.result.Consumed = i + 1
			r.reject(domain.ReasonDead, "no active state after %q at position %d", sym, i+1)
			return nil
		}
	}

	r.result.Consumed = len(input)
	for i, ok := active.NextSet(0); ok; i, ok = active.NextSet(i + 1) {
		if t.IsFinal(t.StateAt(int(i))) {
			r.accept(domain.ReasonAccepted)
			return nil
		}
	}
	r.reject(domain.ReasonNotFinal, "no final state among %v", names(t, active))
	return nil
}

// move returns every state reachable from active by one rule reading sym.
func move(t *domain.Table, active *bitset.BitSet, sym string) *bitset.BitSet {
	next := bitset.New(uint(t.NumStates()))
	for i := 0; i < t.NumRules(); i++ {
		fr := t.Rule(i).Finite()
		if fr.Symbol == sym && active.Test(uint(t.Index(fr.From))) {
			next.Set(uint(t.Index(fr.To)))
		}
	}
	return next
}

// closure adds every state reachable through epsilon rules. Each state is expanded
// at most once, so cyclic epsilon graphs terminate.
func closure(t *domain.Table, set *bitset.BitSet) *bitset.BitSet {
	out := set.Clone()
	eps := t.Epsilon()
	if eps == "" {
		return out
	}

	var pending []uint
	for i, ok := out.NextSet(0); ok; i, ok = out.NextSet(i + 1) {
		pending = append(pending, i)
	}
	for len(pending) > 0 {
		s := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		from := t.StateAt(int(s))

		for i := 0; i < t.NumRules(); i++ {
			fr := t.Rule(i).Finite()
			if fr.From != from || fr.Symbol != eps {
				continue
			}
			to := t.Index(fr.To)
			if to < 0 || out.Test(uint(to)) {
				continue
			}
			out.Set(uint(to))
			pending = append(pending, uint(to))
		}
	}
	return out
}

// names lists the state ids of set in sorted order.
func names(t *domain.Table, set *bitset.BitSet) []string {
	out := make([]string, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, t.StateAt(int(i)))
	}
	slices.Sort(out)
	return out
}

// EpsilonClosure returns the sorted set of states reachable from states through
// zero or more epsilon rules of an nfa table.
func EpsilonClosure(t *domain.Table, states []string) ([]string, error) {
	set := bitset.New(uint(t.NumStates()))
	for _, s := range states {
		i := t.Index(s)
		if i < 0 {
			return nil, fmt.Errorf("epsilon closure: state %q: %w", s, domain.ErrUnknownReference)
		}
		set.Set(uint(i))
	}
	return names(t, closure(t, set)), nil
}
