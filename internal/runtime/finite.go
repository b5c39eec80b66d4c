package runtime

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// finite is the deterministic engine: one current state, first matching rule wins.
type finite struct{}

func (finite) simulate(r *run, input []string) error {
	t := r.table
	state, _ := t.Start()
	r.result.Initial = domain.Step{Rule: -1, State: state}

	for i, sym := range input {
		idx := matchFinite(t, state, sym)
		if idx < 0 {
			// No rule: stop reading and judge the state we are stuck in.
			r.result.Consumed = i
			if t.IsFinal(state) {
				r.result.Verdict = domain.Verdict{
					Accepted: true,
					Reason:   domain.ReasonAccepted,
					Detail:   stallDetail(state, sym, i),
				}
			} else {
				r.reject(domain.ReasonStalled, "%s", stallDetail(state, sym, i))
			}
			return nil
		}

		if err := r.charge(); err != nil {
			r.result.Consumed = i
			return err
		}
		state = t.Rule(idx).Finite().To
		r.record(domain.Step{Symbol: sym, Rule: idx, State: state})
	}

	r.result.Consumed = len(input)
	if t.IsFinal(state) {
		r.accept(domain.ReasonAccepted)
	} else {
		r.reject(domain.ReasonNotFinal, "state %q is not final", state)
	}
	return nil
}

func matchFinite(t *domain.Table, state, sym string) int {
	for i := 0; i < t.NumRules(); i++ {
		fr := t.Rule(i).Finite()
		if fr.From == state && fr.Symbol == sym {
			return i
		}
	}
	return -1
}

func stallDetail(state, sym string, pos int) string {
	return fmt.Sprintf("no rule from %q on %q at position %d, remaining input ignored", state, sym, pos+1)
}
