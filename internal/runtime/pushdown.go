package runtime

import (
	"slices"

	"github.com/aretw0/automata/pkg/domain"
)

// pushdown is the stack-guarded engine. Before each symbol, and once after the input,
// it greedily applies the first applicable epsilon rule until none applies. There is
// no backtracking: the first matching rule is the one taken.
type pushdown struct{}

type stackRun struct {
	*run
	state string
	stack []string
}

func (pushdown) simulate(r *run, input []string) error {
	start, _ := r.table.Start()
	p := &stackRun{run: r, state: start, stack: []string{}}
	r.result.Initial = domain.Step{Rule: -1, State: start, Stack: []string{}}

	for i, sym := range input {
		if err := p.epsilons(); err != nil {
			r.result.Consumed = i
			return p.finish(err)
		}

		idx := p.match(sym)
		if idx < 0 {
			r.result.Consumed = i
			r.result.Stack = slices.Clone(p.stack)
			r.reject(domain.ReasonNoTransition, "no rule from %q on %q with stack %v", p.state, sym, p.stack)
			return nil
		}
		if err := r.charge(); err != nil {
			r.result.Consumed = i
			return p.finish(err)
		}
		p.apply(idx, sym, false)
	}
	r.result.Consumed = len(input)

	if err := p.epsilons(); err != nil {
		return p.finish(err)
	}
	r.result.Stack = slices.Clone(p.stack)

	switch {
	case r.table.IsFinal(p.state) && len(p.stack) == 0:
		r.accept(domain.ReasonAccepted)
	case r.table.IsFinal(p.state):
		r.reject(domain.ReasonStackNotEmpty, "final state %q reached with stack %v", p.state, p.stack)
	default:
		r.reject(domain.ReasonNotFinal, "state %q is not final", p.state)
	}
	return nil
}

// epsilons applies epsilon rules until none matches.
func (p *stackRun) epsilons() error {
	eps := p.table.Epsilon()
	for {
		idx := p.match(eps)
		if idx < 0 {
			return nil
		}
		if err := p.charge(); err != nil {
			return err
		}
		p.apply(idx, "", true)
	}
}

// match returns the first rule leaving the current state on sym whose pop condition
// holds. A pop condition on an empty stack does not hold.
func (p *stackRun) match(sym string) int {
	empty := p.table.EmptyStack()
	for i := 0; i < p.table.NumRules(); i++ {
		pr := p.table.Rule(i).Pushdown()
		if pr.From != p.state || pr.Symbol != sym {
			continue
		}
		if pr.Pop == empty || (len(p.stack) > 0 && p.stack[len(p.stack)-1] == pr.Pop) {
			return i
		}
	}
	return -1
}

func (p *stackRun) apply(idx int, sym string, epsilon bool) {
	pr := p.table.Rule(idx).Pushdown()
	empty := p.table.EmptyStack()
	if pr.Pop != empty {
		p.stack = p.stack[:len(p.stack)-1]
	}
	if pr.Push != empty {
		p.stack = append(p.stack, pr.Push)
	}
	p.state = pr.To
	p.record(domain.Step{
		Symbol:  sym,
		Epsilon: epsilon,
		Rule:    idx,
		State:   p.state,
		Stack:   slices.Clone(p.stack),
	})
}

// finish keeps the stack of an interrupted run.
func (p *stackRun) finish(err error) error {
	p.result.Stack = slices.Clone(p.stack)
	return err
}
