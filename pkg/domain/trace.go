package domain

// Reason explains why a run ended.
type Reason string

const (
	// ReasonAccepted: all input consumed and the acceptance condition holds.
	ReasonAccepted Reason = "accepted"
	// ReasonHalted: a Turing machine reached its Final state.
	ReasonHalted Reason = "halted"
	// ReasonNotFinal: input consumed but the machine is not in a Final state.
	ReasonNotFinal Reason = "not_final"
	// ReasonStalled: a deterministic run found no rule for a symbol and stopped reading.
	ReasonStalled Reason = "stalled"
	// ReasonDead: the nondeterministic active set became empty.
	ReasonDead Reason = "dead"
	// ReasonNoTransition: a pushdown or Turing run found no applicable rule.
	ReasonNoTransition Reason = "no_transition"
	// ReasonStackNotEmpty: a pushdown run ended in a Final state with symbols left on the stack.
	ReasonStackNotEmpty Reason = "stack_not_empty"
	// ReasonHeadOutOfBounds: the Turing head left the allocated tape.
	ReasonHeadOutOfBounds Reason = "head_out_of_bounds"
	// ReasonStepLimit: the step budget was exhausted.
	ReasonStepLimit Reason = "step_limit"
)

// Verdict is the terminal classification of a run.
type Verdict struct {
	Accepted bool   `json:"accepted" yaml:"accepted" cbor:"accepted"`
	Reason   Reason `json:"reason" yaml:"reason" cbor:"reason"`
	Detail   string `json:"detail,omitempty" yaml:"detail,omitempty" cbor:"detail,omitempty"`
}

// Step is one configuration of a trace. Only the fields meaningful for the
// machine kind are set.
type Step struct {
	Index int `json:"index" yaml:"index" cbor:"index"`
	// Symbol is the input symbol consumed by this step ("" for epsilon and Turing steps).
	Symbol  string `json:"symbol,omitempty" yaml:"symbol,omitempty" cbor:"symbol,omitempty"`
	Epsilon bool   `json:"epsilon,omitempty" yaml:"epsilon,omitempty" cbor:"epsilon,omitempty"`
	// Rule is the table index of the applied rule, -1 when none applies to the step.
	Rule int `json:"rule" yaml:"rule" cbor:"rule"`

	State  string   `json:"state,omitempty" yaml:"state,omitempty" cbor:"state,omitempty"`
	States []string `json:"states,omitempty" yaml:"states,omitempty" cbor:"states,omitempty"`
	Stack  []string `json:"stack,omitempty" yaml:"stack,omitempty" cbor:"stack,omitempty"`
	Head   *int     `json:"head,omitempty" yaml:"head,omitempty" cbor:"head,omitempty"`
	Tape   []string `json:"tape,omitempty" yaml:"tape,omitempty" cbor:"tape,omitempty"`
}

// Result is the complete record of one run.
type Result struct {
	Machine string   `json:"machine,omitempty" yaml:"machine,omitempty" cbor:"machine,omitempty"`
	Kind    Kind     `json:"kind" yaml:"kind" cbor:"kind"`
	Input   []string `json:"input" yaml:"input" cbor:"input"`

	// Initial is the configuration before any step.
	Initial Step   `json:"initial" yaml:"initial" cbor:"initial"`
	Trace   []Step `json:"trace" yaml:"trace" cbor:"trace"`

	Verdict Verdict `json:"verdict" yaml:"verdict" cbor:"verdict"`

	// Consumed is the number of input symbols read before the run ended.
	Consumed int `json:"consumed" yaml:"consumed" cbor:"consumed"`
	// Steps is the number of steps charged against the step budget.
	Steps int `json:"steps" yaml:"steps" cbor:"steps"`
	// Stack is the final pushdown stack, bottom first.
	Stack []string `json:"stack,omitempty" yaml:"stack,omitempty" cbor:"stack,omitempty"`
	// Tape is the final Turing tape with trailing blanks trimmed.
	Tape []string `json:"tape,omitempty" yaml:"tape,omitempty" cbor:"tape,omitempty"`
}

// Last returns the last recorded configuration, or Initial when the trace is empty.
func (r *Result) Last() Step {
	if len(r.Trace) == 0 {
		return r.Initial
	}
	return r.Trace[len(r.Trace)-1]
}

// Visited returns every state that appears in the run, in first-visit order.
func (r *Result) Visited() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s Step) {
		ids := s.States
		if s.State != "" {
			ids = append([]string{s.State}, ids...)
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	add(r.Initial)
	for _, s := range r.Trace {
		add(s)
	}
	return out
}
