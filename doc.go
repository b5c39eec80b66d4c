/*
Package automata simulates formal machines: deterministic and nondeterministic
finite automata, pushdown automata and single-tape Turing machines.

A machine is described by three sections (states with their Start/Final roles,
the alphabet, and the transition rules) in a small text format, YAML or JSON.
The engine builds an immutable transition table from the description, validates
it, and runs it step by step against an input sequence, returning the full trace
and a verdict.

# Concept

Simulation is a pure function of the table and the input: running the same
machine twice on the same input yields the same trace. Structural problems (a
missing section, a rule naming an unknown state, a symbol outside the alphabet)
are errors reported before any step is taken. Dead ends during a run (no
applicable rule, an empty active set, the Turing head leaving the tape) are not
errors; they end the run with a rejecting verdict that says why.

# Text format

	# even number of a's
	[states]
	q0 S
	q1 F
	[sigma]
	a b
	[rules]
	q0 a q1
	q1 a q0

The kind is inferred from the rules (3 fields: finite, 5 fields ending in L or R:
Turing, other 5 fields: pushdown; an epsilon rule or two targets for the same
state and symbol make a finite machine nondeterministic) or declared in an
optional [kind] section.

# Usage

	eng, err := automata.New("./machines", automata.WithMaxSteps(10000))
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Simulate(ctx, "even", []string{"a", "b", "a"})
	if err != nil {
		log.Fatal(err) // invalid machine or input
	}
	fmt.Println(res.Verdict.Accepted, res.Verdict.Reason)
*/
package automata
