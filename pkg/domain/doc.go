/*
Package domain holds the data model shared by every automaton engine.

A Description is the structured value handed over by a description source (text file,
YAML document, Redis key...). NewTable turns it into an immutable Table, which the
validator approves and the engines execute. Each run produces a Result: the Trace of
configurations it visited and a Verdict.

# Machine kinds

  - KindFinite (dfa): single path, first matching rule wins.
  - KindNondeterministic (nfa): a set of active states, epsilon-closure after every symbol.
  - KindPushdown (pda): one state plus a stack, greedy first-match epsilon phase.
  - KindTuring (turing): one state, a tape and a head; halts in the Final state.

Mid-run dead ends (no applicable rule, head leaving the tape, exhausted step budget) are
not errors. They are terminal Reasons carried by the Verdict.
*/
package domain
