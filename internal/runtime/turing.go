package runtime

import (
	"slices"

	"github.com/aretw0/automata/pkg/domain"
)

// turing runs a single-tape machine until it reaches its Final state, finds no rule,
// or moves the head off the tape. The tape is the input followed by a fixed run of
// blanks; it never grows.
type turing struct{}

func (turing) simulate(r *run, input []string) error {
	t := r.table
	blank := t.Blank()
	state, _ := t.Start()
	halt := t.Finals()[0]

	tape := make([]string, 0, len(input)+r.engine.tapePadding)
	tape = append(tape, input...)
	for range r.engine.tapePadding {
		tape = append(tape, blank)
	}
	head := 0

	r.result.Initial = domain.Step{Rule: -1, State: state, Head: intPtr(head), Tape: snapshot(tape, head, blank)}
	defer func() { r.result.Tape = trimBlanks(tape, blank) }()

	for state != halt {
		if head < 0 || head >= len(tape) {
			r.reject(domain.ReasonHeadOutOfBounds, "head at %d, tape holds %d cells", head, len(tape))
			return nil
		}

		idx := matchTuring(t, state, tape[head])
		if idx < 0 {
			r.reject(domain.ReasonNoTransition, "no rule from %q reading %q at %d", state, tape[head], head)
			return nil
		}
		if err := r.charge(); err != nil {
			return err
		}

		tr := t.Rule(idx).Turing()
		tape[head] = tr.Write
		head += tr.Move.Offset()
		state = tr.To
		r.record(domain.Step{Rule: idx, State: state, Head: intPtr(head), Tape: snapshot(tape, head, blank)})
	}

	r.accept(domain.ReasonHalted)
	return nil
}

func matchTuring(t *domain.Table, state, read string) int {
	for i := 0; i < t.NumRules(); i++ {
		tr := t.Rule(i).Turing()
		if tr.From == state && tr.Read == read {
			return i
		}
	}
	return -1
}

// snapshot copies the tape up to the last written cell or the head, whichever is further.
func snapshot(tape []string, head int, blank string) []string {
	end := len(trimBlanks(tape, blank))
	if head >= end && head < len(tape) {
		end = head + 1
	}
	return slices.Clone(tape[:end])
}

func trimBlanks(tape []string, blank string) []string {
	end := len(tape)
	for end > 0 && tape[end-1] == blank {
		end--
	}
	return slices.Clone(tape[:end])
}

func intPtr(i int) *int { return &i }
