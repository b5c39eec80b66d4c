package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Text renders a run the way the interactive console prints it: the path
// taken, one verdict line and, for stack and tape machines, the final storage.
func Text(res *domain.Result) string {
	var sb strings.Builder

	switch res.Kind {
	case domain.KindNondeterministic:
		fmt.Fprintf(&sb, "Start states: %s\n", list(res.Initial.States))
		for _, s := range res.Trace {
			fmt.Fprintf(&sb, "After input '%s': %s\n", s.Symbol, list(s.States))
		}
	case domain.KindPushdown:
		fmt.Fprintf(&sb, "%s -> %s\n", res.Initial.State, list(res.Initial.Stack))
		for _, s := range res.Trace {
			fmt.Fprintf(&sb, "%s -> %s\n", s.State, list(s.Stack))
		}
	case domain.KindTuring:
		for _, s := range res.Trace {
			head := 0
			if s.Head != nil {
				head = *s.Head
			}
			fmt.Fprintf(&sb, "%d: %s @%d\n", s.Index, s.State, head)
		}
	default:
		path := []string{res.Initial.State}
		for _, s := range res.Trace {
			path = append(path, s.State)
		}
		sb.WriteString(strings.Join(path, " -> "))
		sb.WriteString("\n")
	}

	sb.WriteString(Message(res))
	sb.WriteString("\n")
	if res.Verdict.Detail != "" && res.Verdict.Reason != domain.ReasonNotFinal {
		fmt.Fprintf(&sb, "(%s)\n", res.Verdict.Detail)
	}

	switch res.Kind {
	case domain.KindPushdown:
		fmt.Fprintf(&sb, "Stack: %s\n", list(res.Stack))
	case domain.KindTuring:
		sb.WriteString("Final tape:\n")
		sb.WriteString(strings.Join(res.Tape, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Message is the one-line verdict for a run.
func Message(res *domain.Result) string {
	v := res.Verdict
	switch v.Reason {
	case domain.ReasonStepLimit:
		return fmt.Sprintf("Step limit exceeded after %d steps.", res.Steps)
	case domain.ReasonHeadOutOfBounds:
		return "Head moved out of tape bounds."
	case domain.ReasonStackNotEmpty:
		return "In final state, but stack not empty."
	case domain.ReasonHalted:
		return "Reached the final state. Halting."
	}

	switch res.Kind {
	case domain.KindFinite:
		if v.Accepted {
			return "DFA input accepted!"
		}
		if v.Reason == domain.ReasonStalled {
			return fmt.Sprintf("No transition after %d symbols.", res.Consumed)
		}
		return "The automata is not in a final state."
	case domain.KindNondeterministic:
		if v.Accepted {
			return "Input accepted!"
		}
		return "Input rejected."
	case domain.KindPushdown:
		if v.Accepted {
			return "Input accepted!"
		}
		return "Not accepted!"
	case domain.KindTuring:
		return "No applicable transition. Halting."
	}
	return string(v.Reason)
}

func list(items []string) string {
	return "[" + strings.Join(items, " ") + "]"
}
