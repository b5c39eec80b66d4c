package report

import (
	"fmt"
	"strings"

	"github.com/russross/blackfriday/v2"

	"github.com/aretw0/automata/pkg/domain"
)

// Markdown renders a run as a document with a verdict summary and a trace table.
func Markdown(res *domain.Result) string {
	var sb strings.Builder

	title := res.Machine
	if title == "" {
		title = "Run"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	verdict := "rejected"
	if res.Verdict.Accepted {
		verdict = "accepted"
	}
	fmt.Fprintf(&sb, "**%s** (%s, `%s`)\n\n", verdict, res.Kind.Title(), res.Verdict.Reason)
	fmt.Fprintf(&sb, "%s\n\n", Message(res))
	if res.Verdict.Detail != "" {
		fmt.Fprintf(&sb, "> %s\n\n", res.Verdict.Detail)
	}

	fmt.Fprintf(&sb, "- Input: `%s`\n", strings.Join(res.Input, " "))
	fmt.Fprintf(&sb, "- Consumed: %d\n", res.Consumed)
	fmt.Fprintf(&sb, "- Steps: %d\n", res.Steps)
	switch res.Kind {
	case domain.KindPushdown:
		fmt.Fprintf(&sb, "- Stack: `%s`\n", list(res.Stack))
	case domain.KindTuring:
		fmt.Fprintf(&sb, "- Tape: `%s`\n", strings.Join(res.Tape, " "))
	}
	sb.WriteString("\n## Trace\n\n")

	switch res.Kind {
	case domain.KindNondeterministic:
		sb.WriteString("| # | Symbol | States |\n|---|---|---|\n")
		fmt.Fprintf(&sb, "| 0 | | %s |\n", cell(list(res.Initial.States)))
		for _, s := range res.Trace {
			fmt.Fprintf(&sb, "| %d | %s | %s |\n", s.Index, cell(s.Symbol), cell(list(s.States)))
		}
	case domain.KindPushdown:
		sb.WriteString("| # | Symbol | Rule | State | Stack |\n|---|---|---|---|---|\n")
		fmt.Fprintf(&sb, "| 0 | | | %s | %s |\n", cell(res.Initial.State), cell(list(res.Initial.Stack)))
		for _, s := range res.Trace {
			sym := s.Symbol
			if s.Epsilon {
				sym = "ε"
			}
			fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n", s.Index, cell(sym), rule(s.Rule), cell(s.State), cell(list(s.Stack)))
		}
	case domain.KindTuring:
		sb.WriteString("| # | Rule | State | Head | Tape |\n|---|---|---|---|---|\n")
		for _, s := range append([]domain.Step{res.Initial}, res.Trace...) {
			head := ""
			if s.Head != nil {
				head = fmt.Sprint(*s.Head)
			}
			fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n", s.Index, rule(s.Rule), cell(s.State), head, cell(strings.Join(s.Tape, " ")))
		}
	default:
		sb.WriteString("| # | Symbol | Rule | State |\n|---|---|---|---|\n")
		fmt.Fprintf(&sb, "| 0 | | | %s |\n", cell(res.Initial.State))
		for _, s := range res.Trace {
			fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", s.Index, cell(s.Symbol), rule(s.Rule), cell(s.State))
		}
	}
	return sb.String()
}

// HTML renders the markdown report as an HTML fragment.
func HTML(res *domain.Result) []byte {
	return blackfriday.Run([]byte(Markdown(res)))
}

func rule(i int) string {
	if i < 0 {
		return ""
	}
	return fmt.Sprint(i + 1)
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
