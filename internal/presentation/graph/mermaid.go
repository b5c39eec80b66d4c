package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	Visited []string
	// Current holds the state (or, for nfa runs, the states) the run ended in.
	Current []string
}

// OverlayFromResult builds an overlay from a finished run.
func OverlayFromResult(res *domain.Result) *GraphOverlay {
	last := res.Last()
	current := last.States
	if last.State != "" {
		current = []string{last.State}
	}
	return &GraphOverlay{Visited: res.Visited(), Current: current}
}

// GenerateMermaid produces a Mermaid flowchart of a transition table.
// It applies semantic styling:
// - Start: ((Circle))
// - Final: (((Double circle)))
// - Default: (Rounded)
// Rules sharing source and target are merged into one labelled edge; epsilon
// rules are drawn dotted. Overlay styles (Visited/Current) are applied if provided.
func GenerateMermaid(t *domain.Table, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, s := range t.States() {
		safeID := sanitizeMermaidID(s.ID)

		opener, closer := "(", ")"
		switch s.Role {
		case domain.RoleStart:
			opener, closer = "((", "))"
		case domain.RoleFinal:
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escape(s.ID), closer))
	}

	for _, e := range edges(t) {
		from, to := sanitizeMermaidID(e.from), sanitizeMermaidID(e.to)
		label := escape(strings.Join(e.labels, ", "))
		if e.epsilon {
			sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", from, label, to))
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", from, label, to))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.Visited {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" && t.HasState(id) {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		for _, id := range overlay.Current {
			if t.HasState(id) {
				sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(id)))
			}
		}
	}

	return sb.String()
}

type edge struct {
	from, to string
	epsilon  bool
	labels   []string
}

// edges merges rules by (from, to, epsilon) in first-occurrence order.
func edges(t *domain.Table) []*edge {
	var out []*edge
	index := make(map[[3]string]*edge)
	eps := t.Epsilon()

	for _, r := range t.Rules() {
		var from, to, label string
		epsilon := false

		switch t.Kind() {
		case domain.KindPushdown:
			pr := r.Pushdown()
			from, to = pr.From, pr.To
			epsilon = pr.Symbol == eps
			label = fmt.Sprintf("%s; %s/%s", symbol(pr.Symbol, eps), pr.Pop, pr.Push)
		case domain.KindTuring:
			tr := r.Turing()
			from, to = tr.From, tr.To
			label = fmt.Sprintf("%s/%s,%s", tr.Read, tr.Write, tr.Move)
		default:
			fr := r.Finite()
			from, to = fr.From, fr.To
			epsilon = eps != "" && fr.Symbol == eps
			label = symbol(fr.Symbol, eps)
		}

		key := [3]string{from, to, fmt.Sprint(epsilon)}
		e, ok := index[key]
		if !ok {
			e = &edge{from: from, to: to, epsilon: epsilon}
			index[key] = e
			out = append(out, e)
		}
		e.labels = append(e.labels, label)
	}
	return out
}

func symbol(s, eps string) string {
	if eps != "" && s == eps {
		return "ε"
	}
	return s
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	// Mermaid reserves "end" as a keyword.
	if strings.EqualFold(s, "end") {
		s = "state_" + s
	}
	return s
}
