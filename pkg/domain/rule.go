package domain

import (
	"slices"
	"strings"
)

// Direction is the head movement of a Turing rule.
type Direction string

const (
	MoveLeft  Direction = "L"
	MoveRight Direction = "R"
)

// Offset is the head displacement for the direction.
func (d Direction) Offset() int {
	if d == MoveLeft {
		return -1
	}
	return 1
}

// Rule is the raw token tuple of one line of the [rules] section.
// Its shape depends on the machine kind; use the typed views once the
// table has been validated.
type Rule []string

// Equal reports full tuple equality.
func (r Rule) Equal(other Rule) bool {
	return slices.Equal(r, other)
}

// From returns the source state, which is the first field for every kind.
func (r Rule) From() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

func (r Rule) String() string {
	return strings.Join(r, " ")
}

func (r Rule) field(i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

// FiniteRule is (from, symbol, to). Symbol may be the epsilon token.
type FiniteRule struct {
	From   string
	Symbol string
	To     string
}

// PushdownRule is (from, symbol, pop, push, to).
type PushdownRule struct {
	From   string
	Symbol string
	Pop    string
	Push   string
	To     string
}

// TuringRule is (from, read, to, write, move).
type TuringRule struct {
	From  string
	Read  string
	To    string
	Write string
	Move  Direction
}

// Finite views r as a DFA/NFA rule.
func (r Rule) Finite() FiniteRule {
	return FiniteRule{From: r.field(0), Symbol: r.field(1), To: r.field(2)}
}

// Pushdown views r as a PDA rule.
func (r Rule) Pushdown() PushdownRule {
	return PushdownRule{From: r.field(0), Symbol: r.field(1), Pop: r.field(2), Push: r.field(3), To: r.field(4)}
}

// Turing views r as a Turing rule.
func (r Rule) Turing() TuringRule {
	return TuringRule{From: r.field(0), Read: r.field(1), To: r.field(2), Write: r.field(3), Move: Direction(r.field(4))}
}
