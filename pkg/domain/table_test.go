package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_Deduplication(t *testing.T) {
	desc := &Description{
		Name: "dup",
		States: []State{
			{ID: "q0", Role: RoleStart},
			{ID: "q1", Role: RoleFinal},
			{ID: "q0", Role: RoleStart},
		},
		Sigma: []string{"b", "a", "b"},
		Rules: []Rule{
			{"q0", "a", "q1"},
			{"q1", "b", "q0"},
			{"q0", "a", "q1"},
		},
	}

	table := NewTable(desc)

	assert.Equal(t, KindFinite, table.Kind())
	assert.Equal(t, 2, table.NumStates())
	assert.Equal(t, []string{"b", "a"}, table.Alphabet(), "alphabet keeps insertion order")
	require.Equal(t, 2, table.NumRules())
	assert.Equal(t, Rule{"q0", "a", "q1"}, table.Rule(0))
	assert.Equal(t, Rule{"q1", "b", "q0"}, table.Rule(1))

	start, ok := table.Start()
	assert.True(t, ok)
	assert.Equal(t, "q0", start)
	assert.Equal(t, []string{"q1"}, table.Finals())
	assert.True(t, table.IsFinal("q1"))
	assert.False(t, table.IsFinal("q0"))
}

func TestNewTable_ReservedMarkersLeaveAlphabet(t *testing.T) {
	desc := &Description{
		Kind:   KindPushdown,
		States: []State{{ID: "q0", Role: RoleStart}},
		Sigma:  []string{"a", "e", "x"},
		Rules:  []Rule{},
	}

	table := NewTable(desc)
	assert.Equal(t, []string{"a", "x"}, table.Alphabet())
	assert.False(t, table.HasSymbol("e"))
	assert.Equal(t, "e", table.Epsilon())
	assert.Equal(t, "e", table.EmptyStack())
}

func TestNewTable_IsImmutable(t *testing.T) {
	desc := &Description{
		States: []State{{ID: "q0", Role: RoleStart}, {ID: "q1", Role: RoleFinal}},
		Sigma:  []string{"a"},
		Rules:  []Rule{{"q0", "a", "q1"}},
	}
	table := NewTable(desc)

	desc.Rules[0][2] = "q0"
	rules := table.Rules()
	rules[0][1] = "zzz"

	assert.Equal(t, Rule{"q0", "a", "q1"}, table.Rule(0))
}

func TestNewTable_SectionPresence(t *testing.T) {
	table := NewTable(&Description{States: []State{}, Rules: []Rule{}})
	states, sigma, rules := table.HasSections()
	assert.True(t, states)
	assert.False(t, sigma)
	assert.True(t, rules)

	rebuilt := table.Description()
	assert.NotNil(t, rebuilt.Rules)
	assert.Nil(t, rebuilt.Sigma)
}

func TestDescription_Clone(t *testing.T) {
	desc := &Description{
		Name:   "clone",
		Kind:   KindTuring,
		States: []State{{ID: "q0", Role: RoleStart}, {ID: "q1", Role: RoleFinal}},
		Sigma:  []string{"0", "1", "_"},
		Rules:  []Rule{{"q0", "0", "q1", "1", "R"}},
		Blank:  "_",
	}

	clone, err := desc.Clone()
	require.NoError(t, err)
	assert.Equal(t, desc, clone)

	clone.Rules[0][0] = "changed"
	clone.States[0].ID = "changed"
	assert.Equal(t, "q0", desc.Rules[0][0])
	assert.Equal(t, "q0", desc.States[0].ID)
}

func TestDescription_CloneKeepsEmptySections(t *testing.T) {
	desc := &Description{States: []State{{ID: "q0", Role: RoleStart}}, Sigma: []string{"a"}, Rules: []Rule{}}
	clone, err := desc.Clone()
	require.NoError(t, err)
	assert.NotNil(t, clone.Rules)
	assert.Empty(t, clone.Rules)
}

func TestRule_TypedViews(t *testing.T) {
	f := Rule{"q0", "a", "q1"}.Finite()
	assert.Equal(t, FiniteRule{From: "q0", Symbol: "a", To: "q1"}, f)

	p := Rule{"q0", "a", "e", "x", "q1"}.Pushdown()
	assert.Equal(t, PushdownRule{From: "q0", Symbol: "a", Pop: "e", Push: "x", To: "q1"}, p)

	tm := Rule{"q0", "0", "q1", "1", "L"}.Turing()
	assert.Equal(t, MoveLeft, tm.Move)
	assert.Equal(t, -1, tm.Move.Offset())
	assert.Equal(t, 1, MoveRight.Offset())

	short := Rule{"q0"}.Finite()
	assert.Equal(t, "", short.To)
}
