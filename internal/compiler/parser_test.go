package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/domain"
)

const dfaText = `# parity of a's
[states]
q0 S
q1 F

[sigma]
a b a

[rules]
q0 a q1
q1 a q0
`

func TestParseText(t *testing.T) {
	desc, err := ParseText([]byte(dfaText))
	require.NoError(t, err)

	assert.Equal(t, []domain.State{{ID: "q0", Role: domain.RoleStart}, {ID: "q1", Role: domain.RoleFinal}}, desc.States)
	assert.Equal(t, []string{"a", "b"}, desc.Sigma, "sigma tokens are de-duplicated in order")
	assert.Equal(t, []domain.Rule{{"q0", "a", "q1"}, {"q1", "a", "q0"}}, desc.Rules)
	assert.Equal(t, domain.Kind(""), desc.Kind)
}

func TestParseText_Sections(t *testing.T) {
	t.Run("missing section stays nil", func(t *testing.T) {
		desc, err := ParseText([]byte("[states]\nq0 S\n[sigma]\na\n"))
		require.NoError(t, err)
		assert.Nil(t, desc.Rules)
	})

	t.Run("empty section is present", func(t *testing.T) {
		desc, err := ParseText([]byte("[states]\nq0 S\n[sigma]\na\n[rules]\n"))
		require.NoError(t, err)
		assert.NotNil(t, desc.Rules)
		assert.Empty(t, desc.Rules)
	})

	t.Run("unknown sections and preamble are ignored", func(t *testing.T) {
		desc, err := ParseText([]byte("stray line\n[notes]\nanything goes\n[kind]\npushdown\n[states]\nq0\n"))
		require.NoError(t, err)
		assert.Equal(t, domain.KindPushdown, desc.Kind)
		assert.Equal(t, []domain.State{{ID: "q0"}}, desc.States)
	})

	t.Run("bad kind", func(t *testing.T) {
		_, err := ParseText([]byte("[kind]\nregex\n"))
		assert.ErrorIs(t, err, domain.ErrUnknownKind)
	})

	t.Run("bad state line", func(t *testing.T) {
		_, err := ParseText([]byte("[states]\nq0 S extra\n"))
		assert.ErrorIs(t, err, ErrSyntax)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestParser_YAML(t *testing.T) {
	src := `
name: flipper
kind: tm
states:
  - q0 S
  - [qf, F]
  - id: q2
sigma: [0, 1]
rules:
  - [q0, 0, q0, 1, R]
  - q0 _ qf _ L
`
	desc, err := NewParser().Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "flipper", desc.Name)
	assert.Equal(t, domain.KindTuring, desc.Kind)
	assert.Equal(t, []domain.State{
		{ID: "q0", Role: domain.RoleStart},
		{ID: "qf", Role: domain.RoleFinal},
		{ID: "q2"},
	}, desc.States)
	assert.Equal(t, []string{"0", "1"}, desc.Sigma)
	assert.Equal(t, []domain.Rule{{"q0", "0", "q0", "1", "R"}, {"q0", "_", "qf", "_", "L"}}, desc.Rules)
}

func TestParser_JSON(t *testing.T) {
	src := `{"states": [{"id": "s0", "role": "S"}], "sigma": "a b", "rules": []}`
	desc, err := NewParser().Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, desc.Sigma)
	assert.NotNil(t, desc.Rules)
	assert.Empty(t, desc.Rules)
}

func TestParser_StructuredMissingSection(t *testing.T) {
	desc, err := NewParser().ParseFormat([]byte("states: [q0 S]\nsigma: [a]\n"), FormatYAML)
	require.NoError(t, err)
	assert.Nil(t, desc.Rules)

	desc, err = NewParser().ParseFormat([]byte("states: [q0 S]\nsigma: [a]\nrules:\n"), FormatYAML)
	require.NoError(t, err)
	assert.NotNil(t, desc.Rules, "a null section is still present")
}

func TestParser_SyntaxErrors(t *testing.T) {
	_, err := NewParser().ParseFormat([]byte("{not json"), FormatJSON)
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = NewParser().ParseFormat([]byte("states: [q0 S extra]\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParseFile(t *testing.T) {
	desc, err := NewParser().ParseFile("machines/balanced.pda", []byte("[states]\nq0 S\n"))
	require.NoError(t, err)
	assert.Equal(t, "balanced", desc.Name)
	assert.Equal(t, domain.KindPushdown, desc.Kind)
}

func TestDetect(t *testing.T) {
	assert.Equal(t, FormatText, Detect([]byte("# c\n\n[states]\n")))
	assert.Equal(t, FormatJSON, Detect([]byte("  {\"states\": []}")))
	assert.Equal(t, FormatYAML, Detect([]byte("---\nstates: []\n")))
}

func TestEncode_RoundTrip(t *testing.T) {
	desc := &domain.Description{
		Name:   "balanced",
		Kind:   domain.KindPushdown,
		States: []domain.State{{ID: "q0", Role: domain.RoleStart}, {ID: "q1", Role: domain.RoleFinal}, {ID: "q2"}},
		Sigma:  []string{"a", "b", "x"},
		Rules:  []domain.Rule{{"q0", "a", "e", "x", "q0"}, {"q0", "b", "x", "e", "q1"}},
	}

	for _, format := range []Format{FormatText, FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(desc, format)
			require.NoError(t, err)

			back, err := NewParser().ParseFormat(data, format)
			require.NoError(t, err)
			assert.Equal(t, desc, back)
		})
	}
}
