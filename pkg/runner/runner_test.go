package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/runner"
)

func parity() *domain.Table {
	b := dsl.New("parity")
	b.Start("q0").Final("q1").Symbols("a")
	b.From("q0").On("a").To("q1")
	b.From("q1").On("a").To("q0")
	return b.Table()
}

func TestRunner_TextLoop(t *testing.T) {
	in := strings.NewReader("a\na a\nb\n")
	var out bytes.Buffer

	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(in, &out)))
	err := r.Run(context.Background(), runtime.NewEngine(), parity())
	require.NoError(t, err)

	got := out.String()
	assert.Equal(t, 4, strings.Count(got, "Enter input symbols (space-separated): "))
	assert.Contains(t, got, "q0 -> q1\nDFA input accepted!\n")
	assert.Contains(t, got, "q0 -> q1 -> q0\nThe automata is not in a final state.\n")
	assert.Contains(t, got, "Invalid input symbols:")
}

func TestRunner_ExitCommand(t *testing.T) {
	in := strings.NewReader("exit\na\n")
	var out bytes.Buffer

	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(in, &out)))
	require.NoError(t, r.Run(context.Background(), runtime.NewEngine(), parity()))
	assert.NotContains(t, out.String(), "accepted")
}

func TestRunner_Once(t *testing.T) {
	var out bytes.Buffer
	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader(""), &out)),
		runner.WithInput([]string{"a", "a", "a"}),
	)
	require.NoError(t, r.Run(context.Background(), runtime.NewEngine(), parity()))

	assert.Equal(t, "q0 -> q1 -> q0 -> q1\nDFA input accepted!\n", out.String())
}

func TestRunner_OnceRejectsBadInput(t *testing.T) {
	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader(""), &bytes.Buffer{})),
		runner.WithInput([]string{"z"}),
	)
	err := r.Run(context.Background(), runtime.NewEngine(), parity())
	assert.ErrorIs(t, err, domain.ErrSymbolNotInAlphabet)
}

func TestRunner_InvalidTableStops(t *testing.T) {
	table := domain.NewTable(&domain.Description{
		States: []domain.State{{ID: "q0", Role: domain.RoleStart}},
		Sigma:  []string{"a"},
		Rules:  []domain.Rule{{"q0", "a", "nowhere"}},
	})

	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("a\n"), &bytes.Buffer{})))
	err := r.Run(context.Background(), runtime.NewEngine(), table)
	assert.ErrorIs(t, err, domain.ErrUnknownReference)
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("a\n"), &bytes.Buffer{})))
	err := r.Run(ctx, runtime.NewEngine(), parity())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_JSONLoop(t *testing.T) {
	in := strings.NewReader("[\"a\"]\n\"a a\"\nz\n")
	var out bytes.Buffer

	r := runner.NewRunner(runner.WithInputHandler(runner.NewJSONHandler(in, &out)))
	require.NoError(t, r.Run(context.Background(), runtime.NewEngine(), parity()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	var first domain.Result
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.True(t, first.Verdict.Accepted)

	var second domain.Result
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, []string{"a", "a"}, second.Input)
	assert.False(t, second.Verdict.Accepted)

	var sys runner.SystemMessage
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &sys))
	assert.Equal(t, "system", sys.Type)
	assert.Contains(t, sys.Message, "Invalid input symbols")
}

func TestPrompt(t *testing.T) {
	assert.Equal(t, "Enter tape input (space-separated): ", runner.Prompt(domain.KindTuring))
	assert.Equal(t, "Enter input symbols (space-separated): ", runner.Prompt(domain.KindPushdown))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, runner.Tokenize("  a\tb   c \n"))
	assert.Equal(t, []string{}, runner.Tokenize("   "))
}
