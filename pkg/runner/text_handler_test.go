package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/domain"
)

func accepted() *domain.Result {
	return &domain.Result{
		Kind:    domain.KindFinite,
		Input:   []string{"a"},
		Initial: domain.Step{Rule: -1, State: "q0"},
		Trace:   []domain.Step{{Index: 1, Symbol: "a", Rule: 0, State: "q1"}},
		Verdict: domain.Verdict{Accepted: true, Reason: domain.ReasonAccepted},
	}
}

func TestTextHandler_Output(t *testing.T) {
	var out bytes.Buffer
	handler := NewTextHandler(strings.NewReader(""), &out)

	require.NoError(t, handler.Output(context.Background(), accepted()))
	assert.Equal(t, "q0 -> q1\nDFA input accepted!\n", out.String())
}

func TestTextHandler_OutputColorized(t *testing.T) {
	var out bytes.Buffer
	handler := NewTextHandler(strings.NewReader(""), &out, WithTextHandlerColor(func(v domain.Verdict, s string) string {
		return "<" + s + ">"
	}))

	require.NoError(t, handler.Output(context.Background(), accepted()))
	assert.Contains(t, out.String(), "<DFA input accepted!>")
}

func TestTextHandler_OutputRendered(t *testing.T) {
	var out bytes.Buffer
	handler := NewTextHandler(strings.NewReader(""), &out, WithTextHandlerRenderer(func(s string) (string, error) {
		return "Rendered: " + s, nil
	}))

	require.NoError(t, handler.Output(context.Background(), accepted()))
	assert.True(t, strings.HasPrefix(out.String(), "Rendered: # Run"))
}

func TestTextHandler_Input(t *testing.T) {
	var out bytes.Buffer
	handler := NewTextHandler(strings.NewReader("my user input\n"), &out)

	val, err := handler.Input(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, "my user input", val)
	assert.Equal(t, "> ", out.String())

	_, err = handler.Input(context.Background(), "> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextHandler_InputWithoutNewline(t *testing.T) {
	handler := NewTextHandler(strings.NewReader("a b"), &bytes.Buffer{})

	val, err := handler.Input(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "a b", val)
}

func TestTextHandler_InputCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	var out bytes.Buffer
	handler := NewTextHandler(r, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Input(ctx, "> ")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
