package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/automata/internal/presentation/report"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
)

func simulate(t *testing.T, b *dsl.Builder, input ...string) *domain.Result {
	t.Helper()
	res, err := runtime.NewEngine().Run(context.Background(), b.Table(), input)
	require.NoError(t, err)
	return res
}

func parity() *dsl.Builder {
	b := dsl.New("parity")
	b.Start("q0").Final("q1").Symbols("a")
	b.From("q0").On("a").To("q1")
	b.From("q1").On("a").To("q0")
	return b
}

func TestText_Finite(t *testing.T) {
	res := simulate(t, parity(), "a", "a", "a")
	assert.Equal(t, "q0 -> q1 -> q0 -> q1\nDFA input accepted!\n", report.Text(res))

	res = simulate(t, parity(), "a", "a")
	assert.Equal(t, "q0 -> q1 -> q0\nThe automata is not in a final state.\n", report.Text(res))
}

func TestText_Nondeterministic(t *testing.T) {
	b := dsl.New("ends-with-b")
	b.Start("s0").Final("s1").Symbols("a", "b")
	b.From("s0").On("a").To("s0")
	b.From("s0").On("b").To("s0")
	b.From("s0").On("b").To("s1")

	out := report.Text(simulate(t, b, "a", "b"))
	assert.Equal(t, "Start states: [s0]\nAfter input 'a': [s0]\nAfter input 'b': [s0 s1]\nInput accepted!\n", out)
}

func TestText_Pushdown(t *testing.T) {
	b := dsl.New("balanced").Kind(domain.KindPushdown)
	b.Start("q0").Final("q1").Symbols("a", "b", "x")
	b.From("q0").On("a").Push("x").To("q0")
	b.From("q0").On("b").Pop("x").To("q1")
	b.From("q1").On("b").Pop("x").To("q1")

	out := report.Text(simulate(t, b, "a", "a", "b"))
	assert.Contains(t, out, "q0 -> [x x]\n")
	assert.Contains(t, out, "In final state, but stack not empty.\n")
	assert.True(t, strings.HasSuffix(out, "Stack: [x]\n"))

	out = report.Text(simulate(t, b, "a", "b"))
	assert.Contains(t, out, "Input accepted!\n")
	assert.True(t, strings.HasSuffix(out, "Stack: []\n"))
}

func TestText_Turing(t *testing.T) {
	b := dsl.New("flip")
	b.Start("q0").Final("qf").Symbols("0", "1")
	b.From("q0").Read("0").Write("1").Right().To("q0")
	b.From("q0").Read("1").Write("0").Right().To("q0")
	b.From("q0").Read("_").Left().To("qf")

	out := report.Text(simulate(t, b, "0", "1"))
	assert.Contains(t, out, "Reached the final state. Halting.\n")
	assert.True(t, strings.HasSuffix(out, "Final tape:\n1 0\n"))
}

func TestMessage_StepLimit(t *testing.T) {
	res := &domain.Result{Kind: domain.KindTuring, Steps: 5, Verdict: domain.Verdict{Reason: domain.ReasonStepLimit}}
	assert.Equal(t, "Step limit exceeded after 5 steps.", report.Message(res))
}

func TestParseFormat(t *testing.T) {
	tests := map[string]report.Format{
		"":         report.FormatText,
		"md":       report.FormatMarkdown,
		"HTML":     report.FormatHTML,
		"json":     report.FormatJSON,
		"yml":      report.FormatYAML,
		"cbor":     report.FormatCBOR,
		"markdown": report.FormatMarkdown,
	}
	for in, want := range tests {
		got, err := report.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := report.ParseFormat("pdf")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestWrite_StructuredFormats(t *testing.T) {
	res := simulate(t, parity(), "a")

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatJSON, res))
	var fromJSON domain.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.True(t, fromJSON.Verdict.Accepted)
	assert.Equal(t, "parity", fromJSON.Machine)

	buf.Reset()
	require.NoError(t, report.Write(&buf, report.FormatYAML, res))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, "dfa", fromYAML["kind"])

	buf.Reset()
	require.NoError(t, report.Write(&buf, report.FormatCBOR, res))
	var fromCBOR domain.Result
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &fromCBOR))
	assert.Equal(t, res.Trace, fromCBOR.Trace)
}

func TestMarshalCBOR_Deterministic(t *testing.T) {
	res := simulate(t, parity(), "a", "a")
	first, err := report.MarshalCBOR(res)
	require.NoError(t, err)
	second, err := report.MarshalCBOR(simulate(t, parity(), "a", "a"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarkdownAndHTML(t *testing.T) {
	res := simulate(t, parity(), "a")

	md := report.Markdown(res)
	assert.Contains(t, md, "# parity")
	assert.Contains(t, md, "**accepted**")
	assert.Contains(t, md, "| 1 | a | 1 | q1 |")

	html := string(report.HTML(res))
	assert.Contains(t, html, "<h1>parity</h1>")
	assert.Contains(t, html, "<strong>accepted</strong>")
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := report.Write(&bytes.Buffer{}, report.Format("pdf"), &domain.Result{})
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}
