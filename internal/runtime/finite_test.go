package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
)

func parity() *domain.Table {
	return table(domain.KindFinite, states("q0:S", "q1:F"), []string{"a", "b"},
		domain.Rule{"q0", "a", "q1"},
		domain.Rule{"q1", "b", "q0"},
	)
}

func TestFinite_Accept(t *testing.T) {
	res, err := runtime.NewEngine().Run(context.Background(), parity(), []string{"a", "b", "a"})
	require.NoError(t, err)

	assert.Equal(t, []string{"q0", "q1", "q0", "q1"}, stateTrail(res))
	assert.True(t, res.Verdict.Accepted)
	assert.Equal(t, domain.ReasonAccepted, res.Verdict.Reason)
	assert.Equal(t, 3, res.Consumed)
	assert.Equal(t, []int{0, 1, 0}, []int{res.Trace[0].Rule, res.Trace[1].Rule, res.Trace[2].Rule})
	assert.Equal(t, "b", res.Trace[1].Symbol)
}

func TestFinite_NotFinal(t *testing.T) {
	res, err := runtime.NewEngine().Run(context.Background(), parity(), []string{"a", "b"})
	require.NoError(t, err)

	assert.False(t, res.Verdict.Accepted)
	assert.Equal(t, domain.ReasonNotFinal, res.Verdict.Reason)
}

func TestFinite_EmptyInput(t *testing.T) {
	res, err := runtime.NewEngine().Run(context.Background(), parity(), nil)
	require.NoError(t, err)

	assert.Empty(t, res.Trace)
	assert.Equal(t, "q0", res.Last().State)
	assert.Equal(t, domain.ReasonNotFinal, res.Verdict.Reason)
}

func TestFinite_Stall(t *testing.T) {
	t.Run("stuck outside final set", func(t *testing.T) {
		res, err := runtime.NewEngine().Run(context.Background(), parity(), []string{"b", "a"})
		require.NoError(t, err)

		assert.Empty(t, res.Trace)
		assert.Equal(t, 0, res.Consumed)
		assert.False(t, res.Verdict.Accepted)
		assert.Equal(t, domain.ReasonStalled, res.Verdict.Reason)
	})

	t.Run("stuck in a final state", func(t *testing.T) {
		res, err := runtime.NewEngine().Run(context.Background(), parity(), []string{"a", "a", "b"})
		require.NoError(t, err)

		assert.Len(t, res.Trace, 1)
		assert.Equal(t, 1, res.Consumed)
		assert.True(t, res.Verdict.Accepted, "acceptance is judged on the stalled state")
		assert.Contains(t, res.Verdict.Detail, "remaining input ignored")
	})
}

func TestFinite_FirstMatchWins(t *testing.T) {
	tbl := table(domain.KindFinite, states("q0:S", "q1:F", "q2"), []string{"a"},
		domain.Rule{"q0", "a", "q1"},
		domain.Rule{"q0", "a", "q2"},
	)
	res, err := runtime.NewEngine().Run(context.Background(), tbl, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, "q1", res.Last().State)
}

func TestFinite_StepLimit(t *testing.T) {
	tbl := table(domain.KindFinite, states("q0:S", "q1:F"), []string{"a"},
		domain.Rule{"q0", "a", "q0"},
	)
	res, err := runtime.NewEngine(runtime.WithMaxSteps(2)).Run(context.Background(), tbl, []string{"a", "a", "a"})
	require.NoError(t, err)

	assert.Equal(t, domain.ReasonStepLimit, res.Verdict.Reason)
	assert.Equal(t, 2, res.Steps)
	assert.Equal(t, 2, res.Consumed)
}
