package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
)

// flipper inverts every bit and halts on the first blank.
func flipper() *domain.Table {
	return table(domain.KindTuring, states("q0:S", "qf:F"), []string{"0", "1"},
		domain.Rule{"q0", "0", "q0", "1", "R"},
		domain.Rule{"q0", "1", "q0", "0", "R"},
		domain.Rule{"q0", "_", "qf", "_", "L"},
	)
}

func TestTuring_Halts(t *testing.T) {
	res, err := runtime.NewEngine().Run(context.Background(), flipper(), []string{"0", "1", "0"})
	require.NoError(t, err)

	assert.True(t, res.Verdict.Accepted)
	assert.Equal(t, domain.ReasonHalted, res.Verdict.Reason)
	assert.Equal(t, []string{"1", "0", "1"}, res.Tape)
	require.Len(t, res.Trace, 4)
	assert.Equal(t, 2, *res.Last().Head)
}

func TestTuring_NoApplicableTransition(t *testing.T) {
	tbl := table(domain.KindTuring, states("q0:S", "q1:F"), []string{"0", "1"},
		domain.Rule{"q0", "0", "q0", "1", "R"},
	)

	res, err := runtime.NewEngine().Run(context.Background(), tbl, []string{"0"})
	require.NoError(t, err)

	assert.False(t, res.Verdict.Accepted)
	assert.Equal(t, domain.ReasonNoTransition, res.Verdict.Reason)
	require.Len(t, res.Trace, 1)
	assert.Equal(t, "1", res.Trace[0].Tape[0])
	assert.Equal(t, 1, *res.Trace[0].Head)
	assert.Equal(t, []string{"1"}, res.Tape)
}

func TestTuring_ImmediateHalt(t *testing.T) {
	tbl := table(domain.KindTuring, states("q0:S", "q1:F"), []string{"0", "1"},
		domain.Rule{"q0", "0", "q1", "0", "R"},
	)

	res, err := runtime.NewEngine().Run(context.Background(), tbl, []string{"1", "1"})
	require.NoError(t, err)

	assert.Equal(t, domain.ReasonNoTransition, res.Verdict.Reason)
	assert.Empty(t, res.Trace)
	assert.Equal(t, []string{"1", "1"}, res.Tape, "tape unchanged")
	assert.Equal(t, 0, *res.Initial.Head)
}

func TestTuring_HeadOutOfBounds(t *testing.T) {
	t.Run("left edge", func(t *testing.T) {
		tbl := table(domain.KindTuring, states("q0:S", "q1:F"), []string{"0"},
			domain.Rule{"q0", "0", "q0", "0", "L"},
		)
		res, err := runtime.NewEngine().Run(context.Background(), tbl, []string{"0"})
		require.NoError(t, err)
		assert.Equal(t, domain.ReasonHeadOutOfBounds, res.Verdict.Reason)
		assert.Equal(t, -1, *res.Last().Head)
	})

	t.Run("right edge of the padding", func(t *testing.T) {
		tbl := table(domain.KindTuring, states("q0:S", "q1:F"), []string{"0"},
			domain.Rule{"q0", "_", "q0", "_", "R"},
		)
		res, err := runtime.NewEngine(runtime.WithTapePadding(2)).Run(context.Background(), tbl, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.ReasonHeadOutOfBounds, res.Verdict.Reason)
		assert.Len(t, res.Trace, 2)
		assert.Empty(t, res.Tape)
	})
}

func TestTuring_StepLimit(t *testing.T) {
	tbl := table(domain.KindTuring, states("q0:S", "q1:F"), []string{"0"},
		domain.Rule{"q0", "0", "q0", "0", "R"},
		domain.Rule{"q0", "_", "q0", "_", "L"},
	)

	res, err := runtime.NewEngine(runtime.WithMaxSteps(10)).Run(context.Background(), tbl, []string{"0"})
	require.NoError(t, err)

	assert.Equal(t, domain.ReasonStepLimit, res.Verdict.Reason)
	assert.Equal(t, 10, res.Steps)
	assert.Equal(t, []string{"0"}, res.Tape)
}

func TestTuring_BlankOnInput(t *testing.T) {
	res, err := runtime.NewEngine().Run(context.Background(), flipper(), []string{"_"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonHalted, res.Verdict.Reason)
}
