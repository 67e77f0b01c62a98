package minimize

import (
	"testing"

	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
	"github.com/stretchr/testify/require"
)

func TestTailMinimizerDropsTrailingWindow(t *testing.T) {
	oracle := func(p *problem.Problem[timeval.Int64]) (bool, error) {
		return p.HasPrecedence(1, 2), nil
	}

	jobs := []problem.Job[timeval.Int64]{mkJob(100), mkJob(100), mkJob(100), mkJob(100)}
	p, err := problem.New(jobs, 4)
	require.NoError(t, err)
	require.NoError(t, p.AppendPrecedence(mkPC(1, 2)))
	require.NoError(t, p.AppendPrecedence(mkPC(2, 3)))
	require.NoError(t, p.AppendPrecedence(mkPC(0, 3)))

	m := NewTailMinimizer[timeval.Int64](oracle)
	removed, err := m.Minimize(p, 0)
	require.NoError(t, err)

	require.Equal(t, 2, removed)
	require.Len(t, p.Precedence, 1)
	require.True(t, p.HasPrecedence(1, 2))
}

func TestTailMinimizerKeepsPrefixWhenSuffixNeeded(t *testing.T) {
	oracle := func(p *problem.Problem[timeval.Int64]) (bool, error) {
		return p.HasPrecedence(0, 3), nil
	}

	jobs := []problem.Job[timeval.Int64]{mkJob(100), mkJob(100), mkJob(100), mkJob(100)}
	p, err := problem.New(jobs, 4)
	require.NoError(t, err)
	require.NoError(t, p.AppendPrecedence(mkPC(1, 2)))
	require.NoError(t, p.AppendPrecedence(mkPC(2, 3)))
	require.NoError(t, p.AppendPrecedence(mkPC(0, 3)))

	m := NewTailMinimizer[timeval.Int64](oracle)
	removed, err := m.Minimize(p, 0)
	require.NoError(t, err)

	require.Equal(t, 0, removed)
	require.Len(t, p.Precedence, 3)
}
