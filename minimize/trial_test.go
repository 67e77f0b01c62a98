package minimize

import (
	"math/rand"
	"testing"

	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
	"github.com/stretchr/testify/require"
)

// Given 3 appended constraints of which exactly one (1->2) is crucial,
// the trial minimizer must converge to keeping only that one,
// independent of worker count.
func TestTrialMinimizerFindsCrucialConstraint(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 8} {
		oracle := func(p *problem.Problem[timeval.Int64]) (bool, error) {
			return p.HasPrecedence(1, 2), nil
		}

		jobs := []problem.Job[timeval.Int64]{mkJob(100), mkJob(100), mkJob(100), mkJob(100)}
		p, err := problem.New(jobs, 4)
		require.NoError(t, err)
		require.NoError(t, p.AppendPrecedence(mkPC(0, 1)))
		require.NoError(t, p.AppendPrecedence(mkPC(1, 2)))
		require.NoError(t, p.AppendPrecedence(mkPC(2, 3)))

		m := NewTrialMinimizer[timeval.Int64](oracle, workers, 20)
		removed, err := m.Minimize(p, 0, rand.New(rand.NewSource(7)))
		require.NoError(t, err)

		require.Equal(t, 2, removed, "workers=%d", workers)
		require.True(t, p.HasPrecedence(1, 2), "workers=%d", workers)
		require.False(t, p.HasPrecedence(0, 1), "workers=%d", workers)
		require.False(t, p.HasPrecedence(2, 3), "workers=%d", workers)
	}
}

func TestTrialMinimizerNeverDropsOriginals(t *testing.T) {
	oracle := func(p *problem.Problem[timeval.Int64]) (bool, error) {
		return true, nil
	}

	jobs := []problem.Job[timeval.Int64]{mkJob(100), mkJob(100)}
	p, err := problem.New(jobs, 2)
	require.NoError(t, err)
	require.NoError(t, p.AppendPrecedence(mkPC(0, 1))) // original

	m := NewTrialMinimizer[timeval.Int64](oracle, 2, 5)
	removed, err := m.Minimize(p, 1, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Equal(t, 0, removed)
	require.True(t, p.HasPrecedence(0, 1))
}
