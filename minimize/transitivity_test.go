package minimize

import (
	"testing"

	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
	"github.com/stretchr/testify/require"
)

func mkJob(d int64) problem.Job[timeval.Int64] {
	return problem.Job[timeval.Int64]{
		Arrival:  timeval.NewInterval(timeval.Int64(0), timeval.Int64(0)),
		Cost:     timeval.NewInterval(timeval.Int64(1), timeval.Int64(1)),
		Deadline: timeval.Int64(d),
	}
}

func mkPC(from, to problem.JobIndex) problem.PrecedenceConstraint[timeval.Int64] {
	return problem.PrecedenceConstraint[timeval.Int64]{From: from, To: to, SignalAt: problem.SignalAtStart}
}

// 2->3 is redundant when 2->1->3 already holds.
func TestTransitivityMinimizerRemovesImpliedConstraint(t *testing.T) {
	jobs := []problem.Job[timeval.Int64]{mkJob(100), mkJob(100), mkJob(100), mkJob(100)}
	p, err := problem.New(jobs, 4)
	require.NoError(t, err)

	require.NoError(t, p.AppendPrecedence(mkPC(2, 1)))
	require.NoError(t, p.AppendPrecedence(mkPC(1, 3)))
	require.NoError(t, p.AppendPrecedence(mkPC(2, 3)))

	m := NewTransitivityMinimizer[timeval.Int64](0)
	removed := m.Minimize(p)

	require.Equal(t, 1, removed)
	require.Len(t, p.Precedence, 2)
	require.True(t, p.HasPrecedence(2, 1))
	require.True(t, p.HasPrecedence(1, 3))
	require.False(t, p.HasPrecedence(2, 3))
}

func TestTransitivityMinimizerKeepsIndependentConstraints(t *testing.T) {
	jobs := []problem.Job[timeval.Int64]{mkJob(100), mkJob(100), mkJob(100)}
	p, err := problem.New(jobs, 3)
	require.NoError(t, err)

	require.NoError(t, p.AppendPrecedence(mkPC(0, 1)))
	require.NoError(t, p.AppendPrecedence(mkPC(1, 2)))

	m := NewTransitivityMinimizer[timeval.Int64](0)
	removed := m.Minimize(p)

	require.Equal(t, 0, removed)
	require.Len(t, p.Precedence, 2)
}

func TestTransitivityMinimizerIgnoresOriginals(t *testing.T) {
	jobs := []problem.Job[timeval.Int64]{mkJob(100), mkJob(100), mkJob(100)}
	p, err := problem.New(jobs, 3)
	require.NoError(t, err)

	require.NoError(t, p.AppendPrecedence(mkPC(0, 1))) // original
	require.NoError(t, p.AppendPrecedence(mkPC(0, 2))) // appended; 0->1->2 runs through the original 0->1, so it does not count
	require.NoError(t, p.AppendPrecedence(mkPC(1, 2)))

	m := NewTransitivityMinimizer[timeval.Int64](1)
	removed := m.Minimize(p)

	require.Equal(t, 0, removed)
	require.True(t, p.HasPrecedence(0, 1))
	require.True(t, p.HasPrecedence(1, 2))
	require.True(t, p.HasPrecedence(0, 2))
}
