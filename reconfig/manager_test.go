package reconfig

import (
	"math/rand"
	"testing"

	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/oracle"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
	"github.com/stretchr/testify/require"
)

func mkJob(r0, r1, c0, c1, d int64) problem.Job[timeval.Int64] {
	return problem.Job[timeval.Int64]{
		Arrival:  timeval.NewInterval(timeval.Int64(r0), timeval.Int64(r1)),
		Cost:     timeval.NewInterval(timeval.Int64(c0), timeval.Int64(c1)),
		Deadline: timeval.Int64(d),
	}
}

func bruteForceFactory(p *problem.Problem[timeval.Int64], sb *bounds.SimpleBounds[timeval.Int64]) Explorer {
	return oracle.NewBruteForceExplorer(p, sb)
}

func TestRunLeavesAlreadySchedulableProblemUntouched(t *testing.T) {
	jobs := []problem.Job[timeval.Int64]{
		mkJob(0, 0, 1, 1, 100),
		mkJob(0, 0, 1, 1, 100),
	}
	p, err := problem.New(jobs, 2)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Rng = rand.New(rand.NewSource(1))

	result, err := Run[timeval.Int64](p, bruteForceFactory, opts)
	require.NoError(t, err)
	require.True(t, result.Schedulable)
	require.Equal(t, StateDone, result.FinalState)
	require.Equal(t, 0, result.AppendedConstraints)
	require.Equal(t, 1, result.Iterations)
}

// With m=1, dispatching the long job first makes the short job miss its
// deadline, so the manager must append a dispatch-ordering constraint
// forcing the short job before the long one.
func TestRunRepairsClassicTwoJobOrderingHazard(t *testing.T) {
	longJob := mkJob(0, 0, 10, 10, 15)
	shortJob := mkJob(0, 0, 1, 1, 5)
	jobs := []problem.Job[timeval.Int64]{longJob, shortJob}
	p, err := problem.New(jobs, 1)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Rng = rand.New(rand.NewSource(1))

	result, err := Run[timeval.Int64](p, bruteForceFactory, opts)
	require.NoError(t, err)
	require.True(t, result.Schedulable)
	require.True(t, p.HasPrecedence(1, 0))
}

func TestRunDryRatingNeverMutatesPrecedence(t *testing.T) {
	longJob := mkJob(0, 0, 10, 10, 15)
	shortJob := mkJob(0, 0, 1, 1, 5)
	jobs := []problem.Job[timeval.Int64]{longJob, shortJob}
	p, err := problem.New(jobs, 1)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Rng = rand.New(rand.NewSource(1))
	opts.DryRating = true

	result, err := Run[timeval.Int64](p, bruteForceFactory, opts)
	require.NoError(t, err)
	require.False(t, result.Schedulable)
	require.Equal(t, StateProbing, result.FinalState)
	require.Empty(t, p.Precedence)
}

func TestRunReportsBoundsInfeasibility(t *testing.T) {
	jobs := []problem.Job[timeval.Int64]{
		mkJob(0, 0, 5, 5, 20),
		mkJob(0, 0, 5, 5, 8),
	}
	p, err := problem.New(jobs, 1)
	require.NoError(t, err)
	require.NoError(t, p.AppendPrecedence(problem.PrecedenceConstraint[timeval.Int64]{
		From: 0, To: 1, SignalAt: problem.SignalAtCompletion,
	}))

	opts := DefaultOptions()
	_, err = Run[timeval.Int64](p, bruteForceFactory, opts)

	var boundsErr *bounds.InfeasibleBoundsError
	require.ErrorAs(t, err, &boundsErr)
	require.Equal(t, []int{0, 1}, boundsErr.Chain)
}
