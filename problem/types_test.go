package problem

import (
	"testing"

	"github.com/knokko/sagrepair/timeval"
	"github.com/stretchr/testify/require"
)

func job(r0, r1, c0, c1, d int64, id int) Job[timeval.Int64] {
	return Job[timeval.Int64]{
		Arrival:  timeval.NewInterval(timeval.Int64(r0), timeval.Int64(r1)),
		Cost:     timeval.NewInterval(timeval.Int64(c0), timeval.Int64(c1)),
		Deadline: timeval.Int64(d),
		ID:       JobID{TaskID: 1, JobID: id},
	}
}

func TestNewProblemAssignsIndices(t *testing.T) {
	jobs := []Job[timeval.Int64]{
		job(0, 0, 1, 1, 5, 0),
		job(0, 0, 2, 2, 8, 1),
	}
	p, err := New(jobs, 1)
	require.NoError(t, err)
	require.Equal(t, JobIndex(0), p.Jobs[0].Index)
	require.Equal(t, JobIndex(1), p.Jobs[1].Index)
	require.NotEqual(t, p.Fingerprint.String(), "")
}

func TestNewProblemRejectsCostExceedingDeadline(t *testing.T) {
	jobs := []Job[timeval.Int64]{job(0, 0, 10, 10, 5, 0)}
	_, err := New(jobs, 1)
	require.ErrorIs(t, err, ErrCostExceedsDeadline)
}

func TestNewProblemRejectsInfiniteDeadline(t *testing.T) {
	jobs := []Job[timeval.Int64]{job(0, 0, 1, 1, int64(timeval.InfiniteInt64), 0)}
	_, err := New(jobs, 1)
	require.ErrorIs(t, err, ErrInfiniteDeadline)
}

func TestNewProblemRejectsInvertedWindows(t *testing.T) {
	inverted := Job[timeval.Int64]{
		Arrival:  timeval.Interval[timeval.Int64]{From: 5, Until: 2},
		Cost:     timeval.NewInterval(timeval.Int64(1), timeval.Int64(1)),
		Deadline: 10,
	}
	_, err := New([]Job[timeval.Int64]{inverted}, 1)
	require.ErrorIs(t, err, ErrInvalidArrivalWindow)

	inverted = Job[timeval.Int64]{
		Arrival:  timeval.NewInterval(timeval.Int64(0), timeval.Int64(0)),
		Cost:     timeval.Interval[timeval.Int64]{From: 4, Until: 1},
		Deadline: 10,
	}
	_, err = New([]Job[timeval.Int64]{inverted}, 1)
	require.ErrorIs(t, err, ErrInvalidCostWindow)
}

func TestAppendPrecedenceRejectsInvertedSuspension(t *testing.T) {
	jobs := []Job[timeval.Int64]{job(0, 0, 1, 1, 5, 0), job(0, 0, 1, 1, 5, 1)}
	p, err := New(jobs, 1)
	require.NoError(t, err)

	pc := PrecedenceConstraint[timeval.Int64]{
		From: 0, To: 1,
		Suspension: timeval.Interval[timeval.Int64]{From: 3, Until: 1},
	}
	require.ErrorIs(t, p.AppendPrecedence(pc), ErrInvalidSuspensionWindow)
}

func TestNewProblemRejectsTooFewProcessors(t *testing.T) {
	_, err := New([]Job[timeval.Int64]{job(0, 0, 1, 1, 5, 0)}, 0)
	require.ErrorIs(t, err, ErrTooFewProcessors)
}

func TestAppendAndHasPrecedence(t *testing.T) {
	jobs := []Job[timeval.Int64]{job(0, 0, 1, 1, 5, 0), job(0, 0, 1, 1, 5, 1)}
	p, err := New(jobs, 1)
	require.NoError(t, err)

	pc := PrecedenceConstraint[timeval.Int64]{From: 0, To: 1, Suspension: timeval.NewInterval(timeval.Int64(0), timeval.Int64(0))}
	require.NoError(t, p.AppendPrecedence(pc))
	require.True(t, p.HasPrecedence(0, 1))
	require.False(t, p.HasPrecedence(1, 0))
}

func TestAppendPrecedenceRejectsOutOfRange(t *testing.T) {
	jobs := []Job[timeval.Int64]{job(0, 0, 1, 1, 5, 0)}
	p, err := New(jobs, 1)
	require.NoError(t, err)

	pc := PrecedenceConstraint[timeval.Int64]{From: 0, To: 7}
	require.ErrorIs(t, p.AppendPrecedence(pc), ErrJobIndexOutOfRange)
}

func TestPredecessorAndSuccessorMaps(t *testing.T) {
	jobs := []Job[timeval.Int64]{job(0, 0, 1, 1, 5, 0), job(0, 0, 1, 1, 5, 1), job(0, 0, 1, 1, 5, 2)}
	p, err := New(jobs, 1)
	require.NoError(t, err)
	require.NoError(t, p.AppendPrecedence(PrecedenceConstraint[timeval.Int64]{From: 0, To: 1}))
	require.NoError(t, p.AppendPrecedence(PrecedenceConstraint[timeval.Int64]{From: 0, To: 2}))

	pred := p.PredecessorMap()
	require.Len(t, pred[1], 1)
	require.Len(t, pred[2], 1)
	require.Empty(t, pred[0])

	succ := p.SuccessorMap()
	require.Len(t, succ[0], 2)
}
