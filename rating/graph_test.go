package rating

import (
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

func TestSortRoundTripRestoresParentOrder(t *testing.T) {
	g := New()
	a := g.AddNode()
	b := g.AddNode()
	c := g.AddNode()
	g.AddEdge(a, b, 0)
	g.AddEdge(a, c, 1)

	before := append([]RatingEdge{}, g.Edges()...)
	g.SortByChild()
	g.SortByParent()
	require.Equal(t, before, g.Edges())
}

func TestRatingOfFullyFeasibleProblemIsOne(t *testing.T) {
	jobs := []problem.Job[timeval.Int64]{mkJob(0, 0, 1, 1, 100), mkJob(0, 0, 1, 1, 100)}
	p, err := problem.New(jobs, 2)
	require.NoError(t, err)
	sb, err := bounds.Compute(p)
	require.NoError(t, err)

	g, err := Build(func(a oracle.Agent) (bool, error) {
		return oracle.NewBruteForceExplorer(p, sb).Explore(a)
	})
	require.NoError(t, err)
	require.InDelta(t, 1.0, g.Node(0).Rating(), 0.01)
}

func TestRatingOfUnschedulableProblemIsZero(t *testing.T) {
	jobs := []problem.Job[timeval.Int64]{mkJob(0, 0, 5, 5, 6), mkJob(0, 0, 5, 5, 6)}
	p, err := problem.New(jobs, 1)
	require.NoError(t, err)
	sb, err := bounds.Compute(p)
	require.NoError(t, err)

	g, err := Build(func(a oracle.Agent) (bool, error) {
		return oracle.NewBruteForceExplorer(p, sb).Explore(a)
	})
	require.NoError(t, err)
	require.Equal(t, 0.0, g.Node(0).Rating())
}

func TestRatingHalfWhenOneOfTwoOrdersMisses(t *testing.T) {
	// With m=1, dispatching the long job first makes the short job miss
	// its deadline, while the reverse order completes safely: exactly one
	// of the root's two subtrees is completable, so the root rates 0.5.
	jobs := []problem.Job[timeval.Int64]{mkJob(0, 0, 10, 10, 15), mkJob(0, 0, 1, 1, 5)}
	p, err := problem.New(jobs, 1)
	require.NoError(t, err)
	sb, err := bounds.Compute(p)
	require.NoError(t, err)

	g, err := Build(func(a oracle.Agent) (bool, error) {
		return oracle.NewBruteForceExplorer(p, sb).Explore(a)
	})
	require.NoError(t, err)
	require.InDelta(t, 0.5, g.Node(0).Rating(), 0.01)
}

func TestComputeRatingsIsIdempotent(t *testing.T) {
	jobs := []problem.Job[timeval.Int64]{mkJob(0, 0, 10, 10, 15), mkJob(0, 0, 1, 1, 5)}
	p, err := problem.New(jobs, 1)
	require.NoError(t, err)
	sb, err := bounds.Compute(p)
	require.NoError(t, err)

	g, err := Build(func(a oracle.Agent) (bool, error) {
		return oracle.NewBruteForceExplorer(p, sb).Explore(a)
	})
	require.NoError(t, err)

	ratings := make([]float64, g.NumNodes())
	for i := range ratings {
		ratings[i] = g.Node(NodeIndex(i)).Rating()
	}
	g.ComputeRatings()
	for i := range ratings {
		require.Equal(t, ratings[i], g.Node(NodeIndex(i)).Rating())
	}
}
