package fgraph

import (
	"testing"

	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/oracle"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/rating"
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

func buildGraph(t *testing.T, p *problem.Problem[timeval.Int64], sb *bounds.SimpleBounds[timeval.Int64]) *rating.Graph {
	g, err := rating.Build(func(a oracle.Agent) (bool, error) {
		return oracle.NewBruteForceExplorer(p, sb).Explore(a)
	})
	require.NoError(t, err)
	return g
}

func TestForwardBackwardMarksFullyFeasibleRootFeasible(t *testing.T) {
	jobs := []problem.Job[timeval.Int64]{mkJob(0, 0, 1, 1, 100), mkJob(0, 0, 1, 1, 100)}
	p, err := problem.New(jobs, 2)
	require.NoError(t, err)
	sb, err := bounds.Compute(p)
	require.NoError(t, err)

	g := buildGraph(t, p, sb)
	o, err := Forward(g, p, sb, p.PredecessorMap())
	require.NoError(t, err)
	Backward(o, g)

	require.True(t, o.IsNodeFeasible(0))
}

func TestCreateSafePathReturnsCompleteHopSequence(t *testing.T) {
	jobs := []problem.Job[timeval.Int64]{mkJob(0, 0, 1, 1, 100), mkJob(0, 0, 1, 1, 100)}
	p, err := problem.New(jobs, 2)
	require.NoError(t, err)
	sb, err := bounds.Compute(p)
	require.NoError(t, err)

	g := buildGraph(t, p, sb)
	o, err := Forward(g, p, sb, p.PredecessorMap())
	require.NoError(t, err)
	Backward(o, g)

	path := CreateSafePath(o, g)
	require.Len(t, path, 2)
}
