package cutter

import (
	"github.com/knokko/sagrepair/fgraph"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/rating"
)

// Cut is a local branching restriction at one rating-graph node: the
// jobs taken from it that lead to a deadline-safe completion (SafeJobs),
// the jobs that are neither provably safe nor provably doomed
// (AllowedJobs), and the jobs whose subtree cannot complete safely
// (ForbiddenJobs). For every cut, SafeJobs ∪ AllowedJobs ∪ ForbiddenJobs
// equals the full set of jobs taken out of Node, and the three sets are
// pairwise disjoint.
type Cut struct {
	Node          rating.NodeIndex
	SafeJobs      []problem.JobIndex
	AllowedJobs   []problem.JobIndex
	ForbiddenJobs []problem.JobIndex
}

// CutGraph walks safePath and produces at most one Cut per visited node
// that actually has strictly-worse children to forbid, using g (which
// must be sorted by parent) and the feasibility overlay o to classify
// each node's outgoing edges. Safe jobs are the path's own taken job,
// the jobs leading to rating-1 children, and the jobs on any other
// overlay-feasible edge out of the node (a different safe path through
// it). Forbidden jobs are those whose child rates strictly below the
// best sibling and admits no safe completion. It returns ErrUnfixableCut
// the moment a node that needs a cut has no safe jobs at all.
func CutGraph(g *rating.Graph, o *fgraph.Overlay, safePath []fgraph.Hop) ([]Cut, error) {
	cuts := make([]Cut, 0, len(safePath))
	visited := map[rating.NodeIndex]bool{}

	for _, hop := range safePath {
		if visited[hop.Node] {
			continue
		}
		visited[hop.Node] = true
		lo, hi := g.ChildRange(hop.Node)
		edges := g.Edges()[lo:hi]

		var maxChildRating float64
		for _, e := range edges {
			if r := g.Node(e.Child()).Rating(); r > maxChildRating {
				maxChildRating = r
			}
		}

		safe := map[problem.JobIndex]bool{hop.Job: true}
		forbidden := map[problem.JobIndex]bool{}
		for i, e := range edges {
			childRating := g.Node(e.Child()).Rating()
			if childRating == 1 || o.IsEdgeFeasible(lo+i) {
				safe[e.Job()] = true
				continue
			}
			if childRating < maxChildRating && !o.IsNodeFeasible(e.Child()) {
				forbidden[e.Job()] = true
			}
		}
		for j := range safe {
			delete(forbidden, j)
		}
		if len(forbidden) == 0 {
			continue
		}

		if len(safe) == 0 {
			return cuts, ErrUnfixableCut
		}

		cut := Cut{Node: hop.Node}
		for j := range safe {
			cut.SafeJobs = append(cut.SafeJobs, j)
		}
		for _, e := range edges {
			if safe[e.Job()] || forbidden[e.Job()] {
				continue
			}
			cut.AllowedJobs = append(cut.AllowedJobs, e.Job())
		}
		for j := range forbidden {
			cut.ForbiddenJobs = append(cut.ForbiddenJobs, j)
		}

		cuts = append(cuts, cut)
	}

	return cuts, nil
}
