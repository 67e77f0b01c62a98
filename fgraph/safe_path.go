package fgraph

import (
	"math/rand"

	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/rating"
)

// Hop is one step of a safe path: the rating-graph node it departs from
// and the job taken to leave it.
type Hop struct {
	Node rating.NodeIndex
	Job  problem.JobIndex
}

// CreateSafePath walks the overlay depth-first from the root, always
// picking the first feasible outgoing edge, and returns the resulting
// deterministic witness path. g must be sorted by parent.
func CreateSafePath(o *Overlay, g *rating.Graph) []Hop {
	return walkSafePath(o, g, 0, func(candidates []int) int { return candidates[0] })
}

// TryFindRandomSafePath is like CreateSafePath but picks uniformly at
// random among the feasible outgoing edges at each step.
func TryFindRandomSafePath(o *Overlay, g *rating.Graph, rng *rand.Rand) []Hop {
	return walkSafePath(o, g, 0, func(candidates []int) int {
		return candidates[rng.Intn(len(candidates))]
	})
}

func walkSafePath(o *Overlay, g *rating.Graph, root rating.NodeIndex, pick func([]int) int) []Hop {
	var path []Hop
	current := root
	for {
		lo, hi := g.ChildRange(current)
		if lo == hi {
			return path
		}

		feasiblePositions := make([]int, 0, hi-lo)
		for pos := lo; pos < hi; pos++ {
			if o.feasibleEdge[pos] {
				feasiblePositions = append(feasiblePositions, pos)
			}
		}
		if len(feasiblePositions) == 0 {
			return path
		}

		chosen := g.Edges()[pick(feasiblePositions)]
		path = append(path, Hop{Node: current, Job: chosen.Job()})
		current = chosen.Child()
	}
}
