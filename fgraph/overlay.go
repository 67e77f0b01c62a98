package fgraph

import (
	"sort"

	"github.com/knokko/sagrepair/activenode"
	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/rating"
	"github.com/knokko/sagrepair/timeval"
)

// Overlay marks, for a rating graph built over a given problem, which
// nodes and edges can still be part of a deadline-safe completion.
type Overlay struct {
	graph        *rating.Graph
	feasibleNode []bool
	feasibleEdge []bool
}

// IsNodeFeasible reports whether node has at least one path below it to a
// successful completion.
func (o *Overlay) IsNodeFeasible(node rating.NodeIndex) bool {
	return o.feasibleNode[node]
}

// IsEdgeFeasible reports whether the edge at position i in the graph's
// current (by-parent) edge order survived both passes. Only valid
// immediately after Forward/Backward; it is invalidated by any
// subsequent re-sort of the graph.
func (o *Overlay) IsEdgeFeasible(i int) bool {
	return o.feasibleEdge[i]
}

// Forward runs the forward pass: a breadth-first simulation over the
// rating graph, one ActiveNode per reached node, dropping any edge whose
// dispatch (or the merge it causes) misses a deadline. g must already be
// sorted by parent.
func Forward[T timeval.Time[T]](
	g *rating.Graph, p *problem.Problem[T], sb *bounds.SimpleBounds[T], predecessors [][]problem.PrecedenceConstraint[T],
) (*Overlay, error) {
	o := &Overlay{
		graph:        g,
		feasibleNode: make([]bool, g.NumNodes()),
		feasibleEdge: make([]bool, g.NumEdges()),
	}

	root, err := activenode.New[T](len(p.Jobs), p.NumProcessors)
	if err != nil {
		return nil, err
	}
	front := map[rating.NodeIndex]*activenode.ActiveNode[T]{0: root}

	for len(front) > 0 {
		next := map[rating.NodeIndex]*activenode.ActiveNode[T]{}

		layer := make([]rating.NodeIndex, 0, len(front))
		for parent := range front {
			layer = append(layer, parent)
		}
		sort.Slice(layer, func(i, j int) bool { return layer[i] < layer[j] })

		for _, parent := range layer {
			parentNode := front[parent]
			lo, hi := g.ChildRange(parent)
			edges := g.Edges()[lo:hi]
			kept := false
			for i, e := range edges {
				pos := lo + i

				candidate := parentNode.Copy()
				job := p.Jobs[e.Job()]
				if err := candidate.Schedule(job, sb, predecessors); err != nil {
					return nil, err
				}
				if candidate.HasMissedDeadline() {
					continue
				}

				if existing, ok := next[e.Child()]; ok {
					if err := existing.Merge(candidate); err != nil {
						return nil, err
					}
					if existing.HasMissedDeadline() {
						continue
					}
				} else {
					next[e.Child()] = candidate
				}

				o.feasibleEdge[pos] = true
				kept = true
			}
			if kept && g.Node(parent).Rating() != 0 {
				o.feasibleNode[parent] = true
			}
		}

		for idx, node := range next {
			if len(g.ChildrenOf(idx)) == 0 && node.NumDispatchedJobs() == len(p.Jobs) && g.Node(idx).Rating() > 0 {
				o.feasibleNode[idx] = true
			}
		}

		front = next
	}

	return o, nil
}

// Backward runs the backward pruning pass: visit nodes in descending
// index order (children are always created after their parents, so every
// child is finalized first), drop any outgoing edge whose child is
// infeasible, and drop any node left with outgoing edges but no feasible
// one. Drops cascade upward within the single sweep.
func Backward(o *Overlay, g *rating.Graph) {
	edges := g.Edges()
	for n := g.NumNodes() - 1; n >= 0; n-- {
		lo, hi := g.ChildRange(rating.NodeIndex(n))
		if lo == hi {
			continue
		}
		anyFeasible := false
		for pos := lo; pos < hi; pos++ {
			if !o.feasibleEdge[pos] {
				continue
			}
			if !o.feasibleNode[edges[pos].Child()] {
				o.feasibleEdge[pos] = false
				continue
			}
			anyFeasible = true
		}
		if !anyFeasible {
			o.feasibleNode[n] = false
		}
	}
}
