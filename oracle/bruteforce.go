package oracle

import (
	"github.com/knokko/sagrepair/activenode"
	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// frontierState is one state on the BruteForceExplorer's work queue: the
// dispatch prefix it represents, plus the bookkeeping needed to find its
// own successors.
type frontierState[T timeval.Time[T]] struct {
	id                    StateID
	node                  *activenode.ActiveNode[T]
	dispatched            *problem.IndexSet
	remainingPredecessors []int
}

// BruteForceExplorer is a reference, exhaustive implementation of the
// external schedulability oracle this core depends on: it enumerates
// every dispatch order consistent with the precedence constraints,
// merging states that have dispatched the same job set. It exists to
// exercise and test the rating graph, feasibility overlay, cutter and
// reconfiguration manager without a real state-space-exploration tool on
// hand; production deployments plug in a real explorer behind the same
// Agent protocol instead.
type BruteForceExplorer[T timeval.Time[T]] struct {
	problem      *problem.Problem[T]
	bounds       *bounds.SimpleBounds[T]
	predecessors [][]problem.PrecedenceConstraint[T]
	successors   [][]problem.PrecedenceConstraint[T]
}

// NewBruteForceExplorer builds an explorer for p using the bounds already
// computed for it.
func NewBruteForceExplorer[T timeval.Time[T]](p *problem.Problem[T], sb *bounds.SimpleBounds[T]) *BruteForceExplorer[T] {
	return &BruteForceExplorer[T]{
		problem:      p,
		bounds:       sb,
		predecessors: p.PredecessorMap(),
		successors:   p.SuccessorMap(),
	}
}

// dispatchKey returns a string uniquely identifying a dispatched job set,
// suitable as a map key.
func dispatchKey(set *problem.IndexSet) string {
	members := set.Members()
	buf := make([]byte, len(members)*8)
	for i, m := range members {
		v := uint64(m)
		for b := 0; b < 8; b++ {
			buf[i*8+b] = byte(v >> (8 * b))
		}
	}
	return string(buf)
}

// Explore drives agent through every reachable dispatch state and
// reports whether every completion it found avoided missing a deadline.
// A state whose dispatch leads to a missed deadline is still reported
// (OnDispatch, then OnMissedDeadline) so the agent can record it as a
// sink, but its subtree is not explored further. States that dispatched
// the same job set are merged: the breadth-first order guarantees the
// merge target is still on the queue, so its ActiveNode is folded with
// the new arrival's into the pessimistic join before it is expanded.
func (ex *BruteForceExplorer[T]) Explore(agent Agent) (allSafe bool, err error) {
	n := len(ex.problem.Jobs)
	allSafe = true

	rootNode, err := activenode.New[T](n, ex.problem.NumProcessors)
	if err != nil {
		return false, err
	}
	rootDispatched := problem.NewIndexSet(n)
	remaining := make([]int, n)
	for i := 0; i < n; i++ {
		remaining[i] = len(ex.predecessors[i])
	}

	var nextID StateID = 1
	rootID := StateID(0)
	agent.OnInitialState(rootID)

	pending := map[string]*frontierState[T]{}
	queue := []*frontierState[T]{{id: rootID, node: rootNode, dispatched: rootDispatched, remainingPredecessors: remaining}}
	pending[dispatchKey(rootDispatched)] = queue[0]

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		delete(pending, dispatchKey(cur.dispatched))

		candidates := make([]problem.JobIndex, 0)
		for i := 0; i < n; i++ {
			if cur.remainingPredecessors[i] == 0 && !cur.dispatched.Contains(i) {
				candidates = append(candidates, problem.JobIndex(i))
			}
		}

		if len(candidates) == 0 {
			agent.OnLeafState(cur.id)
			continue
		}

		for _, job := range candidates {
			childNode := cur.node.Copy()
			if err := childNode.Schedule(ex.problem.Jobs[job], ex.bounds, ex.predecessors); err != nil {
				return false, err
			}

			if childNode.HasMissedDeadline() {
				childID := nextID
				nextID++
				agent.OnDispatch(cur.id, job, childID)
				agent.OnMissedDeadline(childID, job)
				allSafe = false
				continue
			}

			childDispatched := cur.dispatched.Copy()
			childDispatched.Add(int(job))
			key := dispatchKey(childDispatched)

			if existing, ok := pending[key]; ok && agent.AllowMerge(cur.id, job, existing.id) {
				if err := existing.node.Merge(childNode); err != nil {
					return false, err
				}
				agent.OnMerge(cur.id, job, existing.id)
				continue
			}

			childID := nextID
			nextID++
			agent.OnDispatch(cur.id, job, childID)

			childRemaining := append([]int{}, cur.remainingPredecessors...)
			for _, succ := range ex.successors[job] {
				childRemaining[succ.To]--
			}
			child := &frontierState[T]{
				id:                    childID,
				node:                  childNode,
				dispatched:            childDispatched,
				remainingPredecessors: childRemaining,
			}
			if _, ok := pending[key]; !ok {
				pending[key] = child
			}
			queue = append(queue, child)
		}
	}

	return allSafe, nil
}

// IsSchedulable reports whether p is schedulable: whether every complete
// dispatch order the explorer finds avoids missing a deadline.
func IsSchedulable[T timeval.Time[T]](p *problem.Problem[T], sb *bounds.SimpleBounds[T]) (bool, error) {
	return NewBruteForceExplorer(p, sb).Explore(NoopAgent{})
}
