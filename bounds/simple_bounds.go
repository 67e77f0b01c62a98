package bounds

import (
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// SimpleBounds is the propagated-bound summary for one Problem snapshot:
// whether the jobs are definitely infeasible from bounds alone, per-job
// earliest/latest start times, per-job maximum outgoing suspension, and
// (when infeasible) the witnessing job-index chain. Compute reports a
// cyclic precedence graph as a *CycleError and returns no SimpleBounds,
// so HasPrecedenceCycle is false on every value Compute returns.
type SimpleBounds[T timeval.Time[T]] struct {
	HasPrecedenceCycle       bool
	DefinitelyInfeasible     bool
	EarliestPessimisticStart []T
	LatestSafeStart          []T
	MaximumSuspensions       []T
	ProblematicChain         []int
}

// Compute propagates simple bounds over p's precedence DAG. It returns a
// *CycleError (wrapping ErrPrecedenceCycle) if the precedence graph is
// cyclic. Definite infeasibility is never returned as an error: it is
// reported in the returned SimpleBounds (DefinitelyInfeasible +
// ProblematicChain), since an infeasible-by-bounds Problem is still a
// valid input the caller wants a full bounds report for.
func Compute[T timeval.Time[T]](p *problem.Problem[T]) (*SimpleBounds[T], error) {
	n := len(p.Jobs)
	successors := make([][]problem.JobIndex, n)
	for _, pc := range p.Precedence {
		successors[pc.From] = append(successors[pc.From], pc.To)
	}
	if cycle := findCycle(successors); cycle != nil {
		return nil, &CycleError{Chain: cycle}
	}

	predecessorConstraints := p.PredecessorMap()
	successorConstraints := p.SuccessorMap()

	earliest := computeEarliestPessimisticStart(p, predecessorConstraints)
	latest := computeLatestSafeStart(p, successorConstraints)
	maxSuspensions := computeMaximumSuspensions(p, successorConstraints)

	sb := &SimpleBounds[T]{
		EarliestPessimisticStart: earliest,
		LatestSafeStart:          latest,
		MaximumSuspensions:       maxSuspensions,
	}

	for i := 0; i < n; i++ {
		finish := earliest[i].Add(p.Jobs[i].MaximalExecTime())
		if timeval.Less(p.Jobs[i].Deadline, finish) {
			sb.DefinitelyInfeasible = true
			sb.ProblematicChain = criticalChain(p, earliest, predecessorConstraints, i)
			break
		}
	}

	return sb, nil
}

// computeEarliestPessimisticStart runs a Kahn-order topological traversal:
// e[i] starts at r_max(i) and is raised, for every predecessor edge j->i,
// to at least e[j] + s_max + (c_max(j) if signalled at completion).
func computeEarliestPessimisticStart[T timeval.Time[T]](
	p *problem.Problem[T], predecessors [][]problem.PrecedenceConstraint[T],
) []T {
	n := len(p.Jobs)
	earliest := make([]T, n)
	remainingPredecessors := make([]int, n)
	for i := 0; i < n; i++ {
		earliest[i] = p.Jobs[i].LatestArrival()
		remainingPredecessors[i] = len(predecessors[i])
	}

	successors := p.SuccessorMap()

	ready := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if remainingPredecessors[i] == 0 {
			ready = append(ready, i)
		}
	}

	for len(ready) > 0 {
		job := ready[len(ready)-1]
		ready = ready[:len(ready)-1]

		for _, pc := range successors[job] {
			bound := earliest[job].Add(pc.MaxSuspension())
			if pc.SignalAt == problem.SignalAtCompletion {
				bound = bound.Add(p.Jobs[job].MaximalExecTime())
			}
			succ := int(pc.To)
			earliest[succ] = timeval.Max(earliest[succ], bound)
			remainingPredecessors[succ]--
			if remainingPredecessors[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}

	return earliest
}

// computeLatestSafeStart runs the mirror-image backward propagation from
// l[i] = d[i] - c_max(i), clamping to zero (rather than going negative)
// when a constraint would otherwise push a bound below zero: the
// predecessor still gets a bound, but the chain is now known infeasible.
func computeLatestSafeStart[T timeval.Time[T]](
	p *problem.Problem[T], successors [][]problem.PrecedenceConstraint[T],
) []T {
	n := len(p.Jobs)
	latest := make([]T, n)
	remainingSuccessors := make([]int, n)
	for i := 0; i < n; i++ {
		latest[i] = p.Jobs[i].Deadline.Sub(p.Jobs[i].MaximalExecTime())
		remainingSuccessors[i] = len(successors[i])
	}

	predecessors := p.PredecessorMap()

	ready := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if remainingSuccessors[i] == 0 {
			ready = append(ready, i)
		}
	}

	var zero T
	for len(ready) > 0 {
		job := ready[len(ready)-1]
		ready = ready[:len(ready)-1]

		for _, pc := range predecessors[job] {
			gap := pc.MaxSuspension()
			if pc.SignalAt == problem.SignalAtCompletion {
				gap = gap.Add(p.Jobs[pc.From].MaximalExecTime())
			}
			pred := int(pc.From)
			if timeval.Less(latest[job], gap) {
				latest[pred] = zero
			} else {
				latest[pred] = timeval.Min(latest[pred], latest[job].Sub(gap))
			}
			remainingSuccessors[pred]--
			if remainingSuccessors[pred] == 0 {
				ready = append(ready, pred)
			}
		}
	}

	return latest
}

// computeMaximumSuspensions returns, for each job, the max s_max over its
// outgoing precedence edges (zero if it has no successors).
func computeMaximumSuspensions[T timeval.Time[T]](
	p *problem.Problem[T], successors [][]problem.PrecedenceConstraint[T],
) []T {
	out := make([]T, len(p.Jobs))
	for i, edges := range successors {
		var maxSus T
		for _, pc := range edges {
			maxSus = timeval.Max(maxSus, pc.MaxSuspension())
		}
		out[i] = maxSus
	}
	return out
}

// criticalChain walks backward from the infeasible job, greedily picking a
// predecessor whose bound attains the current earliest-start, until it
// reaches a job whose earliest start equals its own latest arrival (i.e.
// is not itself constrained by any predecessor).
func criticalChain[T timeval.Time[T]](
	p *problem.Problem[T], earliest []T, predecessors [][]problem.PrecedenceConstraint[T], job int,
) []int {
	chain := []int{job}
	current := job
	for {
		if earliest[current].Compare(p.Jobs[current].LatestArrival()) == 0 {
			break
		}

		advanced := false
		for _, pc := range predecessors[current] {
			other := int(pc.From)
			bound := earliest[other].Add(pc.MaxSuspension())
			if pc.SignalAt == problem.SignalAtCompletion {
				bound = bound.Add(p.Jobs[other].MaximalExecTime())
			}
			if bound.Compare(earliest[current]) == 0 {
				chain = append(chain, other)
				current = other
				advanced = true
				break
			}
		}
		if !advanced {
			break
		}
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
