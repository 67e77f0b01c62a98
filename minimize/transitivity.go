package minimize

import (
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// TransitivityMinimizer drops appended precedence constraints that are
// implied by other appended constraints: a constraint from->to is
// redundant if to is already reachable from from through the rest of the
// appended set. It never touches the first originalCount constraints of
// p.Precedence, since those predate reconfiguration.
type TransitivityMinimizer[T timeval.Time[T]] struct {
	originalCount int
}

// NewTransitivityMinimizer returns a minimizer that treats the first
// originalCount entries of a Problem's Precedence slice as immutable
// originals, and every later entry as a candidate for removal.
func NewTransitivityMinimizer[T timeval.Time[T]](originalCount int) *TransitivityMinimizer[T] {
	return &TransitivityMinimizer[T]{originalCount: originalCount}
}

// Minimize rewrites p.Precedence in place, dropping every appended
// constraint whose target is reachable from its source via the rest of
// the appended constraints. It returns the number of constraints removed.
func (m *TransitivityMinimizer[T]) Minimize(p *problem.Problem[T]) int {
	appended := p.Precedence[m.originalCount:]
	keep := make([]bool, len(appended))
	for i := range keep {
		keep[i] = true
	}

	removed := 0
	for i, pc := range appended {
		if !keep[i] {
			continue
		}
		if m.reachableWithout(appended, keep, i, pc.From, pc.To) {
			keep[i] = false
			removed++
		}
	}

	kept := make([]problem.PrecedenceConstraint[T], 0, len(appended)-removed)
	for i, pc := range appended {
		if keep[i] {
			kept = append(kept, pc)
		}
	}
	p.Precedence = append(p.Precedence[:m.originalCount], kept...)
	return removed
}

// reachableWithout reports whether to is reachable from from by BFS over
// every appended constraint currently marked kept, except index skip
// (the constraint being tested for redundancy).
func (m *TransitivityMinimizer[T]) reachableWithout(
	appended []problem.PrecedenceConstraint[T], keep []bool, skip int, from, to problem.JobIndex,
) bool {
	visited := map[problem.JobIndex]bool{from: true}
	queue := []problem.JobIndex{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for i, pc := range appended {
			if i == skip || !keep[i] || pc.From != cur {
				continue
			}
			if pc.To == to {
				return true
			}
			if !visited[pc.To] {
				visited[pc.To] = true
				queue = append(queue, pc.To)
			}
		}
	}
	return false
}
