package cutter

import (
	"sort"

	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/fgraph"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// EnforceCuts materializes up to maxCuts of cuts as new precedence
// constraints: for each cut, the safe job with the smallest earliest
// pessimistic start time becomes the anchor, and every forbidden job
// gets a zero-suspension, Start-signalled constraint from the anchor to
// it (skipping any that is already present). Re-validating acyclicity
// and infeasibility is the caller's responsibility via bounds.Compute.
func EnforceCuts[T timeval.Time[T]](p *problem.Problem[T], sb *bounds.SimpleBounds[T], cuts []Cut, maxCuts int) error {
	n := len(cuts)
	if maxCuts >= 0 && maxCuts < n {
		n = maxCuts
	}

	for _, cut := range cuts[:n] {
		if len(cut.SafeJobs) == 0 {
			continue
		}
		safe := append([]problem.JobIndex{}, cut.SafeJobs...)
		sort.Slice(safe, func(i, j int) bool {
			return timeval.Less(sb.EarliestPessimisticStart[safe[i]], sb.EarliestPessimisticStart[safe[j]])
		})
		anchor := safe[0]

		for _, f := range cut.ForbiddenJobs {
			if p.HasPrecedence(anchor, f) {
				continue
			}
			if err := p.AppendPrecedence(problem.PrecedenceConstraint[T]{
				From:     anchor,
				To:       f,
				SignalAt: problem.SignalAtStart,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// EnforceCutsWithPath enforces cuts as EnforceCuts does, and additionally
// appends the pairwise dispatch-ordering constraints implied by
// safePath, for the cases where the cuts alone do not yet make the
// problem schedulable.
func EnforceCutsWithPath[T timeval.Time[T]](
	p *problem.Problem[T], sb *bounds.SimpleBounds[T], cuts []Cut, maxCuts int, safePath []fgraph.Hop,
) error {
	if err := EnforceCuts(p, sb, cuts, maxCuts); err != nil {
		return err
	}
	for i := 1; i < len(safePath); i++ {
		from, to := safePath[i-1].Job, safePath[i].Job
		if p.HasPrecedence(from, to) {
			continue
		}
		if err := p.AppendPrecedence(problem.PrecedenceConstraint[T]{
			From:     from,
			To:       to,
			SignalAt: problem.SignalAtStart,
		}); err != nil {
			return err
		}
	}
	return nil
}
