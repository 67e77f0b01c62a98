package ordergen

import (
	"math/rand"

	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// SearchForSafeJobOrdering first tries a plain least-slack-first ordering
// (skip chance 0); if that dead-ends, it retries with randomized skipping
// up to maxAttempts times, returning ErrExhaustedSkipChance if none of
// them find a complete safe ordering.
func SearchForSafeJobOrdering[T timeval.Time[T]](
	p *problem.Problem[T], sb *bounds.SimpleBounds[T], skipChance, maxAttempts int, rng *rand.Rand,
) ([]problem.JobIndex, error) {
	greedy, err := NewGenerator(p, sb, 0, rng)
	if err != nil {
		return nil, err
	}
	result := make([]problem.JobIndex, 0, len(p.Jobs))
	for !greedy.HasFinished() {
		job, err := greedy.ChooseNextJob()
		if err != nil && !greedy.HasFailed() {
			return nil, err
		}
		result = append(result, job)
	}
	if !greedy.HasFailed() {
		return result, nil
	}

	highScore := 0
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result = result[:0]
		gen, err := NewGenerator(p, sb, skipChance, rng)
		if err != nil {
			return nil, err
		}
		for !gen.HasFinished() {
			job, err := gen.ChooseNextJob()
			if err != nil && !gen.HasFailed() {
				return nil, err
			}
			result = append(result, job)
		}
		if !gen.HasFailed() {
			return result, nil
		}
		if len(result) > highScore {
			highScore = len(result)
		}
	}

	return nil, ErrExhaustedSkipChance
}

// EnforceSafeJobOrdering appends a zero-suspension, Start-signalled
// precedence constraint between every consecutive pair in ordering,
// turning the discovered safe ordering into a binding dispatch
// restriction.
func EnforceSafeJobOrdering[T timeval.Time[T]](p *problem.Problem[T], ordering []problem.JobIndex) error {
	for i := 1; i < len(ordering); i++ {
		if err := p.AppendPrecedence(problem.PrecedenceConstraint[T]{
			From:     ordering[i-1],
			To:       ordering[i],
			SignalAt: problem.SignalAtStart,
		}); err != nil {
			return err
		}
	}
	return nil
}
