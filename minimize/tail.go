package minimize

import (
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// TailMinimizer removes suffix windows of the appended constraint list,
// largest window first, shrinking geometrically on failure. Unlike
// TrialMinimizer's random batches, it preserves the ordering prefix of a
// chosen safe path: once a suffix constraint survives removal, every
// constraint before it in append order is left untouched for the rest
// of the run.
type TailMinimizer[T timeval.Time[T]] struct {
	oracle OracleFunc[T]
}

// NewTailMinimizer returns a minimizer driven by oracle.
func NewTailMinimizer[T timeval.Time[T]](oracle OracleFunc[T]) *TailMinimizer[T] {
	return &TailMinimizer[T]{oracle: oracle}
}

// Minimize drops as large a suffix of p.Precedence[originalCount:] as
// the oracle will tolerate, then retries with smaller windows against
// the surviving prefix, until no window of size >= 1 can be dropped. It
// returns the number of constraints removed.
func (m *TailMinimizer[T]) Minimize(p *problem.Problem[T], originalCount int) (int, error) {
	removed := 0
	window := len(p.Precedence) - originalCount
	for window > 0 {
		cut := len(p.Precedence) - window
		candidate := &problem.Problem[T]{
			Jobs:          p.Jobs,
			Precedence:    append([]problem.PrecedenceConstraint[T]{}, p.Precedence[:cut]...),
			Aborts:        p.Aborts,
			NumProcessors: p.NumProcessors,
		}
		ok, err := m.oracle(candidate)
		if err != nil {
			return removed, err
		}
		if ok {
			p.Precedence = candidate.Precedence
			removed += window
			window = len(p.Precedence) - originalCount
			continue
		}
		window /= 2
	}
	return removed, nil
}
