package reconfig

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/cutter"
	"github.com/knokko/sagrepair/feastest"
	"github.com/knokko/sagrepair/fgraph"
	"github.com/knokko/sagrepair/minimize"
	"github.com/knokko/sagrepair/oracle"
	"github.com/knokko/sagrepair/ordergen"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/rating"
	"github.com/knokko/sagrepair/timeval"
)

const safeOrderingAttempts = 200

// Run drives the full reconfiguration pipeline over p,
// mutating it in place by appending precedence constraints until the
// oracle (built per-round by newExplorer) reports it schedulable, or a
// fatal condition terminates the pipeline early. On success, the
// appended constraints are pruned before Run returns: always by
// TransitivityMinimizer, then by TailMinimizer when the run enforced a
// safe ordering (so the ordering prefix survives), and by TrialMinimizer
// otherwise.
func Run[T timeval.Time[T]](p *problem.Problem[T], newExplorer ExplorerFactory[T], opts Options) (*Result[T], error) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 1
	}
	if opts.Rng == nil {
		opts.Rng = defaultRng()
	}
	maxCuts := opts.MaxCutsPerIter
	if maxCuts <= 0 {
		maxCuts = 1
	}

	originalCount := len(p.Precedence)
	start := time.Now()

	sb, err := bounds.Compute(p)
	if err != nil {
		return nil, err
	}
	if sb.DefinitelyInfeasible {
		infeasibleJob := -1
		if len(sb.ProblematicChain) > 0 {
			infeasibleJob = sb.ProblematicChain[len(sb.ProblematicChain)-1]
		}
		return &Result[T]{Bounds: sb}, &bounds.InfeasibleBoundsError{Job: infeasibleJob, Chain: sb.ProblematicChain}
	}
	if err := runNecessaryTests(p, sb); err != nil {
		return &Result[T]{Bounds: sb}, err
	}

	result := &Result[T]{Bounds: sb, FinalState: StateProbing}

	for {
		result.Iterations++
		opts.report(fmt.Sprintf("iteration %d: building rating graph", result.Iterations))

		rg, err := rating.Build(func(agent oracle.Agent) (bool, error) {
			return newExplorer(p, sb).Explore(agent)
		})
		if err != nil {
			return result, err
		}

		if rg.Node(0).Rating() == 1.0 {
			result.FinalState = StateDone
			result.Schedulable = true
			break
		}
		if opts.DryRating {
			result.FinalState = StateProbing
			break
		}

		predecessors := p.PredecessorMap()
		fg, err := fgraph.Forward(rg, p, sb, predecessors)
		if err != nil {
			return result, err
		}
		fgraph.Backward(fg, rg)

		if !fg.IsNodeFeasible(0) {
			if err := fallbackToSafeOrdering(p, sb, opts); err != nil {
				return result, err
			}
			result.FinalState = StateExhausted
			break
		}

		result.FinalState = StateRefining
		safePath := fgraph.CreateSafePath(fg, rg)

		cuts, err := cutter.CutGraph(rg, fg, safePath)
		if errors.Is(err, cutter.ErrUnfixableCut) {
			opts.report("cuts cannot fix this branch, falling back to safe-ordering search")
			if err := fallbackToSafeOrdering(p, sb, opts); err != nil {
				return result, err
			}
			result.FinalState = StateExhausted
			break
		}
		if err != nil {
			return result, err
		}

		precedenceBefore := len(p.Precedence)
		if opts.EnforceSafePath {
			err = cutter.EnforceCutsWithPath(p, sb, cuts, maxCuts, safePath)
		} else {
			err = cutter.EnforceCuts(p, sb, cuts, maxCuts)
		}
		if err != nil {
			return result, err
		}
		madeProgress := len(p.Precedence) > precedenceBefore

		newBounds, err := bounds.Compute(p)
		if err != nil || newBounds.DefinitelyInfeasible {
			// The enforced cuts over-constrained the problem (cycle or
			// infeasible bounds): roll them back and retry with a smaller
			// budget. The pre-enforcement bounds are still valid.
			opts.report("enforced cuts over-constrained the problem, rolling back")
			p.Precedence = p.Precedence[:precedenceBefore]
			if maxCuts == 1 {
				if err := fallbackToSafeOrdering(p, sb, opts); err != nil {
					return result, err
				}
				result.FinalState = StateExhausted
				break
			}
			maxCuts /= 2
			continue
		}
		sb = newBounds
		result.Bounds = sb

		schedulable, err := newExplorer(p, sb).Explore(oracle.NoopAgent{})
		if err != nil {
			return result, err
		}
		if schedulable {
			result.FinalState = StateDone
			result.Schedulable = true
			break
		}

		if opts.Timeout > 0 && time.Since(start) > opts.Timeout {
			opts.report("timeout exceeded, falling back to safe-path enforcement")
			order := make([]problem.JobIndex, len(safePath))
			for i, hop := range safePath {
				order[i] = hop.Job
			}
			if err := ordergen.EnforceSafeJobOrdering(p, order); err != nil {
				return result, err
			}
			result.FinalState = StateExhausted
			break
		}

		if !madeProgress {
			// The cuts no longer add anything new: another round would
			// rebuild the same graph and derive the same cuts, so escalate
			// to the from-scratch search instead of spinning.
			opts.report("cut enforcement added no new constraints, falling back to safe-ordering search")
			if err := fallbackToSafeOrdering(p, sb, opts); err != nil {
				return result, err
			}
			result.FinalState = StateExhausted
			break
		}
		if maxCuts < len(p.Jobs) {
			maxCuts *= 2
		}
	}

	result.AppendedConstraints = len(p.Precedence) - originalCount

	if result.FinalState != StateProbing {
		if err := minimizeConstraints(p, originalCount, newExplorer, opts, result); err != nil {
			return result, err
		}

		sb, err = bounds.Compute(p)
		if err != nil {
			return result, err
		}
		result.Bounds = sb

		schedulable, err := newExplorer(p, sb).Explore(oracle.NoopAgent{})
		if err != nil {
			return result, err
		}
		if !schedulable {
			return result, ErrSchedulabilityInvariantViolated
		}
		result.Schedulable = true
	}

	return result, nil
}

func fallbackToSafeOrdering[T timeval.Time[T]](p *problem.Problem[T], sb *bounds.SimpleBounds[T], opts Options) error {
	order, err := ordergen.SearchForSafeJobOrdering(p, sb, opts.SkipChance, safeOrderingAttempts, opts.Rng)
	if err != nil {
		return err
	}
	return ordergen.EnforceSafeJobOrdering(p, order)
}

func minimizeConstraints[T timeval.Time[T]](
	p *problem.Problem[T], originalCount int, newExplorer ExplorerFactory[T], opts Options, result *Result[T],
) error {
	transitivity := minimize.NewTransitivityMinimizer[T](originalCount)
	removed := transitivity.Minimize(p)
	opts.report(fmt.Sprintf("transitivity minimizer removed %d constraints", removed))

	oracleFunc := func(candidate *problem.Problem[T]) (bool, error) {
		candidateBounds, err := bounds.Compute(candidate)
		if err != nil {
			return false, err
		}
		if candidateBounds.DefinitelyInfeasible {
			return false, nil
		}
		return newExplorer(candidate, candidateBounds).Explore(oracle.NoopAgent{})
	}

	// A run that enforced a safe ordering (explicitly, or through the
	// from-scratch fallback) appended chain constraints whose value lies
	// in their relative order. The tail minimizer trims the suffix while
	// leaving the surviving prefix's order intact; the trial minimizer's
	// random batches would shuffle holes into the middle of the chain.
	usedSafePath := opts.EnforceSafePath || result.FinalState == StateExhausted
	if usedSafePath {
		tail := minimize.NewTailMinimizer[T](oracleFunc)
		tailRemoved, err := tail.Minimize(p, originalCount)
		if err != nil {
			return err
		}
		opts.report(fmt.Sprintf("tail minimizer removed %d constraints", tailRemoved))
		removed += tailRemoved
	} else {
		trial := minimize.NewTrialMinimizer[T](oracleFunc, opts.NumWorkers, 20)
		trialRemoved, err := trial.Minimize(p, originalCount, opts.Rng)
		if err != nil {
			return err
		}
		opts.report(fmt.Sprintf("trial minimizer removed %d constraints", trialRemoved))
		removed += trialRemoved
	}

	result.ConstraintsRemoved = removed
	result.AppendedConstraints = len(p.Precedence) - originalCount
	return nil
}

// runNecessaryTests runs the load test and interval test, returning the
// first witnessed infeasibility as a *NecessaryTestFailureError.
func runNecessaryTests[T timeval.Time[T]](p *problem.Problem[T], sb *bounds.SimpleBounds[T]) error {
	lt := feastest.NewLoadTest(p, sb)
	for lt.Next() {
		if lt.IsCertainlyInfeasible() {
			return &NecessaryTestFailureError{
				Test:          "load",
				CriticalStart: lt.CurrentTime(),
				CriticalEnd:   lt.CurrentTime(),
			}
		}
	}

	it := feastest.NewIntervalTest(p, sb)
	for it.Next() {
		if it.IsCertainlyInfeasible() {
			start, end := it.CriticalWindow()
			return &NecessaryTestFailureError{Test: "interval", CriticalStart: start, CriticalEnd: end}
		}
	}

	return nil
}

func defaultRng() *rand.Rand {
	return rand.New(rand.NewSource(1))
}
