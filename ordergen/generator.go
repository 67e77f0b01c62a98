package ordergen

import (
	"math/rand"
	"sort"

	"github.com/knokko/sagrepair/activenode"
	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// Generator dispatches jobs one at a time using a least-slack-first
// heuristic, tie-broken by randomized skipping and a work-conserving
// quickest-finish override, until every job has been dispatched or a
// dead end is reached.
type Generator[T timeval.Time[T]] struct {
	problem      *problem.Problem[T]
	bounds       *bounds.SimpleBounds[T]
	predecessors [][]problem.PrecedenceConstraint[T]
	successors   [][]problem.PrecedenceConstraint[T]
	skipChance   int
	rng          *rand.Rand

	node       *activenode.ActiveNode[T]
	dispatched *problem.IndexSet

	slackJobIndex  int
	jobsBySlack    []problem.JobIndex
	finishJobIndex int
	jobsByFinish   []problem.JobIndex

	remainingPredecessors []int
	failed                bool
}

// NewGenerator builds a Generator for p. skipChance must be in [0, 100):
// at each choice point, a dispatchable job in slack order is skipped with
// that percentage probability before the first pick is committed to. rng
// drives the randomized skipping; pass a fixed-seed rand.Rand for
// reproducible runs.
func NewGenerator[T timeval.Time[T]](
	p *problem.Problem[T], sb *bounds.SimpleBounds[T], skipChance int, rng *rand.Rand,
) (*Generator[T], error) {
	if skipChance < 0 || skipChance >= 100 {
		return nil, ErrInvalidSkipChance
	}

	node, err := activenode.New[T](len(p.Jobs), p.NumProcessors)
	if err != nil {
		return nil, err
	}

	n := len(p.Jobs)
	g := &Generator[T]{
		problem:               p,
		bounds:                sb,
		predecessors:          p.PredecessorMap(),
		successors:            p.SuccessorMap(),
		skipChance:            skipChance,
		rng:                   rng,
		node:                  node,
		dispatched:            problem.NewIndexSet(n),
		jobsBySlack:           make([]problem.JobIndex, n),
		jobsByFinish:          make([]problem.JobIndex, n),
		remainingPredecessors: make([]int, n),
	}
	for i := 0; i < n; i++ {
		g.jobsBySlack[i] = problem.JobIndex(i)
		g.jobsByFinish[i] = problem.JobIndex(i)
	}
	sort.Slice(g.jobsBySlack, func(a, b int) bool {
		return timeval.Less(sb.LatestSafeStart[g.jobsBySlack[a]], sb.LatestSafeStart[g.jobsBySlack[b]])
	})
	sort.Slice(g.jobsByFinish, func(a, b int) bool {
		fa := sb.EarliestPessimisticStart[g.jobsByFinish[a]].Add(p.Jobs[g.jobsByFinish[a]].MaximalExecTime())
		fb := sb.EarliestPessimisticStart[g.jobsByFinish[b]].Add(p.Jobs[g.jobsByFinish[b]].MaximalExecTime())
		return timeval.Less(fa, fb)
	})
	for i := range p.Jobs {
		g.remainingPredecessors[i] = len(g.predecessors[i])
	}

	return g, nil
}

// HasFailed reports whether ChooseNextJob ever hit a dead end.
func (g *Generator[T]) HasFailed() bool {
	return g.failed
}

// HasFinished reports whether every job has been dispatched, or the
// generator has already failed.
func (g *Generator[T]) HasFinished() bool {
	return g.failed || g.slackJobIndex >= len(g.jobsBySlack)
}

func (g *Generator[T]) updateSlackJobIndex() {
	for g.slackJobIndex < len(g.jobsBySlack) && g.dispatched.Contains(int(g.jobsBySlack[g.slackJobIndex])) {
		g.slackJobIndex++
	}
}

func (g *Generator[T]) canDispatch(idx problem.JobIndex) bool {
	if g.remainingPredecessors[idx] > 0 {
		return false
	}
	if g.dispatched.Contains(int(idx)) {
		return false
	}

	job := g.problem.Jobs[idx]
	if idx == g.jobsBySlack[g.slackJobIndex] {
		nextSlackIndex := g.slackJobIndex + 1
		for nextSlackIndex < len(g.problem.Jobs) && g.dispatched.Contains(int(g.jobsBySlack[nextSlackIndex])) {
			nextSlackIndex++
		}
		if nextSlackIndex < len(g.problem.Jobs) {
			predicted, err := g.node.PredictNextStartTime(job, g.predecessors)
			if err != nil || timeval.Less(g.bounds.LatestSafeStart[g.jobsBySlack[nextSlackIndex]], predicted) {
				return false
			}
		}
	} else {
		predicted, err := g.node.PredictStartTime(job, g.predecessors)
		if err != nil || timeval.Less(g.bounds.LatestSafeStart[g.jobsBySlack[g.slackJobIndex]], predicted) {
			return false
		}
	}

	return true
}

// ChooseNextJob dispatches and returns the next job in the ordering. If no
// safe choice exists it sets HasFailed and returns ErrSafeSearchFailure.
func (g *Generator[T]) ChooseNextJob() (problem.JobIndex, error) {
	g.updateSlackJobIndex()

	slackLeader := g.jobsBySlack[g.slackJobIndex]
	if timeval.Less(g.bounds.LatestSafeStart[slackLeader], g.node.NextCoreAvailable()) {
		g.failed = true
		return slackLeader, ErrSafeSearchFailure
	}

	validSlackIndex := g.slackJobIndex
	for !g.canDispatch(g.jobsBySlack[validSlackIndex]) {
		validSlackIndex++
		if validSlackIndex == len(g.problem.Jobs) {
			g.failed = true
			return slackLeader, ErrSafeSearchFailure
		}
	}

	candidateSlackIndex := validSlackIndex
	for candidateSlackIndex < len(g.problem.Jobs) {
		if g.canDispatch(g.jobsBySlack[candidateSlackIndex]) && g.rng.Intn(100) >= g.skipChance {
			break
		}
		candidateSlackIndex++
	}
	if candidateSlackIndex == len(g.problem.Jobs) {
		candidateSlackIndex = validSlackIndex
	}

	nextJob := g.jobsBySlack[candidateSlackIndex]
	nextStart, err := g.node.PredictStartTime(g.problem.Jobs[nextJob], g.predecessors)
	if err != nil {
		return nextJob, err
	}

	for g.finishJobIndex < len(g.problem.Jobs) && g.dispatched.Contains(int(g.jobsByFinish[g.finishJobIndex])) {
		g.finishJobIndex++
	}
	candidateFinishIndex := g.finishJobIndex
	for candidateFinishIndex < len(g.problem.Jobs) && !g.canDispatch(g.jobsByFinish[candidateFinishIndex]) {
		candidateFinishIndex++
	}
	if candidateFinishIndex < len(g.problem.Jobs) {
		quickJob := g.jobsByFinish[candidateFinishIndex]
		quickStart, err := g.node.PredictStartTime(g.problem.Jobs[quickJob], g.predecessors)
		if err == nil && timeval.LessEqual(quickStart.Add(g.problem.Jobs[quickJob].MaximalExecTime()), nextStart) {
			nextJob = quickJob
		}
	}

	g.dispatched.Add(int(nextJob))
	if err := g.node.Schedule(g.problem.Jobs[nextJob], g.bounds, g.predecessors); err != nil {
		return nextJob, err
	}

	for _, succ := range g.successors[nextJob] {
		g.remainingPredecessors[succ.To]--
	}

	g.updateSlackJobIndex()
	return nextJob, nil
}
