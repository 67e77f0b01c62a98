package feastest

import (
	"sort"

	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// runningLoadJob tracks a job that could still be executing, with an
// upper bound on how much of its execution time remains.
type runningLoadJob[T timeval.Time[T]] struct {
	index                problem.JobIndex
	maximumRemainingTime T
}

// LoadTest walks a sorted list of times of interest (each job's latest
// safe start and latest safe finish) and maintains a lower bound on the
// CPU-time that must already have been spent, and an upper bound on the
// CPU-time that could have been spent, declaring infeasibility the
// moment the lower bound exceeds the upper bound.
type LoadTest[T timeval.Time[T]] struct {
	problem *problem.Problem[T]
	sb      *bounds.SimpleBounds[T]

	byEarliestStart []problem.JobIndex
	byLatestStart   []problem.JobIndex
	timesOfInterest []T

	currentTime T
	timeIndex   int

	nextEarlyJobIndex int
	nextLateJobIndex  int

	infeasible bool

	certainlyFinishedLoad T
	minExecuted           T
	maxExecuted           T

	possiblyRunning  []runningLoadJob[T]
	certainlyStarted []runningLoadJob[T]
}

// NewLoadTest builds a LoadTest over p using the bounds already computed for it.
func NewLoadTest[T timeval.Time[T]](p *problem.Problem[T], sb *bounds.SimpleBounds[T]) *LoadTest[T] {
	n := len(p.Jobs)
	lt := &LoadTest[T]{
		problem:         p,
		sb:              sb,
		byEarliestStart: make([]problem.JobIndex, n),
		byLatestStart:   make([]problem.JobIndex, n),
		timesOfInterest: make([]T, 0, 2*n),
	}
	for i := range p.Jobs {
		lt.byEarliestStart[i] = problem.JobIndex(i)
		lt.byLatestStart[i] = problem.JobIndex(i)
	}
	sort.Slice(lt.byEarliestStart, func(a, b int) bool {
		return timeval.Less(sb.EarliestPessimisticStart[lt.byEarliestStart[a]], sb.EarliestPessimisticStart[lt.byEarliestStart[b]])
	})
	sort.Slice(lt.byLatestStart, func(a, b int) bool {
		return timeval.Less(sb.LatestSafeStart[lt.byLatestStart[a]], sb.LatestSafeStart[lt.byLatestStart[b]])
	})
	for i, job := range p.Jobs {
		start := sb.LatestSafeStart[i]
		lt.timesOfInterest = append(lt.timesOfInterest, start, start.Add(job.MaximalExecTime()))
	}
	sort.Slice(lt.timesOfInterest, func(a, b int) bool { return timeval.Less(lt.timesOfInterest[a], lt.timesOfInterest[b]) })
	return lt
}

// Next advances the simulation to the next time of interest, returning
// false once every time of interest has been consumed (or infeasibility
// was already found).
func (lt *LoadTest[T]) Next() bool {
	n := len(lt.problem.Jobs)
	for lt.timeIndex < len(lt.timesOfInterest) && lt.timesOfInterest[lt.timeIndex].Compare(lt.currentTime) == 0 {
		lt.timeIndex++
	}
	if lt.infeasible || lt.timeIndex >= len(lt.timesOfInterest) {
		return false
	}
	nextTime := lt.timesOfInterest[lt.timeIndex]
	spent := nextTime.Sub(lt.currentTime)

	// The arrival scan must cover the pre-filter running list: a job that
	// finishes exactly this step still pushes the window over which the
	// processors could have been busy back to its earliest start.
	earliestStepArrival := nextTime
	for _, rj := range lt.possiblyRunning {
		earliestStepArrival = timeval.Min(earliestStepArrival, lt.sb.EarliestPessimisticStart[rj.index])
	}

	var maxLoadThisStep T
	remaining := lt.possiblyRunning[:0]
	for _, rj := range lt.possiblyRunning {
		if timeval.Less(spent, rj.maximumRemainingTime) {
			maxLoadThisStep = maxLoadThisStep.Add(spent)
			remaining = append(remaining, runningLoadJob[T]{index: rj.index, maximumRemainingTime: rj.maximumRemainingTime.Sub(spent)})
		} else {
			lt.certainlyFinishedLoad = lt.certainlyFinishedLoad.Add(lt.problem.Jobs[rj.index].MaximalExecTime())
			maxLoadThisStep = maxLoadThisStep.Add(rj.maximumRemainingTime)
		}
	}
	lt.possiblyRunning = remaining

	for lt.nextEarlyJobIndex < n {
		idx := lt.byEarliestStart[lt.nextEarlyJobIndex]
		if timeval.Less(nextTime, lt.sb.EarliestPessimisticStart[idx]) {
			break
		}
		execTime := lt.problem.Jobs[idx].MaximalExecTime()
		latestFinish := lt.sb.LatestSafeStart[idx].Add(execTime)
		if timeval.Less(nextTime, latestFinish) {
			lt.possiblyRunning = append(lt.possiblyRunning, runningLoadJob[T]{index: idx, maximumRemainingTime: latestFinish.Sub(nextTime)})
			maxLoadThisStep = maxLoadThisStep.Add(timeval.Min(execTime, nextTime.Sub(lt.sb.EarliestPessimisticStart[idx])))
		} else {
			lt.certainlyFinishedLoad = lt.certainlyFinishedLoad.Add(execTime)
			maxLoadThisStep = maxLoadThisStep.Add(execTime)
		}
		lt.nextEarlyJobIndex++
	}

	keptStarted := lt.certainlyStarted[:0]
	for _, sj := range lt.certainlyStarted {
		if timeval.Less(spent, sj.maximumRemainingTime) {
			keptStarted = append(keptStarted, runningLoadJob[T]{index: sj.index, maximumRemainingTime: sj.maximumRemainingTime.Sub(spent)})
		}
	}
	lt.certainlyStarted = keptStarted

	for lt.nextLateJobIndex < n {
		idx := lt.byLatestStart[lt.nextLateJobIndex]
		if timeval.Less(nextTime, lt.sb.LatestSafeStart[idx]) {
			break
		}
		execTime := lt.problem.Jobs[idx].MaximalExecTime()
		latestFinish := lt.sb.LatestSafeStart[idx].Add(execTime)
		if timeval.Less(nextTime, latestFinish) {
			lt.certainlyStarted = append(lt.certainlyStarted, runningLoadJob[T]{index: idx, maximumRemainingTime: latestFinish.Sub(nextTime)})
		}
		lt.nextLateJobIndex++
	}

	sort.Slice(lt.certainlyStarted, func(a, b int) bool {
		return timeval.Less(lt.certainlyStarted[a].maximumRemainingTime, lt.certainlyStarted[b].maximumRemainingTime)
	})
	lt.minExecuted = lt.certainlyFinishedLoad
	startIndex := 0
	if lt.problem.NumProcessors < len(lt.certainlyStarted) {
		for ; startIndex < len(lt.certainlyStarted)-lt.problem.NumProcessors; startIndex++ {
			lt.minExecuted = lt.minExecuted.Add(lt.problem.Jobs[lt.certainlyStarted[startIndex].index].MaximalExecTime())
		}
	}
	for ; startIndex < len(lt.certainlyStarted); startIndex++ {
		sj := lt.certainlyStarted[startIndex]
		execTime := lt.problem.Jobs[sj.index].MaximalExecTime()
		lt.minExecuted = lt.minExecuted.Add(execTime.Sub(sj.maximumRemainingTime))
	}

	maxLoadBound2 := lt.certainlyFinishedLoad
	for _, rj := range lt.possiblyRunning {
		maxLoadBound2 = maxLoadBound2.Add(lt.problem.Jobs[rj.index].MaximalExecTime())
		earliestStepArrival = timeval.Min(earliestStepArrival, lt.sb.EarliestPessimisticStart[rj.index])
	}
	earliestStepArrival = timeval.Max(earliestStepArrival, lt.currentTime)

	var numProcessorsTime T
	for i := 0; i < lt.problem.NumProcessors; i++ {
		numProcessorsTime = numProcessorsTime.Add(nextTime.Sub(earliestStepArrival))
	}
	lt.maxExecuted = lt.maxExecuted.Add(timeval.Min(numProcessorsTime, maxLoadThisStep))
	lt.maxExecuted = timeval.Min(lt.maxExecuted, maxLoadBound2)

	if timeval.Less(lt.maxExecuted, lt.minExecuted) {
		lt.infeasible = true
	}
	lt.currentTime = nextTime
	return true
}

// IsCertainlyInfeasible reports whether Next ever observed minExecuted
// exceed maxExecuted.
func (lt *LoadTest[T]) IsCertainlyInfeasible() bool {
	return lt.infeasible
}

// CurrentTime returns the simulation time as of the most recent Next call.
func (lt *LoadTest[T]) CurrentTime() T {
	return lt.currentTime
}

// MinExecutedLoad returns the lower bound on CPU-time spent so far.
func (lt *LoadTest[T]) MinExecutedLoad() T {
	return lt.minExecuted
}

// MaxExecutedLoad returns the upper bound on CPU-time spent so far.
func (lt *LoadTest[T]) MaxExecutedLoad() T {
	return lt.maxExecuted
}
