package feastest

import (
	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// jobInterval is the window [start, end] over which a job's execution
// could possibly overlap another: start is the job's earliest pessimistic
// start, end is its latest safe start plus its maximal execution time.
type jobInterval[T timeval.Time[T]] struct {
	index problem.JobIndex
	start T
	end   T
}

// IntervalTest checks, for the window around every job's own interval,
// whether the set of jobs that could overlap that window can possibly be
// packed into m processors of capacity end-start. It walks the jobs in
// index order; a real deployment with very large job counts would back
// this with an interval tree, but a linear overlap scan is an equivalent
// (just asymptotically slower) implementation of the same test.
type IntervalTest[T timeval.Time[T]] struct {
	problem *problem.Problem[T]
	sb      *bounds.SimpleBounds[T]

	intervals []jobInterval[T]

	nextJobIndex int
	infeasible   bool

	startTime, endTime T
	criticalLoads      []T
	criticalJobs       []problem.JobIndex
}

// NewIntervalTest builds an IntervalTest over p using the bounds already
// computed for it.
func NewIntervalTest[T timeval.Time[T]](p *problem.Problem[T], sb *bounds.SimpleBounds[T]) *IntervalTest[T] {
	intervals := make([]jobInterval[T], len(p.Jobs))
	for i, job := range p.Jobs {
		intervals[i] = jobInterval[T]{
			index: job.Index,
			start: sb.EarliestPessimisticStart[i],
			end:   sb.LatestSafeStart[i].Add(job.MaximalExecTime()),
		}
	}
	return &IntervalTest[T]{problem: p, sb: sb, intervals: intervals}
}

// Next advances the test by one job and returns false once every job has
// been checked (or infeasibility was already found).
func (it *IntervalTest[T]) Next() bool {
	if it.infeasible || it.nextJobIndex >= len(it.problem.Jobs) {
		return false
	}

	job := it.problem.Jobs[it.nextJobIndex]
	start := it.sb.EarliestPessimisticStart[it.nextJobIndex]
	end := it.sb.LatestSafeStart[it.nextJobIndex].Add(job.MaximalExecTime())
	it.startTime, it.endTime = start, end

	it.criticalLoads = it.criticalLoads[:0]
	it.criticalJobs = it.criticalJobs[:0]

	for _, iv := range it.intervals {
		if !(timeval.Less(iv.start, end) && timeval.Less(start, iv.end)) {
			continue
		}

		var nonOverlap T
		if timeval.Less(iv.start, start) {
			nonOverlap = start.Sub(iv.start)
		}
		if timeval.Less(end, iv.end) {
			nonOverlap = timeval.Max(nonOverlap, iv.end.Sub(end))
		}

		execTime := it.problem.Jobs[iv.index].MaximalExecTime()
		if timeval.Less(nonOverlap, execTime) {
			load := timeval.Min(execTime.Sub(nonOverlap), end.Sub(start))
			it.criticalLoads = append(it.criticalLoads, load)
			it.criticalJobs = append(it.criticalJobs, iv.index)
		}
	}

	loads := append([]T{}, it.criticalLoads...)
	if IsCertainlyUnpackable(it.problem.NumProcessors, end.Sub(start), loads) {
		it.infeasible = true
	}

	it.nextJobIndex++
	return true
}

// IsCertainlyInfeasible reports whether Next ever found an unpackable window.
func (it *IntervalTest[T]) IsCertainlyInfeasible() bool {
	return it.infeasible
}

// CriticalWindow returns the [start, end] window that was being examined
// during the most recent call to Next.
func (it *IntervalTest[T]) CriticalWindow() (T, T) {
	return it.startTime, it.endTime
}

// CriticalLoad returns the sum of the required loads found during the
// most recent call to Next.
func (it *IntervalTest[T]) CriticalLoad() T {
	var total T
	for _, load := range it.criticalLoads {
		total = total.Add(load)
	}
	return total
}

// CriticalJobs returns the job indices that contributed to the most
// recent call to Next's required-load set.
func (it *IntervalTest[T]) CriticalJobs() []problem.JobIndex {
	return it.criticalJobs
}
