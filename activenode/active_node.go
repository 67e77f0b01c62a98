package activenode

import (
	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/coreavail"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// RunningJob is a job this ActiveNode has dispatched but not yet retired
// to the finished set.
type RunningJob[T timeval.Time[T]] struct {
	Index      problem.JobIndex
	StartedAt  T
	FinishesAt T
}

// ActiveNode represents one concrete dispatch prefix: the set of finished
// jobs, the still-running jobs, the per-processor core availability, and
// whether any dispatch so far has missed its deadline.
type ActiveNode[T timeval.Time[T]] struct {
	finished       *problem.IndexSet
	running        []RunningJob[T]
	cores          *coreavail.CoreAvailability[T]
	missedDeadline bool
}

// New builds an empty ActiveNode for numJobs jobs and numCores processors,
// all cores idle at the zero value of T.
func New[T timeval.Time[T]](numJobs, numCores int) (*ActiveNode[T], error) {
	cores, err := coreavail.New[T](numCores)
	if err != nil {
		return nil, err
	}
	return &ActiveNode[T]{
		finished: problem.NewIndexSet(numJobs),
		cores:    cores,
	}, nil
}

// HasMissedDeadline reports whether any job dispatched onto this node
// started after its latest safe start time.
func (n *ActiveNode[T]) HasMissedDeadline() bool {
	return n.missedDeadline
}

// NumDispatchedJobs returns the number of jobs that are either finished or
// still running in this node.
func (n *ActiveNode[T]) NumDispatchedJobs() int {
	return n.finished.Size() + len(n.running)
}

// NextCoreAvailable returns the earliest time some processor in this node
// becomes free.
func (n *ActiveNode[T]) NextCoreAvailable() T {
	return n.cores.NextStartTime()
}

// findRunning returns the RunningJob entry for idx, or false if idx isn't
// currently running in this node.
func (n *ActiveNode[T]) findRunning(idx problem.JobIndex) (RunningJob[T], bool) {
	for _, rj := range n.running {
		if rj.Index == idx {
			return rj, true
		}
	}
	return RunningJob[T]{}, false
}

// readyTime resolves a job's ready time from its predecessors: finished
// predecessors impose no constraint, a running predecessor raises the
// ready time to its finish (Completion) or start (Start) time plus the
// suspension bound, and a predecessor that is neither finished nor
// running is a caller error.
func (n *ActiveNode[T]) readyTime(job problem.Job[T], predecessors []problem.PrecedenceConstraint[T]) (T, error) {
	ready := job.LatestArrival()
	for _, pc := range predecessors {
		if n.finished.Contains(int(pc.From)) {
			continue
		}
		rj, ok := n.findRunning(pc.From)
		if !ok {
			var zero T
			return zero, ErrOutOfOrderDispatch
		}
		bound := pc.MaxSuspension()
		if pc.SignalAt == problem.SignalAtCompletion {
			bound = bound.Add(rj.FinishesAt)
		} else {
			bound = bound.Add(rj.StartedAt)
		}
		ready = timeval.Max(ready, bound)
	}
	return ready, nil
}

// Schedule dispatches job onto this node: it resolves the ready time from
// predecessors, computes the actual start time from core availability,
// flags missedDeadline if the start exceeds the job's latest safe start,
// reserves a core, retires any running job whose finish (plus max
// suspension) is now in the past, and appends job to the running set.
func (n *ActiveNode[T]) Schedule(
	job problem.Job[T], sb *bounds.SimpleBounds[T], predecessors [][]problem.PrecedenceConstraint[T],
) error {
	ready, err := n.readyTime(job, predecessors[job.Index])
	if err != nil {
		return err
	}

	start := timeval.Max(ready, n.cores.NextStartTime())
	if timeval.Less(sb.LatestSafeStart[job.Index], start) {
		n.missedDeadline = true
	}

	if err := n.cores.Schedule(start, job.MaximalExecTime()); err != nil {
		return err
	}

	kept := n.running[:0]
	for _, rj := range n.running {
		threshold := rj.FinishesAt.Add(sb.MaximumSuspensions[rj.Index])
		if timeval.LessEqual(threshold, start) {
			n.finished.Add(int(rj.Index))
		} else {
			kept = append(kept, rj)
		}
	}
	n.running = kept

	n.running = append(n.running, RunningJob[T]{
		Index:      job.Index,
		StartedAt:  start,
		FinishesAt: start.Add(job.MaximalExecTime()),
	})
	return nil
}

// predictStartTime computes what Schedule's start time would be for job
// without mutating the node.
func (n *ActiveNode[T]) predictStartTime(job problem.Job[T], predecessors [][]problem.PrecedenceConstraint[T]) (T, error) {
	ready, err := n.readyTime(job, predecessors[job.Index])
	if err != nil {
		return ready, err
	}
	return timeval.Max(ready, n.cores.NextStartTime()), nil
}

// PredictStartTime mirrors Schedule's first two steps without mutating the
// node: used to look ahead before committing to a dispatch choice.
func (n *ActiveNode[T]) PredictStartTime(job problem.Job[T], predecessors [][]problem.PrecedenceConstraint[T]) (T, error) {
	return n.predictStartTime(job, predecessors)
}

// PredictNextStartTime is like PredictStartTime but also accounts for job
// occupying a processor, i.e. it bounds when the *next* dispatched job
// could start once job is also dispatched. With more than one processor
// that is the later of job's own start and the second-earliest free
// core; with a single processor the second slot coincides with the
// first, so the bound is job's own start time. The ordering generator's
// slack-leader check uses it to bound the next dispatched job's earliest
// start.
func (n *ActiveNode[T]) PredictNextStartTime(job problem.Job[T], predecessors [][]problem.PrecedenceConstraint[T]) (T, error) {
	start, err := n.predictStartTime(job, predecessors)
	if err != nil {
		return start, err
	}
	if n.cores.NumProcessors() == 1 {
		return start, nil
	}
	return timeval.Max(n.cores.SecondStartTime(), start), nil
}

// Merge folds other into n: core availability becomes the pointwise max,
// running jobs shared by both nodes take the pointwise max of started/
// finished times, and a job other still has running that n already
// finished is demoted back into the running set (the merged scenario is
// the pessimistic union of both histories).
func (n *ActiveNode[T]) Merge(other *ActiveNode[T]) error {
	if err := n.cores.Merge(other.cores); err != nil {
		return err
	}

	for _, orj := range other.running {
		merged := false
		for i, rj := range n.running {
			if rj.Index == orj.Index {
				n.running[i].StartedAt = timeval.Max(rj.StartedAt, orj.StartedAt)
				n.running[i].FinishesAt = timeval.Max(rj.FinishesAt, orj.FinishesAt)
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		if !n.finished.Contains(int(orj.Index)) {
			return ErrIncompatibleMerge
		}
		n.finished.Remove(int(orj.Index))
		n.running = append(n.running, orj)
	}

	if other.missedDeadline {
		n.missedDeadline = true
	}
	return nil
}

// Copy returns an independent deep copy of n.
func (n *ActiveNode[T]) Copy() *ActiveNode[T] {
	cp := &ActiveNode[T]{
		finished:       n.finished.Copy(),
		running:        append([]RunningJob[T]{}, n.running...),
		cores:          n.cores.Copy(),
		missedDeadline: n.missedDeadline,
	}
	return cp
}
