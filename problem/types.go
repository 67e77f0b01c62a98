package problem

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/knokko/sagrepair/timeval"
)

// JobIndex is the dense 0..N ordinal assigned to a job at load time.
// External (task_id, job_id) pairs are mapped to a JobIndex exactly once,
// at construction, and never again.
type JobIndex int

// JobID is the external, user-facing identity of a job: a (task_id, job_id)
// pair of non-negative integers, unique within a Problem.
type JobID struct {
	TaskID int
	JobID  int
}

func (id JobID) String() string {
	return fmt.Sprintf("T%d J%d", id.TaskID, id.JobID)
}

// SignalAt selects whether a precedence constraint's suspension window is
// measured from the predecessor's finish time (Completion) or its start
// time (Start).
type SignalAt int

const (
	// SignalAtCompletion means the successor's ready time uses the
	// predecessor's finish time.
	SignalAtCompletion SignalAt = iota
	// SignalAtStart means the successor's ready time uses the
	// predecessor's start time.
	SignalAtStart
)

// Job is a single real-time job: an arrival window, a cost window, a
// deadline, a fixed priority (lower value = higher priority), its external
// and dense identities, and an optional minimum-parallelism requirement
// (1 unless the job is part of a gang task).
type Job[T timeval.Time[T]] struct {
	Arrival        timeval.Interval[T]
	Cost           timeval.Interval[T]
	Deadline       T
	Priority       int
	ID             JobID
	MinParallelism int
	Index          JobIndex
}

// LatestArrival returns r_max, the worst-case release time.
func (j Job[T]) LatestArrival() T { return j.Arrival.Max() }

// EarliestArrival returns r_min, the best-case release time.
func (j Job[T]) EarliestArrival() T { return j.Arrival.Min() }

// MaximalExecTime returns c_max, the worst-case execution cost.
func (j Job[T]) MaximalExecTime() T { return j.Cost.Max() }

// MinimalExecTime returns c_min, the best-case execution cost.
func (j Job[T]) MinimalExecTime() T { return j.Cost.Min() }

// validate checks the per-job invariants: r_min <= r_max, c_min <= c_max,
// c_max <= d, and d < infinity.
func (j Job[T]) validate() error {
	var zero T
	if timeval.Less(j.Arrival.Max(), j.Arrival.Min()) {
		return fmt.Errorf("%w: job %s", ErrInvalidArrivalWindow, j.ID)
	}
	if timeval.Less(j.Cost.Max(), j.Cost.Min()) {
		return fmt.Errorf("%w: job %s", ErrInvalidCostWindow, j.ID)
	}
	if !timeval.Less(j.Deadline, zero.Infinity()) {
		return fmt.Errorf("%w: job %s", ErrInfiniteDeadline, j.ID)
	}
	if timeval.Less(j.Deadline, j.MaximalExecTime()) {
		return fmt.Errorf("%w: job %s", ErrCostExceedsDeadline, j.ID)
	}
	return nil
}

// PrecedenceConstraint ties a predecessor job index to a successor job
// index with a suspension window [s_min, s_max] and a SignalAt tag. The
// directed graph formed by From->To across a Problem's constraint list must
// be acyclic; that property is checked by the bounds package, not here,
// since cycle detection needs a witness chain and belongs with the rest of
// the DAG propagation logic.
type PrecedenceConstraint[T timeval.Time[T]] struct {
	From       JobIndex
	To         JobIndex
	Suspension timeval.Interval[T]
	SignalAt   SignalAt
}

// MinSuspension returns s_min.
func (pc PrecedenceConstraint[T]) MinSuspension() T { return pc.Suspension.Min() }

// MaxSuspension returns s_max.
func (pc PrecedenceConstraint[T]) MaxSuspension() T { return pc.Suspension.Max() }

// AbortAction is passthrough data describing when a job may be aborted.
// The core does not interpret it beyond carrying it alongside a Problem;
// abort-aware dispatch is a CLI/oracle collaborator concern.
type AbortAction[T timeval.Time[T]] struct {
	TaskID int
	JobID  int
	Window timeval.Interval[T]
}

// Problem is the immutable-after-construction workload container: the
// job list in index order, the precedence list, the abort list, and the
// processor count. Precedence is the only field appended to after
// construction, during reconfiguration.
type Problem[T timeval.Time[T]] struct {
	Jobs          []Job[T]
	Precedence    []PrecedenceConstraint[T]
	Aborts        []AbortAction[T]
	NumProcessors int

	// Fingerprint identifies this Problem snapshot. It does not change when
	// Precedence constraints are appended in place; callers that need to
	// detect "has this Problem been resized since I copied it" (the trial
	// minimizer's stale-snapshot guard) compare len(Precedence) themselves
	// and use Fingerprint only to label reports (see the report package).
	Fingerprint uuid.UUID
}

// New builds a Problem from a job slice in index order, sets each job's
// Index to its slice position, and validates every per-job invariant.
// Precedence constraints are added afterwards via AppendPrecedence; Aborts
// is a plain field that New leaves empty and does not validate.
func New[T timeval.Time[T]](jobs []Job[T], numProcessors int) (*Problem[T], error) {
	if numProcessors < 1 {
		return nil, ErrTooFewProcessors
	}
	for i := range jobs {
		jobs[i].Index = JobIndex(i)
		if err := jobs[i].validate(); err != nil {
			return nil, err
		}
	}
	return &Problem[T]{
		Jobs:          jobs,
		NumProcessors: numProcessors,
		Fingerprint:   uuid.New(),
	}, nil
}

// AppendPrecedence appends a single precedence constraint after validating
// its endpoints and suspension window. It does not re-check acyclicity;
// callers that need an up-to-date SimpleBounds must recompute it afterward.
func (p *Problem[T]) AppendPrecedence(pc PrecedenceConstraint[T]) error {
	if int(pc.From) < 0 || int(pc.From) >= len(p.Jobs) || int(pc.To) < 0 || int(pc.To) >= len(p.Jobs) {
		return ErrJobIndexOutOfRange
	}
	if timeval.Less(pc.Suspension.Max(), pc.Suspension.Min()) {
		return ErrInvalidSuspensionWindow
	}
	p.Precedence = append(p.Precedence, pc)
	return nil
}

// HasPrecedence reports whether an appended (or original) constraint
// from->to already exists, used by cut enforcement to avoid duplicate
// constraints.
func (p *Problem[T]) HasPrecedence(from, to JobIndex) bool {
	for _, pc := range p.Precedence {
		if pc.From == from && pc.To == to {
			return true
		}
	}
	return false
}

// PredecessorMap builds, for each job index, the list of precedence
// constraints for which it is the successor (the "to" side). This is the
// mapping the active-node simulator and ordering generator both need to
// resolve a job's ready time from its predecessors.
func (p *Problem[T]) PredecessorMap() [][]PrecedenceConstraint[T] {
	mapping := make([][]PrecedenceConstraint[T], len(p.Jobs))
	for _, pc := range p.Precedence {
		mapping[pc.To] = append(mapping[pc.To], pc)
	}
	return mapping
}

// SuccessorMap builds, for each job index, the list of precedence
// constraints for which it is the predecessor (the "from" side).
func (p *Problem[T]) SuccessorMap() [][]PrecedenceConstraint[T] {
	mapping := make([][]PrecedenceConstraint[T], len(p.Jobs))
	for _, pc := range p.Precedence {
		mapping[pc.From] = append(mapping[pc.From], pc)
	}
	return mapping
}
