package oracle

import "github.com/knokko/sagrepair/problem"

// StateID is an opaque identity the explorer assigns to a dispatch state.
// It has no meaning outside of distinguishing one state from another
// within a single exploration run.
type StateID int64

// Agent is the visitor protocol an explorer drives while it traverses the
// dispatch state space. Implementations attach their own bookkeeping
// (e.g. a rating-graph node index) to the states they are told about; the
// explorer itself never knows what that bookkeeping is.
type Agent interface {
	// OnInitialState is called once, with the identity of the root state.
	OnInitialState(root StateID)

	// OnDispatch is called when takenJob is dispatched from parent and
	// leads to a newly created state child.
	OnDispatch(parent StateID, takenJob problem.JobIndex, child StateID)

	// OnMerge is called when takenJob dispatched from parent leads to a
	// state that was already reached by a different path; existing is
	// that previously-seen state's identity.
	OnMerge(parent StateID, takenJob problem.JobIndex, existing StateID)

	// OnMissedDeadline is called when lateJob, dispatched from state,
	// misses its deadline.
	OnMissedDeadline(state StateID, lateJob problem.JobIndex)

	// OnLeafState is called when state has no further dispatchable jobs.
	OnLeafState(state StateID)

	// AllowMerge is consulted before the explorer folds a newly reached
	// state into an existing one (dest); returning false forces the
	// explorer to keep dest and the new arrival distinguished.
	AllowMerge(parent StateID, takenJob problem.JobIndex, dest StateID) bool
}

// NoopAgent implements Agent with no bookkeeping at all: every callback
// is a no-op and AllowMerge always permits merging. It is the substitute
// used when the core only needs a schedulable/not-schedulable answer and
// has no use for the rating graph.
type NoopAgent struct{}

func (NoopAgent) OnInitialState(StateID)                               {}
func (NoopAgent) OnDispatch(StateID, problem.JobIndex, StateID)         {}
func (NoopAgent) OnMerge(StateID, problem.JobIndex, StateID)            {}
func (NoopAgent) OnMissedDeadline(StateID, problem.JobIndex)            {}
func (NoopAgent) OnLeafState(StateID)                                   {}
func (NoopAgent) AllowMerge(StateID, problem.JobIndex, StateID) bool    { return true }

var _ Agent = NoopAgent{}
