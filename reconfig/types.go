package reconfig

import (
	"github.com/knokko/sagrepair/bounds"
	"github.com/knokko/sagrepair/oracle"
	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// Explorer is the schedulability-oracle surface the cut loop depends on:
// given an Agent it drives the dispatch-state event stream and reports
// overall schedulability. oracle.BruteForceExplorer
// is the reference implementation used by this module's own tests; a
// production deployment plugs a real state-space explorer in behind the
// same interface.
type Explorer interface {
	Explore(agent oracle.Agent) (bool, error)
}

// ExplorerFactory builds a fresh Explorer bound to p and its current
// bounds. The loop calls it again after every round of bounds
// recomputation, since appending precedence constraints invalidates the
// previous explorer's view of the problem.
type ExplorerFactory[T timeval.Time[T]] func(p *problem.Problem[T], sb *bounds.SimpleBounds[T]) Explorer

// State is one of the cut loop's four states.
type State int

const (
	// StateProbing is building and rating a fresh rating graph.
	StateProbing State = iota
	// StateRefining is consuming cuts with the current budget.
	StateRefining
	// StateExhausted fell back to from-scratch safe-ordering enforcement.
	StateExhausted
	// StateDone means the problem is schedulable and control has passed
	// (or is about to pass) to the minimizers.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateProbing:
		return "Probing"
	case StateRefining:
		return "Refining"
	case StateExhausted:
		return "Exhausted"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Result summarizes one reconfiguration run.
type Result[T timeval.Time[T]] struct {
	Schedulable         bool
	FinalState          State
	Bounds              *bounds.SimpleBounds[T]
	AppendedConstraints int
	ConstraintsRemoved  int
	Iterations          int
}
