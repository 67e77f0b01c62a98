package reconfig

import (
	"errors"
	"fmt"
)

// ErrSchedulabilityInvariantViolated indicates the oracle reported the
// final, fully-enforced problem as still unschedulable: a bug in the
// cut loop or its collaborators, not a property of the input problem.
var ErrSchedulabilityInvariantViolated = errors.New("reconfig: problem still unschedulable after enforcement; invariant violated")

// NecessaryTestFailureError wraps a load-test or interval-test witness of
// infeasibility.
type NecessaryTestFailureError struct {
	Test          string // "load" or "interval"
	CriticalStart any
	CriticalEnd   any
}

func (e *NecessaryTestFailureError) Error() string {
	return fmt.Sprintf("reconfig: %s test found infeasibility over [%v, %v]", e.Test, e.CriticalStart, e.CriticalEnd)
}
