// Package activenode simulates one concrete dispatch prefix: which jobs
// have finished, which are still running, and the per-processor core
// availability, tracking whether any dispatched job missed its deadline.
package activenode

import "errors"

// ErrOutOfOrderDispatch indicates Schedule was asked to dispatch a job
// whose predecessor is neither finished nor currently running in this
// node — a programmer error in the caller, not a property of the Problem.
var ErrOutOfOrderDispatch = errors.New("activenode: predecessor has not been scheduled yet")

// ErrIncompatibleMerge indicates Merge was asked to combine two nodes whose
// dispatched job sets disagree in a way that cannot represent a single
// pessimistic scenario (a job the other node still has running is neither
// running nor finished here).
var ErrIncompatibleMerge = errors.New("activenode: incompatible scheduled job history")
