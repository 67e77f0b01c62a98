package problem

import "errors"

// Sentinel errors for problem construction and mutation. Callers branch on
// these with errors.Is; none are wrapped with formatted strings at the
// definition site.
var (
	// ErrInvalidArrivalWindow indicates r_min > r_max for some job.
	ErrInvalidArrivalWindow = errors.New("problem: arrival window min exceeds max")

	// ErrInvalidCostWindow indicates c_min > c_max for some job.
	ErrInvalidCostWindow = errors.New("problem: cost window min exceeds max")

	// ErrCostExceedsDeadline indicates c_max > d for some job.
	ErrCostExceedsDeadline = errors.New("problem: maximal execution time exceeds deadline")

	// ErrInfiniteDeadline indicates a job has no finite deadline.
	ErrInfiniteDeadline = errors.New("problem: deadline must be finite")

	// ErrInvalidSuspensionWindow indicates s_min > s_max for a precedence constraint.
	ErrInvalidSuspensionWindow = errors.New("problem: suspension window min exceeds max")

	// ErrJobIndexOutOfRange indicates a precedence constraint references a
	// job index outside [0, len(jobs)).
	ErrJobIndexOutOfRange = errors.New("problem: job index out of range")

	// ErrTooFewProcessors indicates a Problem was built with m < 1.
	ErrTooFewProcessors = errors.New("problem: num_processors must be at least 1")
)
