// Package coreavail tracks, for one dispatch prefix, the next time each of
// the m processors becomes free.
package coreavail

import (
	"errors"
	"sort"

	"github.com/knokko/sagrepair/timeval"
)

// ErrTooFewProcessors indicates a CoreAvailability was constructed with m < 1.
var ErrTooFewProcessors = errors.New("coreavail: num_processors must be at least 1")

// ErrStartBeforeNext indicates Schedule was called with a start time before
// NextStartTime, which would retroactively occupy an already-busy core.
var ErrStartBeforeNext = errors.New("coreavail: start time precedes next available core")

// CoreAvailability holds the sorted-ascending next-free-time of each of m
// processors. It represents the pessimistic join of whatever has been
// dispatched onto the m cores so far.
type CoreAvailability[T timeval.Time[T]] struct {
	finishTimes []T
}

// New builds a CoreAvailability for numCores processors, all free at the
// zero value of T.
func New[T timeval.Time[T]](numCores int) (*CoreAvailability[T], error) {
	if numCores < 1 {
		return nil, ErrTooFewProcessors
	}
	return &CoreAvailability[T]{finishTimes: make([]T, numCores)}, nil
}

// NextStartTime returns the earliest time any processor becomes free.
func (ca *CoreAvailability[T]) NextStartTime() T {
	return ca.finishTimes[0]
}

// SecondStartTime returns the second-earliest free time; it requires m > 1.
func (ca *CoreAvailability[T]) SecondStartTime() T {
	if len(ca.finishTimes) < 2 {
		panic("coreavail: SecondStartTime requires at least 2 processors")
	}
	return ca.finishTimes[1]
}

// NumProcessors returns m.
func (ca *CoreAvailability[T]) NumProcessors() int {
	return len(ca.finishTimes)
}

// Schedule occupies the earliest-free processor with a job starting at
// start and running for duration, then re-sorts. start must be >=
// NextStartTime(); m is typically tiny, so an insertion re-sort is
// preferable to a heap.
func (ca *CoreAvailability[T]) Schedule(start, duration T) error {
	if timeval.Less(start, ca.NextStartTime()) {
		return ErrStartBeforeNext
	}
	ca.finishTimes[0] = start.Add(duration)
	sort.Slice(ca.finishTimes, func(i, j int) bool {
		return timeval.Less(ca.finishTimes[i], ca.finishTimes[j])
	})
	return nil
}

// Merge replaces each processor's free time with the pointwise maximum of
// ca and other, representing the pessimistic join of two execution
// scenarios that reached the same dispatch state via different paths.
func (ca *CoreAvailability[T]) Merge(other *CoreAvailability[T]) error {
	if len(ca.finishTimes) != len(other.finishTimes) {
		return errors.New("coreavail: merge requires equal processor counts")
	}
	for i := range ca.finishTimes {
		ca.finishTimes[i] = timeval.Max(ca.finishTimes[i], other.finishTimes[i])
	}
	return nil
}

// Copy returns an independent deep copy.
func (ca *CoreAvailability[T]) Copy() *CoreAvailability[T] {
	cp := &CoreAvailability[T]{finishTimes: make([]T, len(ca.finishTimes))}
	copy(cp.finishTimes, ca.finishTimes)
	return cp
}
