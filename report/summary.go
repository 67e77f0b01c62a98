package report

import (
	"time"

	"github.com/google/uuid"
)

// Summary is the one-row schedulability record emitted per analyzed
// problem. It carries no formatting or I/O of its own; a CLI front end
// is responsible for rendering it as CSV.
type Summary struct {
	// Name identifies the problem, typically the source file's base name.
	Name string

	// Fingerprint is the analyzed Problem's identity, letting a caller
	// correlate a Summary back to the exact snapshot it was computed from.
	Fingerprint uuid.UUID

	// Schedulable is the final answer the reconfiguration manager or the
	// oracle reached for this problem.
	Schedulable bool

	// NumJobs is the job count of the analyzed problem.
	NumJobs int

	// NumNodes and NumEdges are the rating graph's size after the last
	// build, or zero if no rating graph was built (e.g. DryRating was
	// never reached because bounds already proved infeasibility).
	NumNodes int
	NumEdges int

	// NumStates is the number of distinct dispatch states the oracle
	// visited, which may differ from NumNodes when states were reached
	// only through merges that a non-rating oracle collapses without
	// keeping track of.
	NumStates int

	// MaxWidth is the widest BFS layer the oracle reported exploring.
	MaxWidth int

	// CPUTime is the wall-clock time spent analyzing this problem.
	CPUTime time.Duration

	// MemoryKiB is a best-effort peak memory estimate in KiB; zero if
	// not measured.
	MemoryKiB int64

	// TimedOut reports whether the analysis was cut short by a timeout
	// before reaching a definitive answer.
	TimedOut bool

	// NumProcessors is the processor count the problem was analyzed
	// under.
	NumProcessors int

	// NumCuts and NumAppendedConstraints report how many cuts the graph
	// cutter produced and how many precedence constraints ended up
	// appended (after minimization) to make the problem schedulable.
	NumCuts                int
	NumAppendedConstraints int
}

// Fields returns the record's fields in their declared output order:
// name, schedulable?(0/1), #jobs, #nodes, #states, #edges, max-width,
// cpu-time, memory-kiB, timeout?, #cpus. It returns plain values rather
// than a formatted string, leaving delimiter and numeric formatting
// choices to the CLI front end.
func (s Summary) Fields() []any {
	schedulable := 0
	if s.Schedulable {
		schedulable = 1
	}
	timedOut := 0
	if s.TimedOut {
		timedOut = 1
	}
	return []any{
		s.Name,
		schedulable,
		s.NumJobs,
		s.NumNodes,
		s.NumStates,
		s.NumEdges,
		s.MaxWidth,
		s.CPUTime,
		s.MemoryKiB,
		timedOut,
		s.NumProcessors,
	}
}
