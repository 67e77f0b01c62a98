package reconfig

import (
	"math/rand"
	"time"
)

// Options configures a single reconfiguration run.
//   - NumWorkers: how many concurrent oracle probes the trial minimizer
//     fans out (default 1 if <= 0).
//   - Timeout: wall-clock budget for the cut loop; zero means no
//     timeout. Checked once per iteration, after the oracle reports the
//     problem still unschedulable; the safe-ordering search and the
//     minimizers do not check it.
//   - MaxCutsPerIter: the initial cap on how many cuts are enforced per
//     loop iteration; halved when the enforced cuts create a cycle or
//     infeasible bounds (and are rolled back), doubled while below the
//     job count after an iteration that adds constraints.
//   - SkipChance: the randomized-restart skip percentage handed to
//     ordergen.SearchForSafeJobOrdering's fallback phase.
//   - DryRating: when true, the loop builds and rates the graph but
//     never enforces cuts or runs the safe-ordering fallback; useful for
//     reporting a rating without mutating the problem.
//   - EnforceSafePath: when true, cut enforcement also appends the
//     pairwise constraints implied by the chosen safe path
//     (cutter.EnforceCutsWithPath) instead of the cuts alone.
//   - Rng: drives every randomized choice (skip chance, trial
//     minimizer's batch sampling); a fixed seed makes a run reproducible.
//   - Progress: optional callback invoked with a short status line at
//     each notable step of the loop; nil disables progress reporting.
type Options struct {
	NumWorkers      int
	Timeout         time.Duration
	MaxCutsPerIter  int
	SkipChance      int
	DryRating       bool
	EnforceSafePath bool
	Rng             *rand.Rand
	Progress        func(string)
}

// DefaultOptions returns the zero-value-safe defaults used when a caller
// does not supply Options of their own.
func DefaultOptions() Options {
	return Options{
		NumWorkers:     1,
		MaxCutsPerIter: 4,
		SkipChance:     50,
		Rng:            rand.New(rand.NewSource(1)),
	}
}

func (o Options) report(msg string) {
	if o.Progress != nil {
		o.Progress(msg)
	}
}
