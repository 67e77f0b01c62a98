// Package minimize prunes redundant constraints from the tail of a
// Problem's precedence list that the reconfiguration manager appended:
// TransitivityMinimizer removes constraints implied by other appended
// constraints via reachability, TrialMinimizer randomly removes batches
// and asks the oracle whether the problem stays schedulable without
// them, and TailMinimizer is a suffix-window variant of the same idea.
// All of them operate only on the appended slice; the original
// constraints a Problem was built with are never touched.
package minimize
