// Package report models the one-line schedulability summary record
// emitted per analyzed problem: name, schedulable?, job count,
// rating-graph size, state-space size, timing, and memory. The analysis
// populates a Summary; rendering it as CSV is left to the CLI front end.
package report
