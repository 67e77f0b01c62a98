// Package reconfig orchestrates the iterative repair loop:
// compute simple bounds and run the necessary feasibility tests,
// then alternate between building a rating graph (via the schedulability
// oracle), overlaying it with a feasibility graph, cutting it into
// precedence constraints, and enforcing those cuts, until the problem is
// schedulable or a from-scratch safe-ordering fallback is required.
package reconfig
