// Package problem defines the data model shared by every analysis stage:
// jobs, precedence constraints, abort actions, the workload container, and
// a compact dense index set over job indices.
//
// A Problem is built once from parsed sources (CSV parsing itself is an
// out-of-scope collaborator) and is mutated exclusively by appending
// precedence constraints during reconfiguration; job indices never change
// after construction.
package problem
