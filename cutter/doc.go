// Package cutter derives cuts — local branching restrictions that, once
// enforced as precedence constraints, prune unsafe completions — from a
// rating graph, its feasibility overlay, and an explicit safe path
// through it.
package cutter
