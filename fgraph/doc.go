// Package fgraph implements the feasibility graph overlay: given a
// rating graph and the problem's bounds, it marks which rating-graph
// nodes and edges can still be part of a deadline-safe completion, via a
// forward active-node simulation pass followed by a backward pruning
// pass. The result supports extracting a deterministic or randomized
// safe job-index path.
package fgraph
