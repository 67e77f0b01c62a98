// Package ordergen builds a total job ordering that is safe (misses no
// deadline under worst-case assumptions) using a least-slack-first
// heuristic dispatcher, with randomized restarts when the greedy choice
// dead-ends. The reconfiguration manager falls back to it when cuts alone
// cannot repair a problem, and it materializes a found safe path as
// dispatch-ordering precedence constraints.
package ordergen
