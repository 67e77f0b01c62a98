// Package bounds computes the earliest-pessimistic-start and
// latest-safe-start times for every job in a Problem by propagating
// bounds over the precedence DAG, detects precedence cycles (returning a
// witness chain), and flags problems that are definitely infeasible from
// bounds alone (returning a critical chain).
//
// Earliest pessimistic start e[i] is the longest path in the DAG using
// r_max as the source weight and, per edge j->i, adding s_max plus
// (c_max(j) if signalled at completion) to e[j]; it is computed by a
// Kahn-order topological traversal. Latest safe start l[i] is the
// analogous backward propagation from l[i] = d[i] - c_max(i).
//
// All reductions are linear in |jobs| + |precedence|.
package bounds
