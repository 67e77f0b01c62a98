// Package rating builds and queries the rating graph: a compact DAG over
// the dispatch states an oracle explores, each node holding a quantized
// success rating and each edge recording which job was taken to reach
// its child. It implements the oracle.Agent protocol so a real or
// reference explorer can build it directly while it traverses the
// dispatch state space.
package rating
