package rating

import (
	"sort"

	"github.com/knokko/sagrepair/problem"
)

const (
	bottomByte    uint8 = 255
	maxRatingByte uint8 = 250
)

// NodeIndex identifies a node in a Graph's node arena.
type NodeIndex int

// RatingNode holds a quantized success rating in [0, 1], or the sentinel
// ⊥ ("bottom") marking a deadline-miss sink. The quantization trades
// precision for a one-byte footprint per node.
type RatingNode struct {
	ratingByte uint8
}

// IsBottom reports whether this node is a deadline-miss sink.
func (n RatingNode) IsBottom() bool {
	return n.ratingByte == bottomByte
}

// Rating returns the node's success fraction: 0 for a bottom node,
// otherwise the quantized value in [0, 1].
func (n RatingNode) Rating() float64 {
	if n.IsBottom() {
		return 0
	}
	return float64(n.ratingByte) / float64(maxRatingByte)
}

func ratingToByte(r float64) uint8 {
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	return uint8(r*float64(maxRatingByte) + 0.5)
}

// RatingEdge records that takenJob was dispatched from Parent and led to
// Child. It is kept behind accessor methods so a packed representation
// can be substituted later without touching callers.
type RatingEdge struct {
	parent, child NodeIndex
	job           problem.JobIndex
}

func (e RatingEdge) Parent() NodeIndex     { return e.parent }
func (e RatingEdge) Child() NodeIndex      { return e.child }
func (e RatingEdge) Job() problem.JobIndex { return e.job }

// Graph is a compact, append-only DAG over dispatch states: a node
// arena and an edge arena, each indexed by position. It supports two
// canonical edge orderings (by parent, by child); callers that
// temporarily sort by child must restore sort-by-parent before handing
// the graph back, since rating computation and cut extraction both
// assume parent order.
type Graph struct {
	nodes         []RatingNode
	edges         []RatingEdge
	sortedByChild bool
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{}
}

// AddNode appends a fresh, unrated node and returns its index.
func (g *Graph) AddNode() NodeIndex {
	g.nodes = append(g.nodes, RatingNode{})
	return NodeIndex(len(g.nodes) - 1)
}

// AddEdge appends an edge from parent to child labelled with job.
func (g *Graph) AddEdge(parent, child NodeIndex, job problem.JobIndex) {
	g.edges = append(g.edges, RatingEdge{parent: parent, child: child, job: job})
}

// MarkBottom marks node as a deadline-miss sink.
func (g *Graph) MarkBottom(node NodeIndex) {
	g.nodes[node].ratingByte = bottomByte
}

// MarkLeaf marks node as a successful completion (rating 1), unless it
// is already a bottom sink.
func (g *Graph) MarkLeaf(node NodeIndex) {
	if !g.nodes[node].IsBottom() {
		g.nodes[node].ratingByte = maxRatingByte
	}
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// Node returns the node at index n.
func (g *Graph) Node(n NodeIndex) RatingNode {
	return g.nodes[n]
}

// Edges returns the current edge slice in whichever order it was last sorted.
func (g *Graph) Edges() []RatingEdge {
	return g.edges
}

// IsSortedByChild reports whether the edges are currently in child order.
func (g *Graph) IsSortedByChild() bool {
	return g.sortedByChild
}

// SortByParent reorders edges ascending by parent index, stable with
// respect to insertion order among equal parents.
func (g *Graph) SortByParent() {
	sort.SliceStable(g.edges, func(i, j int) bool { return g.edges[i].parent < g.edges[j].parent })
	g.sortedByChild = false
}

// SortByChild reorders edges ascending by child index.
func (g *Graph) SortByChild() {
	sort.SliceStable(g.edges, func(i, j int) bool { return g.edges[i].child < g.edges[j].child })
	g.sortedByChild = true
}

// ChildrenOf returns the edges outgoing from parent. Requires sort-by-parent.
func (g *Graph) ChildrenOf(parent NodeIndex) []RatingEdge {
	lo, hi := g.ChildRange(parent)
	return g.edges[lo:hi]
}

// ChildRange returns the half-open position range [lo, hi) of parent's
// outgoing edges within the edge arena. Requires sort-by-parent. Callers
// that need to correlate an edge with per-position bookkeeping (the
// feasibility overlay's feasible-edge bits) use this instead of
// ChildrenOf.
func (g *Graph) ChildRange(parent NodeIndex) (int, int) {
	lo := sort.Search(len(g.edges), func(i int) bool { return g.edges[i].parent >= parent })
	hi := sort.Search(len(g.edges), func(i int) bool { return g.edges[i].parent > parent })
	return lo, hi
}

// ParentsOf returns the edges incoming to child. Requires sort-by-child.
func (g *Graph) ParentsOf(child NodeIndex) []RatingEdge {
	lo := sort.Search(len(g.edges), func(i int) bool { return g.edges[i].child >= child })
	hi := sort.Search(len(g.edges), func(i int) bool { return g.edges[i].child > child })
	return g.edges[lo:hi]
}

// ComputeRatings propagates ratings from leaves to the root: requires
// sort-by-parent, and visits nodes in reverse creation order so that a
// node's children — created after it by the oracle's forward traversal —
// already carry a computed rating by the time it is visited. Idempotent:
// rerunning after nothing has changed reproduces the same byte values.
func (g *Graph) ComputeRatings() {
	for i := len(g.nodes) - 1; i >= 0; i-- {
		idx := NodeIndex(i)
		if g.nodes[i].IsBottom() {
			continue
		}
		children := g.ChildrenOf(idx)
		if len(children) == 0 {
			continue
		}
		var sum float64
		for _, e := range children {
			sum += g.nodes[e.child].Rating()
		}
		g.nodes[i].ratingByte = ratingToByte(sum / float64(len(children)))
	}
}
