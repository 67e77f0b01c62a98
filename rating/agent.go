package rating

import (
	"github.com/knokko/sagrepair/oracle"
	"github.com/knokko/sagrepair/problem"
)

// GraphAgent implements oracle.Agent by building a Graph from the
// dispatch-state event stream: every oracle state carries an attachment
// to the rating-graph node index representing it. Merging across the
// bottom (deadline-miss) boundary is refused in both directions, so a
// deadline-missing branch never silently poisons a rating that would
// otherwise be salvageable, and vice versa.
type GraphAgent struct {
	graph      *Graph
	attachment map[oracle.StateID]NodeIndex
}

// NewGraphAgent returns an agent backed by a fresh, empty Graph.
func NewGraphAgent() *GraphAgent {
	return &GraphAgent{graph: New(), attachment: make(map[oracle.StateID]NodeIndex)}
}

// Graph returns the graph being built. It is only safe to inspect once
// exploration has finished.
func (a *GraphAgent) Graph() *Graph {
	return a.graph
}

func (a *GraphAgent) OnInitialState(root oracle.StateID) {
	a.attachment[root] = a.graph.AddNode()
}

func (a *GraphAgent) OnDispatch(parent oracle.StateID, job problem.JobIndex, child oracle.StateID) {
	parentIdx := a.attachment[parent]
	childIdx := a.graph.AddNode()
	a.attachment[child] = childIdx
	a.graph.AddEdge(parentIdx, childIdx, job)
}

func (a *GraphAgent) OnMerge(parent oracle.StateID, job problem.JobIndex, existing oracle.StateID) {
	a.graph.AddEdge(a.attachment[parent], a.attachment[existing], job)
}

func (a *GraphAgent) OnMissedDeadline(state oracle.StateID, _ problem.JobIndex) {
	a.graph.MarkBottom(a.attachment[state])
}

func (a *GraphAgent) OnLeafState(state oracle.StateID) {
	a.graph.MarkLeaf(a.attachment[state])
}

func (a *GraphAgent) AllowMerge(parent oracle.StateID, _ problem.JobIndex, dest oracle.StateID) bool {
	destIdx, destOK := a.attachment[dest]
	parentIdx, parentOK := a.attachment[parent]
	if !destOK || !parentOK {
		return true
	}
	return a.graph.Node(destIdx).IsBottom() == a.graph.Node(parentIdx).IsBottom()
}

var _ oracle.Agent = (*GraphAgent)(nil)

// Build runs explorer with a fresh GraphAgent, computes ratings, and
// returns the resulting Graph sorted by parent.
func Build(explore func(oracle.Agent) (bool, error)) (*Graph, error) {
	agent := NewGraphAgent()
	if _, err := explore(agent); err != nil {
		return nil, err
	}
	agent.Graph().SortByParent()
	agent.Graph().ComputeRatings()
	return agent.Graph(), nil
}
