package multigraph

import (
	"maps"

	terrors "github.com/matzehuels/textgraph/pkg/errors"
	"github.com/matzehuels/textgraph/pkg/network"
)

// MultiGraph is a directed or undirected graph with parallel edges.
//
// The zero value is not usable - use New.
type MultiGraph struct {
	directed bool
	order    []network.ID
	attrs    map[network.ID]network.Attrs
	degree   map[network.ID]int
	edges    []network.EdgeData
}

var _ network.Graph = (*MultiGraph)(nil)

// New creates an empty graph.
func New(directed bool) *MultiGraph {
	return &MultiGraph{
		directed: directed,
		attrs:    make(map[network.ID]network.Attrs),
		degree:   make(map[network.ID]int),
	}
}

// Directed reports whether edges are ordered pairs.
func (g *MultiGraph) Directed() bool { return g.directed }

// AddNode adds id, or merges attrs into the existing node's attributes.
func (g *MultiGraph) AddNode(id network.ID, attrs network.Attrs) error {
	if !network.ValidID(id) {
		return terrors.New(terrors.ErrCodeInvalidID, "node id %v of type %T is neither string nor integer", id, id)
	}
	existing, ok := g.attrs[id]
	if !ok {
		existing = network.Attrs{}
		g.attrs[id] = existing
		g.order = append(g.order, id)
	}
	maps.Copy(existing, attrs)
	return nil
}

// AddEdge appends an edge, adding missing endpoints first. Parallel edges
// are kept.
func (g *MultiGraph) AddEdge(from, to network.ID, attrs network.Attrs) error {
	if err := g.AddNode(from, nil); err != nil {
		return err
	}
	if err := g.AddNode(to, nil); err != nil {
		return err
	}
	g.edges = append(g.edges, network.EdgeData{From: from, To: to, Attrs: attrs.Clone()})
	g.degree[from]++
	g.degree[to]++
	return nil
}

// Nodes returns all nodes in insertion order. Attribute maps are copies.
func (g *MultiGraph) Nodes() []network.NodeData {
	out := make([]network.NodeData, len(g.order))
	for i, id := range g.order {
		out[i] = network.NodeData{ID: id, Attrs: g.attrs[id].Clone()}
	}
	return out
}

// Edges returns all edges in insertion order. Attribute maps are copies.
func (g *MultiGraph) Edges() []network.EdgeData {
	out := make([]network.EdgeData, len(g.edges))
	for i, e := range g.edges {
		out[i] = network.EdgeData{From: e.From, To: e.To, Attrs: e.Attrs.Clone()}
	}
	return out
}

// Isolates returns the nodes without incident edges, in insertion order.
func (g *MultiGraph) Isolates() []network.ID {
	var out []network.ID
	for _, id := range g.order {
		if g.degree[id] == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Node returns the attributes of id.
func (g *MultiGraph) Node(id network.ID) (network.Attrs, bool) {
	if !network.ValidID(id) {
		return nil, false
	}
	a, ok := g.attrs[id]
	return a, ok
}

// NodeCount returns the number of nodes.
func (g *MultiGraph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges, parallel edges included.
func (g *MultiGraph) EdgeCount() int { return len(g.edges) }

// Degree returns the number of edge endpoints at id. Self-loops count twice.
func (g *MultiGraph) Degree(id network.ID) int {
	if !network.ValidID(id) {
		return 0
	}
	return g.degree[id]
}
