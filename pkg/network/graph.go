package network

// Graph is the external graph abstraction consumed by [Network.ImportGraph].
// Implementations may hold parallel edges; see package multigraph.
type Graph interface {
	// Directed reports whether edges are ordered pairs.
	Directed() bool
	// Nodes returns every declared node with its attributes.
	Nodes() []NodeData
	// Edges returns every edge, repeated pairs included, in insertion order.
	Edges() []EdgeData
	// Isolates returns the nodes with no incident edges.
	Isolates() []ID
}

// NodeData is a node as exposed by a [Graph].
type NodeData struct {
	ID    ID
	Attrs Attrs
}

// EdgeData is an edge as exposed by a [Graph].
type EdgeData struct {
	From  ID
	To    ID
	Attrs Attrs
}
