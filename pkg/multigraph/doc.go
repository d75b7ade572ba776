// Package multigraph provides the attributed multigraph fed to
// network.Network.ImportGraph.
//
// A [MultiGraph] keeps nodes in first-seen order and allows any number of
// parallel edges between the same pair. It implements [network.Graph].
//
// # Building from text
//
// [FromTokens] turns a token sequence into its bigram graph: one node per
// distinct token and one edge per adjacent pair. [CountBigrams] collapses
// parallel bigrams into a single edge whose "weight" is the pair count.
//
//	tokens, _ := multigraph.ReadTokens(f, multigraph.SplitLines)
//	g := multigraph.FromTokens(tokens, true)
//
// # Serialization
//
// Graphs use a node-link JSON format:
//
//	{
//	  "directed": true,
//	  "nodes": [{"id": "a", "attrs": {"title": "first"}}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b", "attrs": {"weight": 2}}]
//	}
//
// Integral numbers decode as int, so identifiers written as 7 come back as
// the integer 7 and never as a string.
package multigraph
