// Package nodelink renders a scene as a static node-link diagram.
//
// # Usage
//
// Convert a scene to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(scene, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] emits a "digraph" for directed scenes and a "graph" otherwise.
// Node colors, label font sizes and edge widths carry over from the scene,
// so keyword emphasis survives in the static output. Layout is left to
// Graphviz; the physics options of the scene do not apply.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
