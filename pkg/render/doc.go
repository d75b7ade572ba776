// Package render provides static renderings of a network.Scene.
//
// The interactive HTML page is produced by package emit. This package and
// its subpackages cover the other artifact kinds:
//
//   - [nodelink]: Graphviz DOT export and in-process SVG rendering
//   - [echarts]: an alternate interactive page built with go-echarts
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(scene, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [nodelink]: github.com/matzehuels/textgraph/pkg/render/nodelink
// [echarts]: github.com/matzehuels/textgraph/pkg/render/echarts
package render
