// Package echarts renders a scene as an Apache ECharts force graph page.
//
// It is an alternate engine to the vis-network document from package emit:
// the page loads ECharts from its CDN and needs no local assets. Node colors
// and sizes carry over; physics options do not.
package echarts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matzehuels/textgraph/pkg/network"
)

// Options configures the ECharts page.
type Options struct {
	// Repulsion between nodes in the force layout. Zero means 400.
	Repulsion float32
	// EdgeLength is the rest length of edges. Zero means the ECharts default.
	EdgeLength float32
	// PageTitle defaults to the scene heading, then "textgraph".
	PageTitle string
}

// Render writes the page for s to w.
func Render(s network.Scene, o Options, w io.Writer) error {
	page := components.NewPage()
	page.SetPageTitle(pageTitle(s, o))
	page.AddCharts(graphBase(s, o))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render echarts: %w", err)
	}
	return nil
}

func pageTitle(s network.Scene, o Options) string {
	switch {
	case o.PageTitle != "":
		return o.PageTitle
	case s.Heading != "":
		return s.Heading
	}
	return "textgraph"
}

func graphBase(s network.Scene, o Options) *charts.Graph {
	repulsion := o.Repulsion
	if repulsion == 0 {
		repulsion = 400
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       pageTitle(s, o),
			Height:          s.Height,
			Width:           s.Width,
			BackgroundColor: s.BGColor,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: s.Heading,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	force := &opts.GraphForce{Repulsion: repulsion}
	if o.EdgeLength > 0 {
		force.EdgeLength = o.EdgeLength
	}
	chart := opts.GraphChart{
		Layout:    "force",
		Draggable: opts.Bool(true),
		Roam:      opts.Bool(true),
		Force:     force,
	}
	if s.Directed {
		chart.EdgeSymbol = []string{"none", "arrow"}
	}
	graph.AddSeries(
		"graph",
		Nodes(s),
		Links(s),
		charts.WithGraphChartOpts(chart),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "black",
			Position: "top",
		}),
	)
	return graph
}

// Nodes converts scene nodes to ECharts graph nodes. Names are the node
// labels; ECharts links refer to nodes by name.
func Nodes(s network.Scene) []opts.GraphNode {
	nodes := make([]opts.GraphNode, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		node := opts.GraphNode{Name: nodeName(n["id"])}
		if size, ok := number(n["size"]); ok {
			node.SymbolSize = size
		}
		if c, ok := n["color"].(string); ok && c != "" {
			node.ItemStyle = &opts.ItemStyle{Color: c}
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// Links converts scene edges to ECharts links.
func Links(s network.Scene) []opts.GraphLink {
	links := make([]opts.GraphLink, 0, len(s.Edges))
	for _, e := range s.Edges {
		link := opts.GraphLink{Source: nodeName(e["from"]), Target: nodeName(e["to"])}
		if v, ok := number(e["value"]); ok {
			link.Value = float32(v)
		} else if v, ok := number(e["width"]); ok {
			link.Value = float32(v)
		}
		links = append(links, link)
	}
	return links
}

func nodeName(id any) string { return fmt.Sprint(id) }

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
