package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/textgraph/pkg/network"
)

// Options configures DOT generation.
type Options struct {
	// Detailed appends the remaining node attributes (title, x, y, ...) to
	// each label. When false, only the label is shown.
	Detailed bool
	// EdgeColor is the color of all edges. Empty means black.
	EdgeColor string
}

// pointsPerUnit scales scene sizes (pixels) to DOT font sizes (points).
const pointsPerUnit = 0.75

// styleKeys are rendered as DOT attributes rather than label details.
var styleKeys = map[string]bool{
	"id": true, "label": true, "shape": true, "size": true, "font": true, "color": true,
}

// ToDOT converts a scene to Graphviz DOT.
func ToDOT(s network.Scene, opts Options) string {
	kind, arrow := "graph", "--"
	if s.Directed {
		kind, arrow = "digraph", "->"
	}
	edgeColor := opts.EdgeColor
	if edgeColor == "" {
		edgeColor = "#000000"
	}
	bg := s.BGColor
	if bg == "" {
		bg = "transparent"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  nodesep=0.3;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", bg)
	if s.Heading != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", s.Heading)
	}
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=false];\n")
	fmt.Fprintf(&buf, "  edge [color=%q];\n", edgeColor)
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", dotID(n["id"]), strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q %s %q;\n", dotID(e["from"]), arrow, dotID(e["to"]))
			continue
		}
		fmt.Fprintf(&buf, "  %q %s %q [%s];\n", dotID(e["from"]), arrow, dotID(e["to"]), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotID renders an identifier as a DOT node name. Integers and strings with
// the same text collapse to one DOT node.
func dotID(id any) string {
	return fmt.Sprint(id)
}

func fmtLabel(n network.Attrs, detailed bool) string {
	label := fmt.Sprint(n["label"])
	if n["label"] == nil {
		label = dotID(n["id"])
	}
	if !detailed {
		return label
	}

	var parts []string
	for _, k := range slices.Sorted(maps.Keys(n)) {
		if styleKeys[k] {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, n[k]))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n network.Attrs, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if c, ok := n["color"].(string); ok && c != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
	}
	if font, ok := n["font"].(map[string]any); ok {
		if size, ok := number(font["size"]); ok && size > 0 {
			attrs = append(attrs, "fontsize="+formatFloat(size*pointsPerUnit))
		}
		if c, ok := font["color"].(string); ok && c != "" {
			attrs = append(attrs, fmt.Sprintf("fontcolor=%q", c))
		}
	}
	if shape, ok := n["shape"].(string); ok {
		if s, ok := shapes[shape]; ok {
			attrs = append(attrs, "shape="+s)
		}
	}
	return attrs
}

func edgeAttrs(e network.Attrs) []string {
	var attrs []string
	if w, ok := number(e["width"]); ok && w > 0 {
		attrs = append(attrs, "penwidth="+formatFloat(w))
	}
	if c, ok := e["color"].(string); ok && c != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", c))
	}
	if t, ok := e["title"].(string); ok && t != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", t))
	}
	return attrs
}

// shapes maps engine shapes to their closest Graphviz shape.
var shapes = map[string]string{
	"dot":      "circle",
	"circle":   "circle",
	"ellipse":  "ellipse",
	"box":      "box",
	"square":   "square",
	"diamond":  "diamond",
	"triangle": "triangle",
	"star":     "star",
	"text":     "plaintext",
	"database": "cylinder",
}

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
	case int32:
		return float64(x), true
	}
	return 0, false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales to its
// container while keeping Graphviz's intrinsic size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
