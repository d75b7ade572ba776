package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/textgraph/pkg/network"
)

func buildScene(t *testing.T, directed bool) network.Scene {
	t.Helper()
	n, err := network.New(network.Config{Directed: directed, Keywords: []network.ID{"hijo"}, KeywordColor: "#00ff00"})
	if err != nil {
		t.Fatal(err)
	}
	if err := n.AddNodes([]network.ID{"hijo", "año", 3}, map[string][]any{"title": {"son", "year", "three"}}); err != nil {
		t.Fatal(err)
	}
	_ = n.AddEdge("hijo", "año", network.Attrs{"width": 4})
	_ = n.AddEdge("año", 3, nil)
	s, err := n.Scene()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestToDOT_Directed(t *testing.T) {
	dot := ToDOT(buildScene(t, true), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("ToDOT() output missing digraph declaration:\n%s", dot)
	}
	for _, want := range []string{`"hijo"`, `"año"`, `"3"`, `"hijo" -> "año" [penwidth=4]`, `"año" -> "3" [penwidth=1]`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s", want)
		}
	}
}

func TestToDOT_Undirected(t *testing.T) {
	dot := ToDOT(buildScene(t, false), Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() output missing graph declaration")
	}
	if !strings.Contains(dot, `"hijo" -- "año"`) {
		t.Error("ToDOT() output missing undirected edge")
	}
	if strings.Contains(dot, "->") {
		t.Error("undirected DOT must not contain ->")
	}
}

func TestToDOT_Styling(t *testing.T) {
	dot := ToDOT(buildScene(t, true), Options{EdgeColor: "#222222"})

	if !strings.Contains(dot, `fillcolor="#00ff00"`) {
		t.Error("keyword color missing")
	}
	// Keyword font: 10 * 1.5 px = 11.25 pt; regular: 10 * 0.9 px = 6.75 pt.
	if !strings.Contains(dot, "fontsize=11.25") || !strings.Contains(dot, "fontsize=6.75") {
		t.Errorf("font sizes missing:\n%s", dot)
	}
	if !strings.Contains(dot, `edge [color="#222222"]`) {
		t.Error("edge color missing")
	}
	if !strings.Contains(dot, "shape=circle") {
		t.Error("dot shape should map to circle")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(buildScene(t, true), Options{Detailed: true})
	if !strings.Contains(dot, `title: son`) {
		t.Errorf("detailed label missing title:\n%s", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	n := network.Attrs{"id": 7, "label": 7, "x": 1, "color": "red"}
	if got := fmtLabel(n, false); got != "7" {
		t.Errorf("fmtLabel() = %q, want 7", got)
	}
	if got := fmtLabel(n, true); got != "7\nx: 1" {
		t.Errorf("fmtLabel(detailed) = %q", got)
	}
	if got := fmtLabel(network.Attrs{"id": "a"}, false); got != "a" {
		t.Errorf("fmtLabel() without label = %q, want a", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "rewrites root",
			input: `<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`,
			want:  `viewBox="0 0 100.00 50.00" width="100" height="50"`,
		},
		{
			name:  "no viewBox",
			input: `<svg><g/></svg>`,
			want:  `<svg><g/></svg>`,
		},
		{
			name:  "zero size",
			input: `<svg viewBox="0 0 0 0"></svg>`,
			want:  `<svg viewBox="0 0 0 0"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(normalizeViewBox([]byte(tt.input)))
			if !strings.Contains(got, tt.want) {
				t.Errorf("normalizeViewBox() = %s, want it to contain %s", got, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(buildScene(t, true), Options{})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), "not valid dot {{{")
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
