package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/textgraph/pkg/multigraph"
)

func TestTopTokens(t *testing.T) {
	g := multigraph.FromTokens([]string{"hijo", "semana", "hijo", "sentir", "vida"}, true)

	top := topTokens(g, 2)
	if len(top) != 2 {
		t.Fatalf("len(top) = %d, want 2", len(top))
	}
	if top[0].id != "hijo" || top[0].degree != 3 {
		t.Errorf("top[0] = %+v, want hijo with degree 3", top[0])
	}
	// semana and sentir tie at 2; insertion order wins.
	if top[1].id != "semana" {
		t.Errorf("top[1] = %+v, want semana", top[1])
	}

	if got := topTokens(g, 0); got != nil {
		t.Errorf("topTokens(g, 0) = %v, want nil", got)
	}
	if got := topTokens(g, 100); len(got) != 4 {
		t.Errorf("topTokens(g, 100) returned %d entries, want 4", len(got))
	}
}

func TestTokensExport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(input, []byte("hijo semana\nhijo semana\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	export := filepath.Join(dir, "graph.json")

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"tokens", input, "--words", "--weighted", "--export-graph", export})
	if err := root.Execute(); err != nil {
		t.Fatalf("tokens: %v", err)
	}

	g, err := multigraph.ReadFile(export)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
	// hijo→semana twice, semana→hijo once
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}
	if !g.Directed() {
		t.Error("graph should be directed by default")
	}
}

func TestTokensMissingFile(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"tokens", filepath.Join(t.TempDir(), "none.txt")})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Error("missing token file should fail")
	}
}
