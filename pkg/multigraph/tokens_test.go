package multigraph

import (
	"strings"
	"testing"
)

func TestReadTokens(t *testing.T) {
	input := "hombre\nnegocios\n\n  año \r\nedad\n"

	tests := []struct {
		name string
		mode SplitMode
		in   string
		want []string
	}{
		{"lines", SplitLines, input, []string{"hombre", "negocios", "año", "edad"}},
		{"words", SplitWords, "the quick  brown\n\tfox", []string{"the", "quick", "brown", "fox"}},
		{"lines keep inner spaces", SplitLines, "new york\nparis", []string{"new york", "paris"}},
		{"empty", SplitLines, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadTokens(strings.NewReader(tt.in), tt.mode)
			if err != nil {
				t.Fatalf("ReadTokens: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("ReadTokens = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBigrams(t *testing.T) {
	got := Bigrams([]string{"a", "b", "c", "b"})
	want := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "b"}}
	if len(got) != len(want) {
		t.Fatalf("Bigrams = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Bigrams[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if Bigrams([]string{"solo"}) != nil {
		t.Error("Bigrams of one token should be nil")
	}
}

func TestFromTokens(t *testing.T) {
	tokens := []string{"hijo", "año", "hijo", "año", "joven"}
	g := FromTokens(tokens, true)

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount = %d, want 4", g.EdgeCount())
	}
	if !g.Directed() {
		t.Error("Directed = false, want true")
	}
	ids := g.Nodes()
	if ids[0].ID != "hijo" || ids[1].ID != "año" || ids[2].ID != "joven" {
		t.Errorf("node order = %v", ids)
	}
}

func TestFromTokensSingle(t *testing.T) {
	g := FromTokens([]string{"solo"}, true)
	if g.NodeCount() != 1 || g.EdgeCount() != 0 {
		t.Errorf("got %d nodes %d edges, want 1 and 0", g.NodeCount(), g.EdgeCount())
	}
	if iso := g.Isolates(); len(iso) != 1 || iso[0] != "solo" {
		t.Errorf("Isolates = %v, want [solo]", iso)
	}
}

func TestCountBigrams(t *testing.T) {
	tokens := []string{"a", "b", "a", "b", "a"}

	directed := CountBigrams(tokens, true)
	if directed.EdgeCount() != 2 {
		t.Fatalf("directed EdgeCount = %d, want 2", directed.EdgeCount())
	}
	for _, e := range directed.Edges() {
		if e.Attrs["weight"] != 2 {
			t.Errorf("weight(%v->%v) = %v, want 2", e.From, e.To, e.Attrs["weight"])
		}
	}

	undirected := CountBigrams(tokens, false)
	if undirected.EdgeCount() != 1 {
		t.Fatalf("undirected EdgeCount = %d, want 1", undirected.EdgeCount())
	}
	if w := undirected.Edges()[0].Attrs["weight"]; w != 4 {
		t.Errorf("weight = %v, want 4", w)
	}
}
