package multigraph

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/textgraph/pkg/network"
)

// SplitMode selects how ReadTokens cuts its input.
type SplitMode int

const (
	// SplitLines yields one token per non-blank line.
	SplitLines SplitMode = iota
	// SplitWords yields one token per whitespace separated word.
	SplitWords
)

// ReadTokens reads tokens from r. Surrounding whitespace is trimmed and blank
// tokens are skipped.
func ReadTokens(r io.Reader, mode SplitMode) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if mode == SplitWords {
		sc.Split(bufio.ScanWords)
	}
	var tokens []string
	for sc.Scan() {
		tok := strings.TrimSpace(sc.Text())
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}
	return tokens, nil
}

// Bigrams returns each adjacent pair of tokens.
func Bigrams(tokens []string) [][2]string {
	if len(tokens) < 2 {
		return nil
	}
	out := make([][2]string, 0, len(tokens)-1)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, [2]string{tokens[i], tokens[i+1]})
	}
	return out
}

// FromTokens builds the bigram multigraph of tokens. Every distinct token
// becomes a node and every bigram an edge, repeats included.
func FromTokens(tokens []string, directed bool) *MultiGraph {
	g := New(directed)
	for _, tok := range tokens {
		_ = g.AddNode(tok, nil)
	}
	for _, b := range Bigrams(tokens) {
		_ = g.AddEdge(b[0], b[1], nil)
	}
	return g
}

// CountBigrams is like FromTokens but collapses repeated bigrams into one
// edge whose "weight" is the number of occurrences. In undirected mode the
// pairs (a, b) and (b, a) are counted together.
func CountBigrams(tokens []string, directed bool) *MultiGraph {
	g := New(directed)
	for _, tok := range tokens {
		_ = g.AddNode(tok, nil)
	}
	index := make(map[[2]string]int)
	for _, b := range Bigrams(tokens) {
		key := b
		if !directed && key[1] < key[0] {
			key[0], key[1] = key[1], key[0]
		}
		if i, ok := index[key]; ok {
			g.edges[i].Attrs["weight"] = g.edges[i].Attrs["weight"].(int) + 1
			continue
		}
		index[key] = len(g.edges)
		_ = g.AddEdge(b[0], b[1], network.Attrs{"weight": 1})
	}
	return g
}
