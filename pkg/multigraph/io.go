package multigraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	terrors "github.com/matzehuels/textgraph/pkg/errors"
	"github.com/matzehuels/textgraph/pkg/network"
)

type wireGraph struct {
	Directed bool       `json:"directed"`
	Nodes    []wireNode `json:"nodes"`
	Edges    []wireEdge `json:"edges"`
}

type wireNode struct {
	ID    any            `json:"id"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

type wireEdge struct {
	From  any            `json:"from"`
	To    any            `json:"to"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Marshal converts g to node-link JSON bytes.
func Marshal(g *MultiGraph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes g as node-link JSON to w.
func Write(g *MultiGraph, w io.Writer) error {
	out := wireGraph{
		Directed: g.directed,
		Nodes:    make([]wireNode, 0, len(g.order)),
		Edges:    make([]wireEdge, 0, len(g.edges)),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, wireNode{ID: n.ID, Attrs: n.Attrs})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, wireEdge{From: e.From, To: e.To, Attrs: e.Attrs})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes g to a JSON file with 0644 permissions.
func WriteFile(g *MultiGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := Write(g, f); err != nil {
		return err
	}
	return f.Close()
}

// Read decodes a node-link JSON graph.
func Read(r io.Reader) (*MultiGraph, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var data wireGraph
	if err := dec.Decode(&data); err != nil {
		return nil, terrors.Wrap(terrors.ErrCodeInvalidGraph, err, "decode graph")
	}

	g := New(data.Directed)
	for _, n := range data.Nodes {
		id, err := decodeID(n.ID)
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(id, normalizeAttrs(n.Attrs)); err != nil {
			return nil, err
		}
	}
	for _, e := range data.Edges {
		from, err := decodeID(e.From)
		if err != nil {
			return nil, err
		}
		to, err := decodeID(e.To)
		if err != nil {
			return nil, err
		}
		if err := g.AddEdge(from, to, normalizeAttrs(e.Attrs)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ReadFile reads a node-link JSON graph from path.
func ReadFile(path string) (*MultiGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func decodeID(v any) (network.ID, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), nil
		}
	}
	return nil, terrors.New(terrors.ErrCodeInvalidID, "node id %v is neither string nor integer", v)
}

func normalizeAttrs(m map[string]any) network.Attrs {
	if m == nil {
		return nil
	}
	out := make(network.Attrs, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

// normalize turns json.Number into int when integral and float64 otherwise.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		return map[string]any(normalizeAttrs(x))
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	}
	return v
}
