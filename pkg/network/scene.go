package network

import (
	"encoding/json"
	"slices"
	"strings"

	terrors "github.com/matzehuels/textgraph/pkg/errors"
	"github.com/matzehuels/textgraph/pkg/options"
)

// Scene is the read-only snapshot of a [Network] handed to renderers.
type Scene struct {
	Nodes   []Attrs
	Edges   []Attrs
	Heading string
	Height  string
	Width   string
	BGColor string
	// Options is the serialized option tree: sorted keys, 4-space indent.
	Options string
	// Directed picks the graph kind for static renderers. It is encoded as
	// the "directed" key of the document.
	Directed bool
}

// Scene flattens the registry. Node and edge maps are deep-copied, so later
// mutations of the Network do not leak into the returned value.
func (n *Network) Scene() (Scene, error) {
	var (
		opts string
		err  error
	)
	if n.raw != nil {
		opts, err = options.MarshalDocument(n.raw)
	} else {
		opts, err = n.opts.JSON()
	}
	if err != nil {
		return Scene{}, err
	}
	return Scene{
		Nodes:    cloneAll(n.nodes),
		Edges:    cloneAll(n.edges),
		Heading:  n.cfg.Heading,
		Height:   n.cfg.Height,
		Width:    n.cfg.Width,
		BGColor:  n.cfg.BGColor,
		Options:  opts,
		Directed: n.cfg.Directed,
	}, nil
}

func cloneAll(in []Attrs) []Attrs {
	out := make([]Attrs, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

// document is the wire form of a Scene.
type document struct {
	Nodes   []Attrs         `json:"nodes"`
	Edges   []Attrs         `json:"edges"`
	Options json.RawMessage `json:"options"`
	Height  string          `json:"height"`
	Width   string          `json:"width"`
	Heading string          `json:"heading"`
	BGColor string          `json:"bgcolor"`
	// Directed is a pointer so documents without the key can be told apart.
	Directed *bool `json:"directed,omitempty"`
}

// MarshalJSON encodes the scene as the document embedded in emitted pages.
func (s Scene) MarshalJSON() ([]byte, error) {
	opts := s.Options
	if opts == "" {
		opts = "{}"
	}
	nodes, edges := s.Nodes, s.Edges
	if nodes == nil {
		nodes = []Attrs{}
	}
	if edges == nil {
		edges = []Attrs{}
	}
	return json.Marshal(document{
		Nodes:    nodes,
		Edges:    edges,
		Options:  json.RawMessage(opts),
		Height:   s.Height,
		Width:    s.Width,
		Heading:  s.Heading,
		BGColor:  s.BGColor,
		Directed: &s.Directed,
	})
}

// UnmarshalJSON decodes a document produced by MarshalJSON. Numbers decode
// as float64. A document without a "directed" key is directed when any edge
// carries "arrows".
func (s *Scene) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return terrors.Wrap(terrors.ErrCodeInvalidGraph, err, "decode scene")
	}
	opts := "{}"
	if len(doc.Options) > 0 {
		var parsed map[string]any
		if err := json.Unmarshal(doc.Options, &parsed); err != nil {
			return terrors.Wrap(terrors.ErrCodeInvalidOptions, err, "decode scene options")
		}
		var err error
		if opts, err = options.MarshalDocument(parsed); err != nil {
			return err
		}
	}
	*s = Scene{
		Nodes:   doc.Nodes,
		Edges:   doc.Edges,
		Heading: doc.Heading,
		Height:  doc.Height,
		Width:   doc.Width,
		BGColor: doc.BGColor,
		Options: opts,
	}
	if doc.Directed != nil {
		s.Directed = *doc.Directed
		return nil
	}
	for _, e := range s.Edges {
		if _, ok := e["arrows"]; ok {
			s.Directed = true
			break
		}
	}
	return nil
}

// NodeIDs returns the node identifiers in render order.
func (s Scene) NodeIDs() []ID {
	ids := make([]ID, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		ids = append(ids, n["id"])
	}
	return ids
}

// HasLinkTitles reports whether any node title contains an HTML link.
func (s Scene) HasLinkTitles() bool {
	return slices.ContainsFunc(s.Nodes, func(n Attrs) bool {
		title, ok := n["title"].(string)
		return ok && strings.Contains(title, "href")
	})
}

// String returns an indented JSON debug summary.
func (s Scene) String() string {
	data, err := json.MarshalIndent(map[string]any{
		"Nodes":   s.NodeIDs(),
		"Edges":   s.Edges,
		"Height":  s.Height,
		"Width":   s.Width,
		"Heading": s.Heading,
	}, "", "    ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
