// Package network builds the scene handed to the force-directed renderer.
//
// A [Network] accumulates nodes and edges in insertion order, applies the
// keyword styling policy from package style when nodes are added, and owns
// one option tree. Once built, [Network.Scene] flattens it into the document
// consumed by package emit and the static renderers.
//
// Identifiers are strings or Go integers. The caller's type is preserved:
// the string "7" and the int 7 are distinct nodes.
//
// A Network is not safe for concurrent mutation. Callers building graphs
// concurrently should partition the work and merge with sequential
// [Network.ImportGraph] calls.
package network

import (
	"fmt"
	"slices"
	"sort"

	terrors "github.com/matzehuels/textgraph/pkg/errors"
	"github.com/matzehuels/textgraph/pkg/options"
	"github.com/matzehuels/textgraph/pkg/style"
)

// ID identifies a node. Valid identifiers are strings and integers of any
// width; see [ValidID].
type ID = any

// Attrs is an open attribute bag for nodes and edges. Values are numbers,
// strings, booleans or nested maps. Keys the engine does not know about are
// passed through verbatim.
type Attrs map[string]any

// Clone returns a deep copy of a: nested maps and slices are copied too.
// A nil receiver yields an empty map.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case Attrs:
		if v == nil {
			return v
		}
		return v.Clone()
	case map[string]any:
		if v == nil {
			return v
		}
		return map[string]any(Attrs(v).Clone())
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// DefaultShape is the node shape used when none is given.
const DefaultShape = "dot"

// NodeArgs lists the attribute keys accepted by [Network.AddNodes].
var NodeArgs = []string{"size", "value", "title", "x", "y", "label", "color", "shape"}

// Config holds the registry-wide rendering parameters. Zero values are
// replaced by the defaults in [DefaultConfig].
type Config struct {
	Height  string // Canvas height, CSS units
	Width   string // Canvas width, CSS units
	BGColor string // Canvas background
	Heading string // Title rendered above the canvas

	// Directed fixes the registry mode. It cannot change after New.
	Directed bool

	NodeColor    string
	KeywordColor string
	// FontColor is the label color. Empty leaves it to the engine.
	FontColor string
	FontSize  float64
	NodeSize  float64
	EdgeWidth float64
	// KeyWeight multiplies the font size of keyword nodes.
	KeyWeight float64

	// Keywords are the identifiers drawn with emphasis.
	Keywords []ID

	// Layout attaches a hierarchical layout to the option tree.
	Layout bool
}

// DefaultConfig returns the stock rendering parameters.
func DefaultConfig() Config {
	return Config{
		Height:       "600px",
		Width:        "100%",
		BGColor:      "#ffffff",
		NodeColor:    "#FF0000",
		KeywordColor: "#FF0000",
		FontSize:     10,
		NodeSize:     40,
		EdgeWidth:    1,
		KeyWeight:    style.DefaultWeight,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Height == "" {
		c.Height = d.Height
	}
	if c.Width == "" {
		c.Width = d.Width
	}
	if c.BGColor == "" {
		c.BGColor = d.BGColor
	}
	if c.NodeColor == "" {
		c.NodeColor = d.NodeColor
	}
	if c.KeywordColor == "" {
		c.KeywordColor = d.KeywordColor
	}
	if c.FontSize == 0 {
		c.FontSize = d.FontSize
	}
	if c.NodeSize == 0 {
		c.NodeSize = d.NodeSize
	}
	if c.EdgeWidth == 0 {
		c.EdgeWidth = d.EdgeWidth
	}
	if c.KeyWeight == 0 {
		c.KeyWeight = d.KeyWeight
	}
	return c
}

// Network is the scene under construction.
//
// The zero value is not usable - use New.
type Network struct {
	cfg      Config
	nodes    []Attrs
	edges    []Attrs
	ids      []ID
	index    map[ID]Attrs
	keywords map[any]struct{}
	pairs    map[[2]ID]struct{} // undirected mode only
	opts     *options.Options
	raw      map[string]any
}

// New creates an empty registry. Keyword identifiers must be valid IDs.
func New(cfg Config) (*Network, error) {
	cfg = cfg.withDefaults()
	keywords := make(map[any]struct{}, len(cfg.Keywords))
	for _, k := range cfg.Keywords {
		if !ValidID(k) {
			return nil, invalidID(k)
		}
		keywords[k] = struct{}{}
	}
	cfg.Keywords = slices.Clone(cfg.Keywords)
	return &Network{
		cfg:      cfg,
		index:    make(map[ID]Attrs),
		keywords: keywords,
		pairs:    make(map[[2]ID]struct{}),
		opts:     options.New(cfg.Layout),
	}, nil
}

// ValidID reports whether id is a string or an integer.
func ValidID(id ID) bool {
	switch id.(type) {
	case string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func invalidID(id ID) error {
	return terrors.New(terrors.ErrCodeInvalidID, "node id %v of type %T is neither string nor integer", id, id)
}

// Config returns the effective configuration.
func (n *Network) Config() Config { return n.cfg }

// Directed reports the registry mode.
func (n *Network) Directed() bool { return n.cfg.Directed }

// Options returns the option tree. Mutating it affects the next Scene.
func (n *Network) Options() *options.Options { return n.opts }

// IsKeyword reports whether id is a designated keyword.
func (n *Network) IsKeyword(id ID) bool {
	_, ok := n.keywords[id]
	return ok
}

func (n *Network) base() style.Base {
	return style.Base{
		NodeColor:     n.cfg.NodeColor,
		KeywordColor:  n.cfg.KeywordColor,
		NodeSize:      n.cfg.NodeSize,
		FontSize:      n.cfg.FontSize,
		KeywordWeight: n.cfg.KeyWeight,
	}
}

func (n *Network) fontColor() any {
	if n.cfg.FontColor == "" {
		return false
	}
	return n.cfg.FontColor
}

// AddNode adds a node unless one with the same id already exists, in which
// case the call is a no-op and the first insertion wins.
//
// label defaults to the id and shape to [DefaultShape]. The keyword styling
// policy sets color, size and font; entries in overrides are applied on top
// and win. An "id" key in overrides is ignored. Returns an INVALID_ID error if
// id is neither a string nor an integer.
func (n *Network) AddNode(id ID, label, shape string, overrides Attrs) error {
	if !ValidID(id) {
		return invalidID(id)
	}
	if _, exists := n.index[id]; exists {
		return nil
	}

	st := style.Node(id, n.keywords, n.base())
	node := Attrs{
		"id":    id,
		"label": id,
		"shape": DefaultShape,
		"color": st.Color,
		"size":  st.Size,
		"font":  map[string]any{"color": n.fontColor(), "size": st.FontSize},
	}
	if label != "" {
		node["label"] = label
	}
	if shape != "" {
		node["shape"] = shape
	}
	for k, v := range overrides {
		if k == "id" {
			continue
		}
		node[k] = v
	}

	n.nodes = append(n.nodes, node)
	n.ids = append(n.ids, id)
	n.index[id] = node
	return nil
}

// AddNodes adds each id in order. attrs maps an attribute key from
// [NodeArgs] to one value per id.
//
// Every id, key and list length is checked before any node is added, so a
// failed call leaves the registry unchanged. A string id that looks like a
// number stays a string.
func (n *Network) AddNodes(ids []ID, attrs map[string][]any) error {
	for _, id := range ids {
		if !ValidID(id) {
			return invalidID(id)
		}
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !slices.Contains(NodeArgs, k) {
			return terrors.New(terrors.ErrCodeInvalidAttribute, "invalid arg %q", k)
		}
		if got := len(attrs[k]); got != len(ids) {
			return terrors.New(terrors.ErrCodeLengthMismatch,
				"keyword arg %s [length %d] does not match [length %d] of nodes", k, got, len(ids))
		}
	}

	for i, id := range ids {
		overrides := make(Attrs, len(keys))
		for _, k := range keys {
			overrides[k] = attrs[k][i]
		}
		if err := n.AddNode(id, "", "", overrides); err != nil {
			return err
		}
	}
	return nil
}

// AddEdge connects two existing nodes.
//
// Both endpoints must already be present; otherwise a NODE_NOT_FOUND error is
// returned and nothing changes. In undirected mode an edge between a pair
// that is already connected, in either direction, is silently skipped. In
// directed mode every call appends, and "arrows" defaults to "to".
//
// "width" defaults to the registry edge width. Caller attributes are copied
// and never retained.
func (n *Network) AddEdge(source, dest ID, attrs Attrs) error {
	for _, id := range []ID{source, dest} {
		if !ValidID(id) {
			return invalidID(id)
		}
		if _, ok := n.index[id]; !ok {
			return terrors.New(terrors.ErrCodeNodeNotFound, "non existent node '%v'", id)
		}
	}

	if !n.cfg.Directed {
		if _, ok := n.pairs[[2]ID{source, dest}]; ok {
			return nil
		}
		if _, ok := n.pairs[[2]ID{dest, source}]; ok {
			return nil
		}
	}

	edge := attrs.Clone()
	edge["from"] = source
	edge["to"] = dest
	if n.cfg.Directed {
		if _, ok := edge["arrows"]; !ok {
			edge["arrows"] = "to"
		}
	}
	if _, ok := edge["width"]; !ok {
		edge["width"] = n.cfg.EdgeWidth
	}

	n.edges = append(n.edges, edge)
	if !n.cfg.Directed {
		n.pairs[[2]ID{source, dest}] = struct{}{}
	}
	return nil
}

// Nodes returns the node attribute maps in insertion order.
// The slice is a copy; the maps are shared with the registry.
func (n *Network) Nodes() []Attrs { return slices.Clone(n.nodes) }

// Edges returns the edge attribute maps in insertion order.
// The slice is a copy; the maps are shared with the registry.
func (n *Network) Edges() []Attrs { return slices.Clone(n.edges) }

// NodeIDs returns the node identifiers in insertion order.
func (n *Network) NodeIDs() []ID { return slices.Clone(n.ids) }

// Node returns the attributes of the node with the given id.
func (n *Network) Node(id ID) (Attrs, bool) {
	if !ValidID(id) {
		return nil, false
	}
	a, ok := n.index[id]
	return a, ok
}

// HasNode reports whether id has been added.
func (n *Network) HasNode(id ID) bool {
	_, ok := n.Node(id)
	return ok
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.nodes) }

// EdgeCount returns the number of edges.
func (n *Network) EdgeCount() int { return len(n.edges) }

// UseBarnesHut activates the Barnes-Hut solver on the option tree.
func (n *Network) UseBarnesHut(p options.BarnesHut) { n.opts.UseBarnesHut(p) }

// SetRawOptions replaces the typed option tree in the serialized scene with
// a user supplied options document; see [options.ParseRaw].
func (n *Network) SetRawOptions(s string) error {
	doc, err := options.ParseRaw(s)
	if err != nil {
		return err
	}
	n.raw = doc
	return nil
}

// String returns a JSON debug summary of the registry.
func (n *Network) String() string {
	s, err := n.Scene()
	if err != nil {
		return fmt.Sprintf("network(%d nodes, %d edges)", len(n.nodes), len(n.edges))
	}
	return s.String()
}
