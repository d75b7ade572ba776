package network

import (
	"math"
	"reflect"

	terrors "github.com/matzehuels/textgraph/pkg/errors"
)

// Transform maps a numeric node size or edge weight to its rendered value.
type Transform func(float64) float64

// Identity returns x unchanged.
func Identity(x float64) float64 { return x }

// ImportOptions controls how [Network.ImportGraph] fills in missing sizes
// and weights.
type ImportOptions struct {
	// SizeTransform is applied once to each node size. The result is
	// truncated to an integer. Defaults to Identity.
	SizeTransform Transform
	// WeightTransform is applied to the "weight" of each edge that has
	// neither "width" nor "value". Defaults to Identity.
	WeightTransform Transform
	// DefaultNodeSize is used for nodes without a "size". Zero means the
	// registry node size.
	DefaultNodeSize float64
	// DefaultEdgeWeight is used for edges without a "weight". Zero means the
	// registry edge width.
	DefaultEdgeWeight float64
	// EdgeScaling writes the transformed weight to "value" so the engine
	// scales edges relative to each other, instead of to "width".
	EdgeScaling bool
}

func (o ImportOptions) withDefaults(n *Network) ImportOptions {
	if o.SizeTransform == nil {
		o.SizeTransform = Identity
	}
	if o.WeightTransform == nil {
		o.WeightTransform = Identity
	}
	if o.DefaultNodeSize == 0 {
		o.DefaultNodeSize = n.cfg.NodeSize
	}
	if o.DefaultEdgeWeight == 0 {
		o.DefaultEdgeWeight = n.cfg.EdgeWidth
	}
	return o
}

// ImportGraph adds every node and edge of g.
//
// Edges are walked in order. Both endpoints are added first, with their
// declared attributes and a size run through SizeTransform (DefaultNodeSize
// when absent) and truncated to an int. An edge carrying neither "width" nor
// "value" gets its "weight" (DefaultEdgeWeight when absent) run through
// WeightTransform and renamed to "width", or to "value" when EdgeScaling is set. Isolates are
// added last, with DefaultNodeSize truncated to an int when they declare no
// size. A transform result that is NaN, infinite or out of int range is an
// INVALID_ATTRIBUTE error.
//
// The attribute maps of g are never modified. Identifiers and numeric
// attributes are checked before the registry is touched, so an error leaves
// it unchanged.
func (n *Network) ImportGraph(g Graph, opts ImportOptions) error {
	if g == nil || (reflect.ValueOf(g).Kind() == reflect.Pointer && reflect.ValueOf(g).IsNil()) {
		return terrors.New(terrors.ErrCodeInvalidGraph, "graph is nil")
	}
	opts = opts.withDefaults(n)

	declared := make(map[ID]Attrs)
	for _, nd := range g.Nodes() {
		if !ValidID(nd.ID) {
			return invalidID(nd.ID)
		}
		if err := checkNumeric(nd.ID, nd.Attrs, "size"); err != nil {
			return err
		}
		declared[nd.ID] = nd.Attrs
	}
	edges := g.Edges()
	for _, e := range edges {
		if !ValidID(e.From) {
			return invalidID(e.From)
		}
		if !ValidID(e.To) {
			return invalidID(e.To)
		}
		if err := checkNumeric([2]ID{e.From, e.To}, e.Attrs, "weight"); err != nil {
			return err
		}
	}
	isolates := g.Isolates()
	for _, id := range isolates {
		if !ValidID(id) {
			return invalidID(id)
		}
	}

	// Transformed sizes and weights are computed up front so a transform
	// producing NaN or infinity fails before the registry changes.
	sizes := make(map[ID]int)
	for _, e := range edges {
		for _, id := range [2]ID{e.From, e.To} {
			if _, ok := sizes[id]; ok || n.HasNode(id) {
				continue
			}
			size := opts.DefaultNodeSize
			if v, ok := declared[id]["size"]; ok {
				size, _ = toFloat(v)
			}
			t := opts.SizeTransform(size)
			if !finiteInt(t) {
				return terrors.New(terrors.ErrCodeInvalidAttribute, "size of %v transforms to %v", id, t)
			}
			sizes[id] = int(t)
		}
	}
	weights := make([]float64, len(edges))
	for i, e := range edges {
		weight := opts.DefaultEdgeWeight
		if v, ok := e.Attrs["weight"]; ok {
			weight, _ = toFloat(v)
		}
		t := opts.WeightTransform(weight)
		_, hasWidth := e.Attrs["width"]
		_, hasValue := e.Attrs["value"]
		if !hasWidth && !hasValue && (math.IsNaN(t) || math.IsInf(t, 0)) {
			return terrors.New(terrors.ErrCodeInvalidAttribute, "weight of %v -> %v transforms to %v", e.From, e.To, t)
		}
		weights[i] = t
	}

	addEndpoint := func(id ID) error {
		if n.HasNode(id) {
			return nil
		}
		attrs := declared[id].Clone()
		attrs["size"] = sizes[id]
		return n.AddNode(id, "", "", attrs)
	}

	for i, e := range edges {
		if err := addEndpoint(e.From); err != nil {
			return err
		}
		if err := addEndpoint(e.To); err != nil {
			return err
		}

		attrs := e.Attrs.Clone()
		_, hasWidth := attrs["width"]
		_, hasValue := attrs["value"]
		if !hasWidth && !hasValue {
			delete(attrs, "weight")
			key := "width"
			if opts.EdgeScaling {
				key = "value"
			}
			attrs[key] = weights[i]
		}
		if err := n.AddEdge(e.From, e.To, attrs); err != nil {
			return err
		}
	}

	for _, id := range isolates {
		if n.HasNode(id) {
			continue
		}
		attrs := declared[id].Clone()
		if _, ok := attrs["size"]; !ok {
			attrs["size"] = int(opts.DefaultNodeSize)
		}
		if err := n.AddNode(id, "", "", attrs); err != nil {
			return err
		}
	}
	return nil
}

// finiteInt reports whether f converts to int without loss of meaning.
func finiteInt(f float64) bool {
	return !math.IsNaN(f) && f >= math.MinInt64 && f < math.MaxInt64
}

func checkNumeric(owner any, attrs Attrs, key string) error {
	v, ok := attrs[key]
	if !ok {
		return nil
	}
	if _, ok := toFloat(v); !ok {
		return terrors.New(terrors.ErrCodeInvalidAttribute, "%s of %v is not numeric: %v", key, owner, v)
	}
	return nil
}

// toFloat converts any Go numeric value to float64.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return math.NaN(), false
}
