// Package options models the configuration tree handed to the client-side
// force-directed engine.
//
// The tree is a set of typed records (layout, physics, interaction, edges,
// configure panel) with named mutators. [Options.Document] converts it to the
// nested map the engine consumes and [Options.JSON] serializes that map with
// sorted keys and fixed indentation, so identical configurations always yield
// identical bytes.
//
// No mutator validates ranges. Out-of-range physics constants are passed to
// the engine unchanged.
package options

import (
	"encoding/json"
	"fmt"
	"strings"

	terrors "github.com/matzehuels/textgraph/pkg/errors"
)

// Indent is the per-level indentation used by [Options.JSON].
const Indent = "    "

// Options is the root of the configuration tree.
type Options struct {
	// Layout is nil unless a layout was requested at construction. A nil
	// layout is omitted from the document entirely.
	Layout      *Layout
	Physics     Physics
	Interaction Interaction
	Edges       EdgeOptions
	Configure   Configure
}

// New returns the default tree. withLayout attaches an enabled hierarchical
// layout.
func New(withLayout bool) *Options {
	o := &Options{
		Physics:     DefaultPhysics(),
		Interaction: DefaultInteraction(),
		Edges:       DefaultEdgeOptions(),
	}
	if withLayout {
		l := DefaultLayout()
		o.Layout = &l
	}
	return o
}

// ToggleStabilization enables or disables physics stabilization.
func (o *Options) ToggleStabilization(enabled bool) {
	o.Physics.Stabilization.Enabled = enabled
}

// UseBarnesHut activates the Barnes-Hut solver with the given parameters.
// There is no way to deactivate it again on the same tree.
func (o *Options) UseBarnesHut(p BarnesHut) {
	o.Physics.BarnesHut = &p
}

// SetSeparation sets the hierarchical level separation. No-op without a layout.
func (o *Options) SetSeparation(distance float64) {
	if o.Layout != nil {
		o.Layout.Hierarchical.LevelSeparation = distance
	}
}

// SetTreeSpacing sets the hierarchical tree spacing. No-op without a layout.
func (o *Options) SetTreeSpacing(distance float64) {
	if o.Layout != nil {
		o.Layout.Hierarchical.TreeSpacing = distance
	}
}

// SetEdgeMinimization toggles hierarchical edge minimization. No-op without a
// layout.
func (o *Options) SetEdgeMinimization(enabled bool) {
	if o.Layout != nil {
		o.Layout.Hierarchical.EdgeMinimization = enabled
	}
}

// SetEdgeColor sets the global edge color.
func (o *Options) SetEdgeColor(color string) {
	o.Edges.Color = color
}

// InheritEdgeColors toggles edge color inheritance from the endpoints.
func (o *Options) InheritEdgeColors(inherit bool) {
	o.Edges.Inherit = &inherit
}

// SetSmoothType sets the edge smoothing type ("dynamic", "continuous", ...).
func (o *Options) SetSmoothType(kind string) {
	o.Edges.Smooth.Type = kind
}

// ToggleSmooth enables or disables edge smoothing.
func (o *Options) ToggleSmooth(enabled bool) {
	o.Edges.Smooth.Enabled = enabled
}

// ShowConfigure enables the engine's interactive settings panel, optionally
// restricted to the named sections.
func (o *Options) ShowConfigure(filter ...string) {
	o.Configure.Enabled = true
	if len(filter) > 0 {
		o.Configure.Filter = append([]string(nil), filter...)
	}
}

// Document converts the tree to the nested map consumed by the engine.
func (o *Options) Document() map[string]any {
	doc := map[string]any{
		"physics":     o.Physics.document(),
		"interaction": o.Interaction.document(),
		"edges":       o.Edges.document(),
		"configure":   o.Configure.document(),
	}
	if o.Layout != nil {
		doc["layout"] = o.Layout.document()
	}
	return doc
}

// JSON serializes the tree with sorted keys and 4-space indentation.
func (o *Options) JSON() (string, error) {
	return MarshalDocument(o.Document())
}

// MarshalDocument serializes an arbitrary options document the same way
// [Options.JSON] does.
func MarshalDocument(doc map[string]any) (string, error) {
	data, err := json.MarshalIndent(doc, "", Indent)
	if err != nil {
		return "", terrors.Wrap(terrors.ErrCodeInternal, err, "encode options")
	}
	return string(data), nil
}

// ParseRaw parses a user supplied options string such as the snippet the
// engine's configure panel exports (`var options = {...}`). Everything before
// the first '{' is ignored, as is anything after the closing brace.
func ParseRaw(s string) (map[string]any, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return nil, terrors.New(terrors.ErrCodeInvalidOptions, "no options object found")
	}
	var doc map[string]any
	dec := json.NewDecoder(strings.NewReader(s[start:]))
	if err := dec.Decode(&doc); err != nil {
		return nil, terrors.Wrap(terrors.ErrCodeInvalidOptions, err, "parse options")
	}
	return doc, nil
}

// String implements fmt.Stringer.
func (o *Options) String() string {
	return fmt.Sprint(o.Document())
}
