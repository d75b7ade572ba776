// Package style maps node identifiers to their visual emphasis.
//
// Keyword nodes are drawn larger and in the keyword color so a reader can
// spot them without a legend; every other node is slightly shrunk.
package style

// Scale factors applied to the base sizes.
const (
	KeywordSize   = 1.2
	RegularSize   = 0.9
	RegularFont   = 0.9
	DefaultWeight = 1.5
)

// Base holds the registry-wide defaults a style is derived from.
type Base struct {
	NodeColor    string
	KeywordColor string
	NodeSize     float64
	FontSize     float64
	// KeywordWeight multiplies FontSize for keyword nodes. Zero means
	// DefaultWeight.
	KeywordWeight float64
}

// Style is the computed appearance of a single node.
type Style struct {
	Color    string
	Size     float64
	FontSize float64
	Keyword  bool
}

// Node computes the style for id. keywords may be nil.
func Node(id any, keywords map[any]struct{}, base Base) Style {
	if _, ok := keywords[id]; ok {
		return Keyword(base)
	}
	return Regular(base)
}

// Keyword returns the emphasized style.
func Keyword(base Base) Style {
	w := base.KeywordWeight
	if w == 0 {
		w = DefaultWeight
	}
	return Style{
		Color:    base.KeywordColor,
		Size:     base.NodeSize * KeywordSize,
		FontSize: base.FontSize * w,
		Keyword:  true,
	}
}

// Regular returns the de-emphasized style.
func Regular(base Base) Style {
	return Style{
		Color:    base.NodeColor,
		Size:     base.NodeSize * RegularSize,
		FontSize: base.FontSize * RegularFont,
	}
}
