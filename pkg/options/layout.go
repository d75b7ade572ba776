package options

// Layout holds the engine's layout settings.
type Layout struct {
	RandomSeed     int
	ImprovedLayout bool
	Hierarchical   Hierarchical
}

// Hierarchical configures the tree-like layout mode.
type Hierarchical struct {
	Enabled              bool
	LevelSeparation      float64
	TreeSpacing          float64
	BlockShifting        bool
	EdgeMinimization     bool
	ParentCentralization bool
	SortMethod           string
}

// DefaultLayout returns a layout with hierarchical mode enabled.
func DefaultLayout() Layout {
	return Layout{
		RandomSeed:     0,
		ImprovedLayout: true,
		Hierarchical: Hierarchical{
			Enabled:              true,
			LevelSeparation:      150,
			TreeSpacing:          200,
			BlockShifting:        true,
			EdgeMinimization:     true,
			ParentCentralization: true,
			SortMethod:           "hubsize",
		},
	}
}

func (l Layout) document() map[string]any {
	h := l.Hierarchical
	return map[string]any{
		"randomSeed":     l.RandomSeed,
		"improvedLayout": l.ImprovedLayout,
		"hierarchical": map[string]any{
			"enabled":              h.Enabled,
			"levelSeparation":      h.LevelSeparation,
			"treeSpacing":          h.TreeSpacing,
			"blockShifting":        h.BlockShifting,
			"edgeMinimization":     h.EdgeMinimization,
			"parentCentralization": h.ParentCentralization,
			"sortMethod":           h.SortMethod,
		},
	}
}
