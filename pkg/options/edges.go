package options

// EdgeOptions are the global edge rendering settings.
type EdgeOptions struct {
	Color string
	// Inherit is nil until InheritEdgeColors is called. Once set, the color
	// is serialized as an object carrying both fields.
	Inherit *bool
	Smooth  Smooth
}

// Smooth configures curved edges.
type Smooth struct {
	Enabled bool
	Type    string
}

// DefaultEdgeOptions returns black, dynamically smoothed edges.
func DefaultEdgeOptions() EdgeOptions {
	return EdgeOptions{
		Color:  "#000000",
		Smooth: Smooth{Enabled: true, Type: "dynamic"},
	}
}

func (e EdgeOptions) document() map[string]any {
	var color any = e.Color
	if e.Inherit != nil {
		color = map[string]any{"color": e.Color, "inherit": *e.Inherit}
	}
	return map[string]any{
		"color": color,
		"smooth": map[string]any{
			"enabled": e.Smooth.Enabled,
			"type":    e.Smooth.Type,
		},
	}
}

// Interaction holds the drag/hide behavior of the canvas.
type Interaction struct {
	HideEdgesOnDrag bool
	HideNodesOnDrag bool
	DragNodes       bool
}

// DefaultInteraction allows dragging nodes and hides nothing.
func DefaultInteraction() Interaction {
	return Interaction{DragNodes: true}
}

func (i Interaction) document() map[string]any {
	return map[string]any{
		"hideEdgesOnDrag": i.HideEdgesOnDrag,
		"hideNodesOnDrag": i.HideNodesOnDrag,
		"dragNodes":       i.DragNodes,
	}
}

// Configure controls the engine's settings panel.
type Configure struct {
	Enabled bool
	Filter  []string
}

func (c Configure) document() map[string]any {
	doc := map[string]any{"enabled": c.Enabled}
	if len(c.Filter) > 0 {
		doc["filter"] = c.Filter
	}
	return doc
}
