package options

// Physics holds the simulation settings.
type Physics struct {
	Enabled       bool
	Stabilization Stabilization
	// BarnesHut is nil until UseBarnesHut is called.
	BarnesHut *BarnesHut
}

// Stabilization controls the warm-up iterations run before first draw.
type Stabilization struct {
	Enabled          bool
	Iterations       int
	UpdateInterval   int
	OnlyDynamicEdges bool
	Fit              bool
}

// BarnesHut parameters. Field names follow the engine's option keys.
type BarnesHut struct {
	GravitationalConstant float64 `json:"gravitationalConstant" yaml:"gravity" toml:"gravity"`
	CentralGravity        float64 `json:"centralGravity" yaml:"central_gravity" toml:"central_gravity"`
	SpringLength          float64 `json:"springLength" yaml:"spring_length" toml:"spring_length"`
	SpringConstant        float64 `json:"springConstant" yaml:"spring_strength" toml:"spring_strength"`
	Damping               float64 `json:"damping" yaml:"damping" toml:"damping"`
	AvoidOverlap          float64 `json:"avoidOverlap" yaml:"overlap" toml:"overlap"`
}

// DefaultPhysics returns enabled physics with stabilization on and no solver
// override.
func DefaultPhysics() Physics {
	return Physics{
		Enabled: true,
		Stabilization: Stabilization{
			Enabled:        true,
			Iterations:     1000,
			UpdateInterval: 50,
			Fit:            true,
		},
	}
}

// DefaultBarnesHut returns the engine's standard Barnes-Hut constants.
func DefaultBarnesHut() BarnesHut {
	return BarnesHut{
		GravitationalConstant: -80000,
		CentralGravity:        0.3,
		SpringLength:          250,
		SpringConstant:        0.001,
		Damping:               0.09,
		AvoidOverlap:          0,
	}
}

func (p Physics) document() map[string]any {
	s := p.Stabilization
	doc := map[string]any{
		"enabled": p.Enabled,
		"stabilization": map[string]any{
			"enabled":          s.Enabled,
			"iterations":       s.Iterations,
			"updateInterval":   s.UpdateInterval,
			"onlyDynamicEdges": s.OnlyDynamicEdges,
			"fit":              s.Fit,
		},
	}
	if b := p.BarnesHut; b != nil {
		doc["barnesHut"] = map[string]any{
			"gravitationalConstant": b.GravitationalConstant,
			"centralGravity":        b.CentralGravity,
			"springLength":          b.SpringLength,
			"springConstant":        b.SpringConstant,
			"damping":               b.Damping,
			"avoidOverlap":          b.AvoidOverlap,
		}
	}
	return doc
}
