// Package config loads rendering settings from TOML or YAML files.
//
// A file only needs the keys it changes; everything else keeps the values
// from [Default], which mirror the stock speech-graph rendering:
//
//	[network]
//	heading = "Session 12"
//	keywords = ["hijo", "semana"]
//
//	[physics.barnes_hut]
//	gravity = -30000
//	spring_length = 120
//
//	[edges]
//	smooth_type = "continuous"
//
// [Config.Build] turns a loaded configuration into a ready [network.Network].
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	terrors "github.com/matzehuels/textgraph/pkg/errors"
	"github.com/matzehuels/textgraph/pkg/network"
	"github.com/matzehuels/textgraph/pkg/options"
)

// Config is the full set of rendering settings.
type Config struct {
	Network   NetworkConfig   `toml:"network" yaml:"network"`
	Physics   PhysicsConfig   `toml:"physics" yaml:"physics"`
	Layout    LayoutConfig    `toml:"layout" yaml:"layout"`
	Edges     EdgeConfig      `toml:"edges" yaml:"edges"`
	Import    ImportConfig    `toml:"import" yaml:"import"`
	Configure ConfigureConfig `toml:"configure" yaml:"configure"`

	// Options, when set, replaces the generated option tree verbatim. It
	// accepts either a JSON object or "var options = {...}".
	Options string `toml:"options" yaml:"options"`
}

// NetworkConfig maps onto [network.Config].
type NetworkConfig struct {
	Height       string   `toml:"height" yaml:"height" validate:"required,csslength"`
	Width        string   `toml:"width" yaml:"width" validate:"required,csslength"`
	BGColor      string   `toml:"bgcolor" yaml:"bgcolor" validate:"required"`
	Heading      string   `toml:"heading" yaml:"heading"`
	Directed     bool     `toml:"directed" yaml:"directed"`
	NodeColor    string   `toml:"node_color" yaml:"node_color" validate:"required"`
	KeywordColor string   `toml:"keyword_color" yaml:"keyword_color" validate:"required"`
	FontColor    string   `toml:"font_color" yaml:"font_color"`
	FontSize     float64  `toml:"font_size" yaml:"font_size" validate:"gt=0"`
	NodeSize     float64  `toml:"node_size" yaml:"node_size" validate:"gt=0"`
	EdgeWidth    float64  `toml:"edge_width" yaml:"edge_width" validate:"gt=0"`
	KeyWeight    float64  `toml:"key_weight" yaml:"key_weight" validate:"gt=0"`
	Keywords     []string `toml:"keywords" yaml:"keywords" validate:"dive,required"`
}

// PhysicsConfig controls the simulation.
type PhysicsConfig struct {
	Enabled       bool `toml:"enabled" yaml:"enabled"`
	Stabilization bool `toml:"stabilization" yaml:"stabilization"`
	// BarnesHut switches the solver parameters when present.
	BarnesHut *options.BarnesHut `toml:"barnes_hut" yaml:"barnes_hut"`
}

// LayoutConfig attaches a hierarchical layout.
type LayoutConfig struct {
	Hierarchical     bool    `toml:"hierarchical" yaml:"hierarchical"`
	Separation       float64 `toml:"separation" yaml:"separation" validate:"gte=0"`
	TreeSpacing      float64 `toml:"tree_spacing" yaml:"tree_spacing" validate:"gte=0"`
	EdgeMinimization bool    `toml:"edge_minimization" yaml:"edge_minimization"`
}

// EdgeConfig styles every edge.
type EdgeConfig struct {
	Color      string `toml:"color" yaml:"color" validate:"required"`
	Inherit    bool   `toml:"inherit" yaml:"inherit"`
	Smooth     bool   `toml:"smooth" yaml:"smooth"`
	SmoothType string `toml:"smooth_type" yaml:"smooth_type" validate:"oneof=dynamic continuous discrete diagonalCross straightCross horizontal vertical curvedCW curvedCCW cubicBezier"`
}

// ImportConfig selects the transforms used by [network.Network.ImportGraph].
type ImportConfig struct {
	SizeTransform   string `toml:"size_transform" yaml:"size_transform" validate:"oneof=identity sqrt log"`
	WeightTransform string `toml:"weight_transform" yaml:"weight_transform" validate:"oneof=identity sqrt log"`
	EdgeScaling     bool   `toml:"edge_scaling" yaml:"edge_scaling"`
}

// ConfigureConfig shows the engine's live settings panel.
type ConfigureConfig struct {
	Enabled bool     `toml:"enabled" yaml:"enabled"`
	Filter  []string `toml:"filter" yaml:"filter"`
}

// Default returns the stock settings.
func Default() Config {
	lay := options.DefaultLayout()
	edges := options.DefaultEdgeOptions()
	return Config{
		Network: NetworkConfig{
			Height:       "1050px",
			Width:        "100%",
			BGColor:      "white",
			Directed:     true,
			NodeColor:    "#FF0000",
			KeywordColor: "#FF0000",
			FontColor:    "#222222",
			FontSize:     30,
			NodeSize:     18,
			EdgeWidth:    2,
			KeyWeight:    1.2,
		},
		Physics: PhysicsConfig{
			Enabled:       true,
			Stabilization: true,
		},
		Layout: LayoutConfig{
			Separation:       lay.Hierarchical.LevelSeparation,
			TreeSpacing:      lay.Hierarchical.TreeSpacing,
			EdgeMinimization: lay.Hierarchical.EdgeMinimization,
		},
		Edges: EdgeConfig{
			Color:      edges.Color,
			Smooth:     edges.Smooth.Enabled,
			SmoothType: edges.Smooth.Type,
		},
		Import: ImportConfig{
			SizeTransform:   "identity",
			WeightTransform: "identity",
		},
	}
}

var (
	validate = newValidator()

	cssLength = regexp.MustCompile(`^\d+(\.\d+)?(px|%|em|rem|vh|vw)?$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("csslength", func(fl validator.FieldLevel) bool {
		return cssLength.MatchString(fl.Field().String())
	})
	return v
}

// Load reads path on top of [Default]. The format follows the extension:
// .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := Decode(data, format)
	if err != nil {
		return Config{}, terrors.Wrap(terrors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return cfg, nil
}

// Decode parses data in the given format ("toml", "yaml" or "yml") on top of
// [Default] and validates the result. Unknown keys are rejected.
func Decode(data []byte, format string) (Config, error) {
	cfg := Default()
	switch format {
	case "toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, terrors.Wrap(terrors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, terrors.New(terrors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, terrors.Wrap(terrors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return Config{}, terrors.New(terrors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and the raw options string.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Options != "" {
		if _, err := options.ParseRaw(c.Options); err != nil {
			return terrors.Wrap(terrors.ErrCodeInvalidConfig, err, "options")
		}
	}
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return terrors.Wrap(terrors.ErrCodeInvalidConfig, err, "validate")
	}
	e := verrs[0]
	field := strings.ToLower(strings.TrimPrefix(e.Namespace(), "Config."))
	switch e.Tag() {
	case "required":
		return terrors.New(terrors.ErrCodeInvalidConfig, "%s: field is required", field)
	case "gt":
		return terrors.New(terrors.ErrCodeInvalidConfig, "%s: must be greater than %s", field, e.Param())
	case "gte":
		return terrors.New(terrors.ErrCodeInvalidConfig, "%s: must be at least %s", field, e.Param())
	case "oneof":
		return terrors.New(terrors.ErrCodeInvalidConfig, "%s: must be one of [%s], got %q", field, e.Param(), e.Value())
	case "csslength":
		return terrors.New(terrors.ErrCodeInvalidConfig, "%s: %q is not a CSS length", field, e.Value())
	default:
		return terrors.New(terrors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}

// NetworkConfig converts the registry section.
func (c Config) NetworkConfig() network.Config {
	n := c.Network
	keywords := make([]network.ID, len(n.Keywords))
	for i, k := range n.Keywords {
		keywords[i] = k
	}
	return network.Config{
		Height:       n.Height,
		Width:        n.Width,
		BGColor:      n.BGColor,
		Heading:      n.Heading,
		Directed:     n.Directed,
		NodeColor:    n.NodeColor,
		KeywordColor: n.KeywordColor,
		FontColor:    n.FontColor,
		FontSize:     n.FontSize,
		NodeSize:     n.NodeSize,
		EdgeWidth:    n.EdgeWidth,
		KeyWeight:    n.KeyWeight,
		Keywords:     keywords,
		Layout:       c.Layout.Hierarchical,
	}
}

// ImportOptions converts the import section.
func (c Config) ImportOptions() network.ImportOptions {
	return network.ImportOptions{
		SizeTransform:   Transform(c.Import.SizeTransform),
		WeightTransform: Transform(c.Import.WeightTransform),
		EdgeScaling:     c.Import.EdgeScaling,
	}
}

// Transform resolves a transform name. Unknown names resolve to identity.
func Transform(name string) network.Transform {
	switch name {
	case "sqrt":
		return math.Sqrt
	case "log":
		return math.Log1p
	default:
		return network.Identity
	}
}

// Apply runs the option mutators for the physics, layout, edge and configure
// sections. Layout settings only take effect when o carries a layout.
func (c Config) Apply(o *options.Options) {
	o.Physics.Enabled = c.Physics.Enabled
	o.ToggleStabilization(c.Physics.Stabilization)
	if c.Physics.BarnesHut != nil {
		o.UseBarnesHut(*c.Physics.BarnesHut)
	}

	o.SetSeparation(c.Layout.Separation)
	o.SetTreeSpacing(c.Layout.TreeSpacing)
	o.SetEdgeMinimization(c.Layout.EdgeMinimization)

	o.SetEdgeColor(c.Edges.Color)
	if c.Edges.Inherit {
		o.InheritEdgeColors(true)
	}
	o.ToggleSmooth(c.Edges.Smooth)
	o.SetSmoothType(c.Edges.SmoothType)

	if c.Configure.Enabled {
		o.ShowConfigure(c.Configure.Filter...)
	}
}

// Build creates a network from the configuration.
func (c Config) Build() (*network.Network, error) {
	n, err := network.New(c.NetworkConfig())
	if err != nil {
		return nil, err
	}
	c.Apply(n.Options())
	if c.Options != "" {
		if err := n.SetRawOptions(c.Options); err != nil {
			return nil, err
		}
	}
	return n, nil
}
