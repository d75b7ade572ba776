// Package pipeline provides the load → build → render pipeline for textgraph.
//
// The CLI and embedding programs share this package so that a token file,
// a node-link graph file or an in-memory [network.Graph] all go through the
// same steps:
//
//  1. Load: read tokens or a node-link JSON graph into a multigraph
//  2. Build: create a network from the configuration and import the graph
//  3. Render: produce artifacts for the requested formats
//
// Rendered artifacts are cached by scene content, so re-running on an
// unchanged input skips the template and Graphviz work.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, emit.New(logger), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "sample.txt",
//	    Config:  config.Default(),
//	    Formats: []string{pipeline.FormatHTML, pipeline.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := runner.WriteArtifacts(result.Artifacts, "out/textgraph")
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textgraph/pkg/config"
	terrors "github.com/matzehuels/textgraph/pkg/errors"
	"github.com/matzehuels/textgraph/pkg/multigraph"
	"github.com/matzehuels/textgraph/pkg/network"
)

// Format constants for output formats.
const (
	FormatHTML    = "html"
	FormatECharts = "echarts"
	FormatSVG     = "svg"
	FormatDOT     = "dot"
	FormatJSON    = "json"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
)

// Input kinds.
const (
	InputTokens = "tokens"
	InputGraph  = "graph"
)

// DefaultScale is the PNG resolution multiplier.
const DefaultScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML:    true,
	FormatECharts: true,
	FormatSVG:     true,
	FormatDOT:     true,
	FormatJSON:    true,
	FormatPNG:     true,
	FormatPDF:     true,
}

// extensions maps a format to the suffix appended to the output base name.
var extensions = map[string]string{
	FormatHTML:    ".html",
	FormatECharts: ".echarts.html",
	FormatSVG:     ".svg",
	FormatDOT:     ".dot",
	FormatJSON:    ".json",
	FormatPNG:     ".png",
	FormatPDF:     ".pdf",
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options. Graph, when set, replaces Input.
	Input     string               `json:"input,omitempty"`
	InputKind string               `json:"input_kind,omitempty"` // tokens or graph; empty picks by extension
	Split     multigraph.SplitMode `json:"split,omitempty"`
	Weighted  bool                 `json:"weighted,omitempty"` // collapse repeated bigrams into weighted edges
	Graph     network.Graph        `json:"-"`

	// Build options
	Config config.Config `json:"-"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // DOT labels list every attribute
	Scale      float64  `json:"scale,omitempty"`
	Repulsion  float32  `json:"repulsion,omitempty"`
	EdgeLength float32  `json:"edge_length,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded input graph.
	Graph network.Graph

	// Network is the built registry.
	Network *network.Network

	// Scene is the snapshot handed to the renderers.
	Scene network.Scene

	// SceneHash is the content hash of the scene document.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return terrors.New(terrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: html, echarts, svg, dot, json, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, trimming blanks. An empty
// string yields html only.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{FormatHTML}
	}
	return out
}

// OutputPath returns where the artifact of format is written for base.
// A trailing ".html" on base is dropped first, so "out/graph.html" and
// "out/graph" name the same outputs.
func OutputPath(base, format string) string {
	base = strings.TrimSuffix(base, ".html")
	return base + extensions[format]
}

// ValidateAndSetDefaults checks the input source and formats and fills in
// defaults. The zero Config is replaced by config.Default.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Graph == nil && o.Input == "" {
		return terrors.New(terrors.ErrCodeInvalidGraph, "input or graph is required")
	}
	if o.InputKind == "" && o.Graph == nil {
		o.InputKind = InputTokens
		if strings.EqualFold(filepath.Ext(o.Input), ".json") {
			o.InputKind = InputGraph
		}
	}
	if o.Graph == nil && o.InputKind != InputTokens && o.InputKind != InputGraph {
		return terrors.New(terrors.ErrCodeInvalidGraph, "invalid input kind %q (must be tokens or graph)", o.InputKind)
	}
	if o.Config.Network.Height == "" {
		o.Config = config.Default()
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// artifactKeyOpts holds the render settings that change an artifact's bytes
// beyond the scene itself.
type artifactKeyOpts struct {
	Directed   bool    `json:"directed"`
	Detailed   bool    `json:"detailed,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Repulsion  float32 `json:"repulsion,omitempty"`
	EdgeLength float32 `json:"edge_length,omitempty"`
}

// ArtifactKeyOpts returns the cache key options for format. Only the settings
// a format actually reads are included.
func (o *Options) ArtifactKeyOpts(format string, directed bool) any {
	k := artifactKeyOpts{Directed: directed}
	switch format {
	case FormatSVG, FormatDOT, FormatPDF:
		k.Detailed = o.Detailed
	case FormatPNG:
		k.Detailed = o.Detailed
		k.Scale = o.Scale
	case FormatECharts:
		k.Repulsion = o.Repulsion
		k.EdgeLength = o.EdgeLength
	}
	return k
}
