package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textgraph/pkg/config"
	"github.com/matzehuels/textgraph/pkg/emit"
	"github.com/matzehuels/textgraph/pkg/multigraph"
	"github.com/matzehuels/textgraph/pkg/pipeline"
	"github.com/matzehuels/textgraph/pkg/render"
)

// renderOpts holds the command-line flags for the render command. Network
// settings start from the config file (or the defaults) and are overridden
// only by flags the user actually set.
type renderOpts struct {
	configPath string
	output     string
	assets     string
	formats    string
	inputKind  string
	words      bool
	weighted   bool
	noCache    bool
	refresh    bool
	detailed   bool
	scale      float64
	repulsion  float32

	// overrides
	heading         string
	keywords        []string
	undirected      bool
	height          string
	width           string
	hierarchical    bool
	buttons         bool
	edgeScaling     bool
	sizeTransform   string
	weightTransform string
	rawOptions      string
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{output: defaultOutput, scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a token file or node-link graph to an interactive HTML document",
		Long: `Render builds the bigram graph of a token file (one token per line, or per
word with --words) or reads a node-link JSON graph, then writes the network
document and any additional artifacts.

Formats: html (default), echarts, svg, dot, json, png, pdf. Each artifact is
written next to --output with its own extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, &cfg, opts)
			if err := cfg.Validate(); err != nil {
				return err
			}
			formats := pipeline.ParseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cfg, formats, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (.toml, .yaml)")
	f.StringVarP(&opts.output, "output", "o", opts.output, "output document; other formats share its base name")
	f.StringVar(&opts.assets, "assets", "", "directory holding "+emit.EngineVersion+"/ with the released engine bundle")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): html (default), echarts, svg, dot, json, png, pdf (comma-separated)")
	f.StringVar(&opts.inputKind, "input", "", "input kind: tokens or graph (default: by extension)")
	f.BoolVar(&opts.words, "words", false, "split tokens on whitespace instead of lines")
	f.BoolVar(&opts.weighted, "weighted", false, "collapse repeated bigrams into one weighted edge")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	f.BoolVar(&opts.refresh, "refresh", false, "re-render even if artifacts are cached")
	f.BoolVar(&opts.detailed, "detailed", false, "list node attributes in dot/svg labels")
	f.Float64Var(&opts.scale, "scale", opts.scale, "png resolution multiplier")
	f.Float32Var(&opts.repulsion, "repulsion", 0, "node repulsion for the echarts page")

	f.StringVar(&opts.heading, "heading", "", "title shown above the canvas")
	f.StringSliceVarP(&opts.keywords, "keyword", "k", nil, "keyword node (repeatable)")
	f.BoolVar(&opts.undirected, "undirected", false, "build an undirected graph")
	f.StringVar(&opts.height, "height", "", "canvas height (CSS length)")
	f.StringVar(&opts.width, "width", "", "canvas width (CSS length)")
	f.BoolVar(&opts.hierarchical, "hierarchical", false, "use a hierarchical layout")
	f.BoolVar(&opts.buttons, "buttons", false, "show the engine's settings panel")
	f.BoolVar(&opts.edgeScaling, "edge-scaling", false, "scale edges relative to each other by weight")
	f.StringVar(&opts.sizeTransform, "size-transform", "", "node size transform: identity, sqrt, log")
	f.StringVar(&opts.weightTransform, "weight-transform", "", "edge weight transform: identity, sqrt, log")
	f.StringVar(&opts.rawOptions, "options", "", "raw engine options (JSON or \"var options = {...}\")")

	return cmd
}

// applyFlagOverrides copies every explicitly set flag into cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, opts renderOpts) {
	set := cmd.Flags().Changed
	if set("heading") {
		cfg.Network.Heading = opts.heading
	}
	if set("keyword") {
		cfg.Network.Keywords = opts.keywords
	}
	if set("undirected") {
		cfg.Network.Directed = !opts.undirected
	}
	if set("height") {
		cfg.Network.Height = opts.height
	}
	if set("width") {
		cfg.Network.Width = opts.width
	}
	if set("hierarchical") {
		cfg.Layout.Hierarchical = opts.hierarchical
	}
	if set("buttons") {
		cfg.Configure.Enabled = opts.buttons
	}
	if set("edge-scaling") {
		cfg.Import.EdgeScaling = opts.edgeScaling
	}
	if set("size-transform") {
		cfg.Import.SizeTransform = opts.sizeTransform
	}
	if set("weight-transform") {
		cfg.Import.WeightTransform = opts.weightTransform
	}
	if set("options") {
		cfg.Options = opts.rawOptions
	}
}

// needsGraphviz reports whether any format goes through the Graphviz renderer.
func needsGraphviz(formats []string) bool {
	return slices.ContainsFunc(formats, func(f string) bool {
		return f == pipeline.FormatSVG || f == pipeline.FormatPNG || f == pipeline.FormatPDF
	})
}

// needsConverter reports whether any format is produced by rsvg-convert.
func needsConverter(formats []string) bool {
	return slices.Contains(formats, pipeline.FormatPNG) || slices.Contains(formats, pipeline.FormatPDF)
}

func (c *CLI) runRender(ctx context.Context, input string, cfg config.Config, formats []string, opts renderOpts) error {
	if needsConverter(formats) && !render.HasConverter() {
		return render.ErrNoConverter
	}

	runner, err := c.newRunner(opts.noCache, opts.assets)
	if err != nil {
		return err
	}
	defer runner.Close()
	if slices.Contains(formats, pipeline.FormatHTML) {
		if offline, err := runner.Emitter.Offline(); err != nil {
			return err
		} else if !offline {
			c.Logger.Warn("engine bundle loads vis-network remotely; pass --assets for offline documents", "engine", emit.EngineVersion)
		}
	}

	split := multigraph.SplitLines
	if opts.words {
		split = multigraph.SplitWords
	}

	var spinner *Spinner
	if needsGraphviz(formats) {
		spinner = newSpinnerWithContext(ctx, "Rendering with Graphviz...")
		spinner.Start()
	}

	done := timed(c.Logger, "rendered")
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:     input,
		InputKind: opts.inputKind,
		Split:     split,
		Weighted:  opts.weighted,
		Config:    cfg,
		Formats:   formats,
		Detailed:  opts.detailed,
		Scale:     opts.scale,
		Repulsion: opts.repulsion,
		Refresh:   opts.refresh,
		Logger:    c.Logger,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	paths, err := runner.WriteArtifacts(result.Artifacts, opts.output)
	if err != nil {
		return err
	}
	done("input", input, "artifacts", len(paths))

	printSuccess("Rendered %s", StyleHighlight.Render(input))
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	if html := pipeline.OutputPath(opts.output, pipeline.FormatHTML); slices.Contains(paths, html) {
		printNewline()
		printNextStep("Preview", fmt.Sprintf("%s preview %s", appName, quoteArg(html)))
	}
	return nil
}

// quoteArg quotes s for a shell if it contains spaces.
func quoteArg(s string) string {
	if strings.ContainsAny(s, " \t") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
