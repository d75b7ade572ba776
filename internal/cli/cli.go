// Package cli implements the textgraph command-line interface.
//
// # Commands
//
//   - render: Build a network from a token file or node-link graph and write
//     the HTML document plus any static artifacts
//   - tokens: Inspect the bigram graph of a token file, optionally exporting
//     it as node-link JSON
//   - preview: Serve a rendered document over HTTP
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// owned by [CLI] and handed to the pipeline and emitter.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/textgraph/pkg/buildinfo"
	"github.com/matzehuels/textgraph/pkg/cache"
	"github.com/matzehuels/textgraph/pkg/config"
	"github.com/matzehuels/textgraph/pkg/emit"
	terrors "github.com/matzehuels/textgraph/pkg/errors"
	"github.com/matzehuels/textgraph/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "textgraph"

	// defaultOutput is the base path of rendered artifacts.
	defaultOutput = "textgraph.html"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. Caller reporting follows debug.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportCaller(level <= log.DebugLevel)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Textgraph turns word co-occurrence graphs into interactive network views",
		Long:         `Textgraph builds a bigram graph from a token file (or reads a node-link graph), styles keyword nodes, and writes a self-contained vis-network HTML document together with optional DOT, SVG, ECharts and JSON artifacts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.tokensCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. A non-empty assetsDir
// replaces the embedded engine bundles with the directory's contents.
func (c *CLI) newRunner(noCache bool, assetsDir string) (*pipeline.Runner, error) {
	e := emit.New(c.Logger)
	if assetsDir != "" {
		if info, err := os.Stat(assetsDir); err != nil || !info.IsDir() {
			return nil, terrors.New(terrors.ErrCodeNotFound, "assets directory %s not found", assetsDir)
		}
		e.Assets = os.DirFS(assetsDir)
	}
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, e, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/textgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadConfig reads path, or returns the defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
