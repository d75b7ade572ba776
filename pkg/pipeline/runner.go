package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textgraph/pkg/cache"
	"github.com/matzehuels/textgraph/pkg/emit"
	"github.com/matzehuels/textgraph/pkg/network"
	"github.com/matzehuels/textgraph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, emitter and logger. Multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Emitter *emit.Emitter
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil emitter
// uses the embedded engine bundle and a nil logger uses log.Default.
func NewRunner(c cache.Cache, e *emit.Emitter, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if e == nil {
		e = emit.New(logger)
	}
	return &Runner{
		Cache:   c,
		Emitter: e,
		Logger:  logger,
	}
}

// Execute runs the complete load → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}
	hooks := observability.Pipeline()

	loadStart := time.Now()
	hooks.OnLoadStart(ctx, opts.InputKind, opts.Input)
	g, err := Load(ctx, opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.InputKind, opts.Input, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load: %w", err)
	}
	hooks.OnLoadComplete(ctx, opts.InputKind, opts.Input, len(g.Nodes()), time.Since(loadStart), nil)
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Debug("loaded graph",
		"nodes", len(g.Nodes()),
		"edges", len(g.Edges()),
		"duration", result.Stats.LoadTime)

	buildStart := time.Now()
	hooks.OnBuildStart(ctx, len(g.Nodes()))
	n, err := Build(g, opts)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(buildStart), err)
		return nil, fmt.Errorf("build: %w", err)
	}
	scene, err := n.Scene()
	if err != nil {
		hooks.OnBuildComplete(ctx, n.NodeCount(), n.EdgeCount(), time.Since(buildStart), err)
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Network = n
	result.Scene = scene
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = n.NodeCount()
	result.Stats.EdgeCount = n.EdgeCount()
	hooks.OnBuildComplete(ctx, n.NodeCount(), n.EdgeCount(), result.Stats.BuildTime, nil)

	r.Logger.Info("built network",
		"nodes", n.NodeCount(),
		"edges", n.EdgeCount(),
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	artifacts, hash, hit, err := r.RenderWithCacheInfo(ctx, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.SceneHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SceneHash returns the content hash of s.
func SceneHash(s network.Scene) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("serialize scene for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

// RenderWithCacheInfo renders every requested format of s, reusing cached
// artifacts. It returns the scene hash and whether every artifact came from
// the cache. Refresh skips the lookup but still stores the new artifacts.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s network.Scene, opts Options) (map[string][]byte, string, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, "", false, err
	}

	hash, err := SceneHash(s)
	if err != nil {
		return nil, "", false, err
	}
	key := func(format string) string {
		return cache.ArtifactKey(hash, format, opts.ArtifactKeyOpts(format, s.Directed))
	}

	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key(format)); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				continue
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, hash, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, missing)
	rendered, err := Render(ctx, s, r.Emitter, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		if err := r.Cache.Set(ctx, key(format), data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache artifact", "format", format, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, format, len(data))
		}
		artifacts[format] = data
	}

	return artifacts, hash, false, nil
}

// WriteArtifacts writes each artifact next to base (see OutputPath) and
// returns the written paths in format order. The html document gets the
// engine bundle copied next to it; every file is replaced atomically.
//
// When an html artifact is present, a base with an extension must end in
// ".html" (see emit.CheckHTML); nothing is written otherwise.
func (r *Runner) WriteArtifacts(artifacts map[string][]byte, base string) ([]string, error) {
	if _, ok := artifacts[FormatHTML]; ok && filepath.Ext(base) != "" {
		if err := emit.CheckHTML(base); err != nil {
			return nil, err
		}
	}
	dir := filepath.Dir(base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := OutputPath(base, format)
		if format == FormatHTML {
			if _, err := r.Emitter.EnsureAssets(dir); err != nil {
				return paths, err
			}
		}
		if err := emit.WriteDocument(path, artifacts[format]); err != nil {
			return paths, err
		}
		r.Logger.Debug("wrote artifact", "format", format, "path", path, "bytes", len(artifacts[format]))
		paths = append(paths, path)
	}
	return paths, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
