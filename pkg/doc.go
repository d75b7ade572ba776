// Package pkg provides the core libraries for textgraph.
//
// # Overview
//
// textgraph turns a word co-occurrence graph into a self-contained
// interactive document: an HTML page that loads the vis-network engine and
// draws the graph with keyword highlighting, physics and an optional
// hierarchical layout. The same scene can also be exported as DOT, SVG,
// PNG, PDF, an ECharts page or plain JSON.
//
// # Architecture
//
// The typical data flow:
//
//	text or graph file
//	         ↓
//	    [multigraph] package (tokens, bigrams, weighted multigraph)
//	         ↓
//	    [network] package (registry with styling + options)
//	         ↓
//	    [network.Scene] (frozen nodes, edges, canvas and options)
//	         ↓
//	    [emit] / [render] packages
//	         ↓
//	    HTML/ECharts/DOT/SVG/PNG/PDF/JSON output
//
// [pipeline] runs the whole chain behind an artifact [cache], driven by a
// [config] file and the command line.
//
// # Quick Start
//
//	import (
//	    "strings"
//
//	    "github.com/matzehuels/textgraph/pkg/emit"
//	    "github.com/matzehuels/textgraph/pkg/multigraph"
//	    "github.com/matzehuels/textgraph/pkg/network"
//	)
//
//	// 1. Tokenize and count bigrams
//	tokens, _ := multigraph.ReadTokens(strings.NewReader(text), multigraph.SplitLines)
//	g := multigraph.CountBigrams(tokens, true)
//
//	// 2. Register the graph
//	cfg := network.DefaultConfig()
//	cfg.Keywords = []network.ID{"hijo"}
//	n, _ := network.New(cfg)
//	_ = n.ImportGraph(g, network.ImportOptions{})
//
//	// 3. Emit the document
//	scene, _ := n.Scene()
//	_ = emit.New(nil).Write(scene, "speech.html")
//
// # Main Packages
//
//   - [style]: keyword-aware node styling
//   - [options]: the vis-network option tree and its mutators
//   - [network]: the node/edge registry, graph import and scene serializer
//   - [multigraph]: tokenization, bigram counting and graph files
//   - [emit]: HTML document generation and the embedded engine bundle
//   - [render]: Graphviz and ECharts exports plus raster conversion
//   - [pipeline]: load → build → render orchestration with caching
//   - [cache]: content-addressed artifact storage
//   - [config]: TOML/YAML configuration with validation
//   - [observability]: hooks for pipeline, cache and preview events
//   - [errors]: coded errors shared by every package
//   - [buildinfo]: version metadata
package pkg
