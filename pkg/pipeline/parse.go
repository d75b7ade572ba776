package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/textgraph/pkg/multigraph"
	"github.com/matzehuels/textgraph/pkg/network"
)

// Load reads the input graph. opts.Graph is returned as is when set;
// otherwise opts.Input is read as a token file or a node-link JSON graph
// according to opts.InputKind. Token graphs follow the configured direction.
func Load(ctx context.Context, opts Options) (network.Graph, error) {
	if opts.Graph != nil {
		return opts.Graph, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.InputKind == InputGraph {
		g, err := multigraph.ReadFile(opts.Input)
		if err != nil {
			return nil, err
		}
		return g, nil
	}

	tokens, err := loadTokens(opts.Input, opts.Split)
	if err != nil {
		return nil, err
	}
	directed := opts.Config.Network.Directed
	if opts.Weighted {
		return multigraph.CountBigrams(tokens, directed), nil
	}
	return multigraph.FromTokens(tokens, directed), nil
}

func loadTokens(path string, mode multigraph.SplitMode) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tokens: %w", err)
	}
	defer f.Close()
	return multigraph.ReadTokens(f, mode)
}

// Build creates a network from opts.Config and imports g into it.
func Build(g network.Graph, opts Options) (*network.Network, error) {
	n, err := opts.Config.Build()
	if err != nil {
		return nil, err
	}
	if err := n.ImportGraph(g, opts.Config.ImportOptions()); err != nil {
		return nil, err
	}
	return n, nil
}
