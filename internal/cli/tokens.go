package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textgraph/pkg/multigraph"
	"github.com/matzehuels/textgraph/pkg/network"
)

type tokensOpts struct {
	words      bool
	weighted   bool
	undirected bool
	top        int
	export     string
}

// tokensCommand inspects the bigram graph of a token file.
func (c *CLI) tokensCommand() *cobra.Command {
	var opts tokensOpts

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Show the bigram graph of a token file",
		Long: `Tokens reads a token file and prints the size of its bigram graph and the
most connected tokens. With --export-graph the graph is written as node-link
JSON that "render" accepts as input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTokens(args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.words, "words", false, "split tokens on whitespace instead of lines")
	cmd.Flags().BoolVar(&opts.weighted, "weighted", false, "collapse repeated bigrams into one weighted edge")
	cmd.Flags().BoolVar(&opts.undirected, "undirected", false, "build an undirected graph")
	cmd.Flags().IntVar(&opts.top, "top", 10, "number of most connected tokens to list")
	cmd.Flags().StringVar(&opts.export, "export-graph", "", "write the graph as node-link JSON to this path (- for stdout)")

	return cmd
}

func (c *CLI) runTokens(path string, opts tokensOpts) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open tokens: %w", err)
	}
	defer f.Close()

	mode := multigraph.SplitLines
	if opts.words {
		mode = multigraph.SplitWords
	}
	tokens, err := multigraph.ReadTokens(f, mode)
	if err != nil {
		return err
	}

	var g *multigraph.MultiGraph
	if opts.weighted {
		g = multigraph.CountBigrams(tokens, !opts.undirected)
	} else {
		g = multigraph.FromTokens(tokens, !opts.undirected)
	}
	c.Logger.Debug("read tokens", "path", path, "tokens", len(tokens))

	if opts.export == "-" {
		return multigraph.Write(g, os.Stdout)
	}

	printKeyValue("Tokens", fmt.Sprint(len(tokens)))
	printKeyValue("Nodes", fmt.Sprint(g.NodeCount()))
	printKeyValue("Edges", fmt.Sprint(g.EdgeCount()))
	printKeyValue("Isolates", fmt.Sprint(len(g.Isolates())))

	if top := topTokens(g, opts.top); len(top) > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Most connected"))
		for _, t := range top {
			fmt.Printf("  %s %s\n", StyleNumber.Render(fmt.Sprintf("%4d", t.degree)), StyleValue.Render(fmt.Sprint(t.id)))
		}
	}

	if opts.export != "" {
		if err := multigraph.WriteFile(g, opts.export); err != nil {
			return err
		}
		printNewline()
		printSuccess("Exported graph")
		printFile(opts.export)
	}
	return nil
}

type tokenDegree struct {
	id     network.ID
	degree int
}

// topTokens returns up to n nodes by descending degree, ties in insertion
// order.
func topTokens(g *multigraph.MultiGraph, n int) []tokenDegree {
	if n <= 0 {
		return nil
	}
	var out []tokenDegree
	for _, nd := range g.Nodes() {
		out = append(out, tokenDegree{id: nd.ID, degree: g.Degree(nd.ID)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].degree > out[j].degree })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
