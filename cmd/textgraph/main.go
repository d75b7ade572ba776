// Command textgraph renders word co-occurrence graphs as interactive
// network documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textgraph/internal/cli"
	terrors "github.com/matzehuels/textgraph/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		code := exitCode(err)
		if code != 130 {
			fmt.Fprintln(os.Stderr, terrors.UserMessage(err))
		}
		os.Exit(code)
	}
}

// exitCode maps err to the process status: 130 after an interrupt (shell
// convention for SIGINT), 2 for bad input or flags, 1 for anything else.
func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return 130
	case terrors.IsPrecondition(err):
		return 2
	default:
		return 1
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
