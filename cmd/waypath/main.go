package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypath/internal/cli"
	werrors "github.com/matzehuels/waypath/pkg/errors"
)

// Exit codes beyond 0 and 1.
const (
	exitUsage       = 2   // bad node name, algorithm or format
	exitNoPath      = 3   // the search ran but found no route
	exitInterrupted = 130 // SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "error:", werrors.UserMessage(err))
		}
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level must be set before the root's own pre-run attaches the logger.
	attach := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return attach(cmd, args)
	}

	return root.ExecuteContext(ctx)
}

func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	switch werrors.GetCode(err) {
	case werrors.ErrCodeInvalidInput, werrors.ErrCodeInvalidAlgorithm,
		werrors.ErrCodeInvalidFormat, werrors.ErrCodeNodeNotFound:
		return exitUsage
	case werrors.ErrCodeNoPathFound:
		return exitNoPath
	}
	return 1
}
