package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypath/pkg/planner"
	"github.com/matzehuels/waypath/pkg/search"
)

// renderOptions holds flags for the render command.
type renderOptions struct {
	output    string
	format    string
	route     string
	algorithm string
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the map, optionally with a route",
		Long: `Draw the whole map with Graphviz.

Locations with coordinates keep their positions; otherwise the neato layout
places them. With --route FROM,TO the route found by --algorithm is
highlighted.`,
		Example: `  waypath render -o map.svg
  waypath render -o route.png --route Lisbon,Braga -a optimal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, ds, runner, err := c.setup(ctx)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			var (
				route []string
				title string
			)
			if opts.route != "" {
				from, to, ok := strings.Cut(opts.route, ",")
				if !ok {
					return fmt.Errorf("--route must be FROM,TO, got %q", opts.route)
				}
				algo := opts.algorithm
				if algo == "" {
					algo = cfg.Search.Algorithm
				}
				res, err := runner.Route(ctx, ds, planner.Request{
					From:      strings.TrimSpace(from),
					To:        strings.TrimSpace(to),
					Algorithm: search.Algorithm(algo),
				})
				if err != nil {
					return err
				}
				route = res.Path
				title = fmt.Sprintf("%s to %s (%s)", res.From, res.To, res.Algorithm)
			}

			if err := writeRendering(ctx, runner, ds, route, title, opts.output, opts.format); err != nil {
				return err
			}
			printer{w: cmd.OutOrStdout()}.file(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "map.svg", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png (default from file extension)")
	cmd.Flags().StringVar(&opts.route, "route", "", "highlight the route FROM,TO")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "search algorithm for --route")
	cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)

	return cmd
}
