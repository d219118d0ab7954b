package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/waypath/pkg/planner"
	"github.com/matzehuels/waypath/pkg/search"
)

func (c *CLI) pathsCommand() *cobra.Command {
	var (
		algorithm string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "paths FROM TO",
		Short: "List the paths a breadth- or depth-first search finds",
		Long: `List paths between two locations in the order a search yields them.

Breadth-first search yields paths by increasing hop count. Depth-first
search follows neighbors in alphabetical order.`,
		Example: `  waypath paths Lisbon Braga
  waypath paths Lisbon Braga -a dfs -n 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, ds, runner, err := c.setup(ctx)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			if !cmd.Flags().Changed("limit") && cfg.Search.Limit > 0 {
				limit = cfg.Search.Limit
			}
			res, err := runner.Paths(ctx, ds, planner.Request{
				From:      args[0],
				To:        args[1],
				Algorithm: search.Algorithm(algorithm),
			}, limit)
			if err != nil {
				return err
			}

			out := printer{w: cmd.OutOrStdout()}
			if len(res.Paths) == 0 {
				out.warning("no path from %s to %s", res.From, res.To)
				return nil
			}
			out.paths(res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", string(search.BFS), "bfs or dfs")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of paths")
	cmd.RegisterFlagCompletionFunc("algorithm", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(search.BFS), string(search.DFS)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
