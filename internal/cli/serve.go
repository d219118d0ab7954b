package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/waypath/pkg/search"
	"github.com/matzehuels/waypath/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route API over HTTP",
		Long: `Serve the route API over HTTP until interrupted.

Endpoints:
  GET /healthz
  GET /api/v1/nodes
  GET /api/v1/graph
  GET /api/v1/route?from=&to=&algorithm=
  GET /api/v1/paths?from=&to=&algorithm=&limit=
  GET /api/v1/route/render?from=&to=&algorithm=&format=svg|png|dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, ds, runner, err := c.setup(ctx)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			if !cmd.Flags().Changed("addr") && cfg.Server.Addr != "" {
				addr = cfg.Server.Addr
			}
			srv := server.New(runner, ds, server.Options{
				Algorithm: search.Algorithm(cfg.Search.Algorithm),
				Limit:     cfg.Search.Limit,
				Logger:    c.Logger,
			})
			printer{w: cmd.OutOrStdout()}.info("listening on %s", StyleNumber.Render(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
