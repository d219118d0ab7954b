package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/waypath/pkg/config"
)

func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently planned routes",
		Long: `Show recently planned routes, newest first.

History is kept only when the history.backend config value is "mongo".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			out := printer{w: cmd.OutOrStdout()}
			if cfg.History.Backend != config.BackendMongo {
				out.warning("route history is disabled (history.backend = %q)", cfg.History.Backend)
				return nil
			}

			store, err := newHistory(ctx, cfg.History)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			entries, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				out.info("no routes recorded yet")
				return nil
			}
			out.history(entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of routes to show")
	return cmd
}
