package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) nodesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "List the locations of the map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ds, err := c.loadDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printer{w: cmd.OutOrStdout()}.nodes(ds)
			return nil
		},
	}
}
