package cli

import (
	"github.com/spf13/cobra"

	wio "github.com/matzehuels/waypath/pkg/io"
)

func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the map as JSON",
		Long: `Write the loaded map, with any coordinates, as a JSON graph.

The file can be used as data.edges in place of the CSV edge list.`,
		Example: `  waypath export -o portugal.json
  waypath export -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ds, err := c.loadDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if output == "-" {
				return wio.WriteJSON(ds.Graph, ds.Positions, cmd.OutOrStdout())
			}
			if err := ensureDir(output); err != nil {
				return err
			}
			if err := wio.ExportJSON(ds.Graph, ds.Positions, output); err != nil {
				return err
			}
			printer{w: cmd.OutOrStdout()}.file(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "map.json", "output file, - for stdout")
	return cmd
}
