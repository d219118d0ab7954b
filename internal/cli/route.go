package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypath/pkg/planner"
	"github.com/matzehuels/waypath/pkg/render"
	"github.com/matzehuels/waypath/pkg/search"
)

// routeOptions holds flags for the route command.
type routeOptions struct {
	algorithm string
	output    string
	format    string
	refresh   bool
}

func (c *CLI) routeCommand() *cobra.Command {
	var opts routeOptions

	cmd := &cobra.Command{
		Use:   "route FROM TO",
		Short: "Find a route between two locations",
		Long: `Find a route between two locations.

Algorithms:
` + algorithmHelp() + `
Without --algorithm the search.algorithm config value is used.`,
		Example: `  waypath route Lisbon Braga
  waypath route lisbon braga -a bfs
  waypath route Lisbon Braga -a optimal -o route.svg`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoute(cmd.Context(), cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "search algorithm")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "render the route to this file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png (default from file extension)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)

	return cmd
}

func (c *CLI) runRoute(ctx context.Context, cmd *cobra.Command, from, to string, opts routeOptions) error {
	cfg, ds, runner, err := c.setup(ctx)
	if err != nil {
		return err
	}
	defer runner.Close(ctx)

	algo := opts.algorithm
	if algo == "" {
		algo = cfg.Search.Algorithm
	}
	res, err := runner.Route(ctx, ds, planner.Request{
		From:      from,
		To:        to,
		Algorithm: search.Algorithm(algo),
		Refresh:   opts.refresh,
	})
	if err != nil {
		return err
	}

	out := printer{w: cmd.OutOrStdout()}
	out.route(res)

	if opts.output == "" {
		return nil
	}
	title := fmt.Sprintf("%s to %s (%s)", res.From, res.To, res.Algorithm)
	if err := writeRendering(ctx, runner, ds, res.Path, title, opts.output, opts.format); err != nil {
		return err
	}
	out.file(opts.output)
	return nil
}

// writeRendering renders the map with route highlighted and writes it to path.
func writeRendering(ctx context.Context, runner *planner.Runner, ds *planner.Dataset, route []string, title, path, format string) error {
	f, err := outputFormat(path, format)
	if err != nil {
		return err
	}
	data, err := runner.Render(ctx, ds, route, f, title)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ensureDir creates the parent directory of an output path.
func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return nil
}

// outputFormat returns the explicit format, else the one named by the file
// extension, else SVG.
func outputFormat(path, explicit string) (render.Format, error) {
	if explicit != "" {
		return render.ParseFormat(explicit)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := render.ParseFormat(ext); err == nil {
		return f, nil
	}
	return render.FormatSVG, nil
}

func algorithmHelp() string {
	var b strings.Builder
	for _, a := range search.Algorithms() {
		fmt.Fprintf(&b, "  %-8s %s\n", a, a.Description())
	}
	return b.String()
}

func completeAlgorithms(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, a := range search.Algorithms() {
		names = append(names, string(a)+"\t"+a.Description())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
