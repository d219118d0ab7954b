package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypath/pkg/config"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the route cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached routes and renderings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ch, err := c.newCache(ctx, cfg.Cache)
			if err != nil {
				return err
			}
			defer ch.Close()

			n, err := ch.Clear(ctx)
			if err != nil {
				return err
			}
			printer{w: cmd.OutOrStdout()}.success("removed %s cache entries", StyleNumber.Render(strconv.Itoa(n)))
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			out := printer{w: cmd.OutOrStdout()}
			switch cfg.Cache.Backend {
			case config.BackendRedis:
				out.keyValue("redis", cfg.Cache.RedisAddr)
			case config.BackendFile:
				dir, err := cacheDir(cfg.Cache)
				if err != nil {
					return err
				}
				out.keyValue("dir", dir)
			default:
				out.warning("caching is disabled (cache.backend = %q)", cfg.Cache.Backend)
			}
			return nil
		},
	}
}
