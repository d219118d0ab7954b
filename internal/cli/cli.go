// Package cli implements the waypath command-line interface.
//
// # Commands
//
//   - route: find one route between two locations
//   - paths: list the paths a breadth- or depth-first search yields
//   - nodes: list the locations of the map
//   - interactive: pick origin, destination and algorithm from menus
//   - render: draw the map, optionally with a route
//   - serve: run the HTTP API
//   - history: show recently planned routes
//   - cache: clear or locate the route cache
//   - export: write the map as JSON
//
// # Configuration
//
// Data files and backends come from a TOML file, by default
// ~/.config/waypath/config.toml (see [config.DefaultPath]). Without one,
// edges.csv and heuristic.csv in the working directory are used.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waypath/pkg/buildinfo"
	"github.com/matzehuels/waypath/pkg/cache"
	"github.com/matzehuels/waypath/pkg/config"
	"github.com/matzehuels/waypath/pkg/history"
	"github.com/matzehuels/waypath/pkg/observability"
	"github.com/matzehuels/waypath/pkg/planner"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "waypath",
		Short:        "Waypath finds routes through weighted road maps",
		Long:         `Waypath loads a weighted road map from CSV files and finds routes between locations with breadth-first, depth-first, greedy and heuristic searches.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetSearchHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ~/.config/waypath/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the route cache")

	root.AddCommand(c.routeCommand())
	root.AddCommand(c.pathsCommand())
	root.AddCommand(c.nodesCommand())
	root.AddCommand(c.interactiveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config, Dataset and Runner Factories
// =============================================================================

// loadConfig reads the --config file, or the default file when present.
// An explicit path must exist.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	return config.LoadOrDefault(path)
}

// loadDataset reads the map files named by cfg.
func (c *CLI) loadDataset(ctx context.Context, cfg *config.Config) (*planner.Dataset, error) {
	logger := loggerFromContext(ctx)
	t := startTimer(logger)
	ds, err := planner.LoadDataset(cfg.Data)
	if err != nil {
		return nil, err
	}
	t.done("loaded map",
		"nodes", ds.Graph.NodeCount(),
		"edges", ds.Graph.EdgeCount(),
		"heuristic", ds.Heuristic != nil,
		"coordinates", ds.Positions != nil)
	return ds, nil
}

// setup loads config and dataset and builds a runner. The caller closes the
// runner.
func (c *CLI) setup(ctx context.Context) (*config.Config, *planner.Dataset, *planner.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	ds, err := c.loadDataset(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, ds, runner, nil
}

// newRunner creates a planner runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config) (*planner.Runner, error) {
	ch, err := c.newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	store, err := newHistory(ctx, cfg.History)
	if err != nil {
		ch.Close()
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
	}
	r := planner.NewRunner(ch, keyer, store, loggerFromContext(ctx))
	if cfg.Cache.TTL > 0 {
		r.TTL = cfg.Cache.TTL
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, cfg config.Cache) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case config.BackendFile:
		dir, err := cacheDir(cfg)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		return fc, nil
	}
	return cache.NewNullCache(), nil
}

func newHistory(ctx context.Context, cfg config.History) (history.Store, error) {
	if cfg.Backend != config.BackendMongo {
		return history.NullStore{}, nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return history.NewMongoStore(connectCtx, history.MongoConfig{
		URI:        cfg.URI,
		Database:   cfg.Database,
		Collection: cfg.Collection,
	})
}

// cacheDir returns the configured cache directory or the XDG default.
func cacheDir(cfg config.Cache) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return config.DefaultCacheDir()
}

// =============================================================================
// Logging
// =============================================================================

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// timer logs how long an operation took.
type timer struct {
	logger *log.Logger
	start  time.Time
}

func startTimer(l *log.Logger) *timer {
	return &timer{logger: l, start: time.Now()}
}

// done logs msg at debug level with the elapsed time appended to keyvals.
func (t *timer) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "duration", time.Since(t.start).Round(time.Microsecond))
	t.logger.Debug(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
