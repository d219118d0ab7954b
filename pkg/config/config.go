// Package config loads waypath settings from a TOML file.
//
// A configuration names the map data files and picks the cache, history and
// server backends. Every field has a default, so an empty or absent file is
// valid. A minimal file looks like:
//
//	[data]
//	edges     = "edges.csv"
//	heuristic = "heuristic.csv"
//
//	[search]
//	algorithm = "astar"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
// Relative data paths resolve against the directory that holds the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/waypath/pkg/search"
)

const appName = "waypath"

// Backend names.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root of a waypath configuration file.
type Config struct {
	Data    Data    `toml:"data"`
	Search  Search  `toml:"search"`
	Cache   Cache   `toml:"cache"`
	History History `toml:"history"`
	Server  Server  `toml:"server"`
}

// Data locates the map files.
type Data struct {
	Edges       string `toml:"edges"`
	Heuristic   string `toml:"heuristic"`
	Coordinates string `toml:"coordinates"`
}

// Search holds default search settings.
type Search struct {
	Algorithm string `toml:"algorithm"`
	Limit     int    `toml:"limit"`
}

// Cache selects the route cache backend.
type Cache struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	TTL       time.Duration `toml:"ttl"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`

	// Prefix scopes every cache key, so maps sharing a backend stay apart.
	Prefix string `toml:"prefix"`
}

// History selects the route history backend.
type History struct {
	Backend    string `toml:"backend"`
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Data: Data{
			Edges:     "edges.csv",
			Heuristic: "heuristic.csv",
		},
		Search: Search{
			Algorithm: string(search.Heuristic),
			Limit:     10,
		},
		Cache: Cache{
			Backend:   BackendFile,
			TTL:       24 * time.Hour,
			RedisAddr: "localhost:6379",
		},
		History: History{
			Backend:    BackendNone,
			URI:        "mongodb://localhost:27017",
			Database:   appName,
			Collection: "routes",
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Parse decodes TOML on top of [Default]. Unknown keys are rejected.
// Relative data paths are left as written.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path, then resolves relative data paths
// against its directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Resolve(filepath.Dir(path))
	return cfg, nil
}

// LoadOrDefault loads path when it exists and returns [Default] otherwise.
// Defaults resolve against the working directory.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Resolve makes relative data and cache paths absolute against dir.
func (c *Config) Resolve(dir string) {
	for _, p := range []*string{&c.Data.Edges, &c.Data.Heuristic, &c.Data.Coordinates, &c.Cache.Dir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	var errs []error
	if c.Data.Edges == "" {
		errs = append(errs, errors.New("data.edges is required"))
	}
	if _, err := search.ParseAlgorithm(c.Search.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("search.algorithm: %w", err))
	}
	if c.Search.Limit < 1 {
		errs = append(errs, fmt.Errorf("search.limit must be positive, got %d", c.Search.Limit))
	}
	if !slices.Contains([]string{BackendNone, BackendFile, BackendRedis}, c.Cache.Backend) {
		errs = append(errs, fmt.Errorf("cache.backend %q: want none, file or redis", c.Cache.Backend))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL))
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		errs = append(errs, errors.New("cache.redis_addr is required for the redis backend"))
	}
	if !slices.Contains([]string{BackendNone, BackendMongo}, c.History.Backend) {
		errs = append(errs, fmt.Errorf("history.backend %q: want none or mongo", c.History.Backend))
	}
	if c.History.Backend == BackendMongo && (c.History.URI == "" || c.History.Database == "" || c.History.Collection == "") {
		errs = append(errs, errors.New("history: uri, database and collection are required for the mongo backend"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// DefaultPath returns the configuration file location using the XDG
// standard (~/.config/waypath/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the cache directory using the XDG standard
// (~/.cache/waypath/).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
