package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/waypath/pkg/cache"
	werrors "github.com/matzehuels/waypath/pkg/errors"
	"github.com/matzehuels/waypath/pkg/history"
	"github.com/matzehuels/waypath/pkg/observability"
	"github.com/matzehuels/waypath/pkg/render"
	"github.com/matzehuels/waypath/pkg/search"
)

// DefaultTTL is how long cached routes and renders live.
const DefaultTTL = 24 * time.Hour

// Request is a route query.
type Request struct {
	From      string
	To        string
	Algorithm search.Algorithm

	// Refresh bypasses the cache lookup. The fresh result is still stored.
	Refresh bool
}

// Result is the answer to a single route query.
type Result struct {
	ID        string           `json:"id"`
	Algorithm search.Algorithm `json:"algorithm"`
	From      string           `json:"from"`
	To        string           `json:"to"`
	Path      search.Path      `json:"path"`
	Hops      int              `json:"hops"`
	Cost      float64          `json:"cost"`
	Cached    bool             `json:"cached"`
	Duration  time.Duration    `json:"duration_ns"`
}

// PathsResult lists the first paths of an enumerating search.
type PathsResult struct {
	Algorithm search.Algorithm `json:"algorithm"`
	From      string           `json:"from"`
	To        string           `json:"to"`
	Paths     []PathInfo       `json:"paths"`
	Cached    bool             `json:"cached"`
}

// PathInfo is one enumerated path with its metrics.
type PathInfo struct {
	Path search.Path `json:"path"`
	Hops int         `json:"hops"`
	Cost float64     `json:"cost"`
}

// Runner executes route queries with caching.
//
// The Runner holds no per-query state, so multiple goroutines can safely
// share one.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	History history.Store
	Logger  *log.Logger
	TTL     time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means [cache.DefaultKeyer], a nil store records nothing and a nil logger
// means [log.Default].
func NewRunner(c cache.Cache, keyer cache.Keyer, store history.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if store == nil {
		store = history.NullStore{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		History: store,
		Logger:  logger,
		TTL:     DefaultTTL,
	}
}

// cachedRoute is the cache payload of a route.
type cachedRoute struct {
	Path search.Path `json:"path"`
	Cost float64     `json:"cost"`
}

// Route finds one path between the requested endpoints.
func (r *Runner) Route(ctx context.Context, ds *Dataset, req Request) (*Result, error) {
	from, to, a, err := r.prepare(ds, req)
	if err != nil {
		return nil, err
	}
	algo := string(a)
	key := r.Keyer.RouteKey(ds.Hash, algo, from, to)

	start := time.Now()
	res := &Result{
		ID:        uuid.NewString(),
		Algorithm: a,
		From:      from,
		To:        to,
	}

	var cr cachedRoute
	if !req.Refresh && r.lookup(ctx, key, "route", &cr) {
		res.Path, res.Cost, res.Cached = cr.Path, cr.Cost, true
	} else {
		observability.Search().OnSearchStart(ctx, algo, from, to)
		path, err := search.Find(ds.Graph, ds.Estimator(), a, from, to)
		if err == nil {
			res.Cost, err = path.Cost(ds.Graph)
		}
		observability.Search().OnSearchComplete(ctx, algo, from, to, path.Hops(), time.Since(start), err)
		if err != nil {
			return nil, werrors.Wrap(werrors.Classify(err), err, "%s route from %s to %s", algo, from, to)
		}
		res.Path = path
		r.store(ctx, key, "route", cachedRoute{Path: path, Cost: res.Cost})
	}
	res.Hops = res.Path.Hops()
	res.Duration = time.Since(start)

	r.Logger.Info("route computed",
		"algorithm", algo,
		"from", from,
		"to", to,
		"hops", res.Hops,
		"cost", res.Cost,
		"cached", res.Cached,
		"duration", res.Duration)

	entry := history.NewEntry(algo, from, to, res.Path, res.Cost)
	entry.ID = res.ID
	if err := r.History.Record(ctx, entry); err != nil {
		r.Logger.Warn("record history failed", "err", err)
	}
	return res, nil
}

// Paths lists up to limit paths of an enumerating algorithm in yield order.
// A limit below one is treated as one.
func (r *Runner) Paths(ctx context.Context, ds *Dataset, req Request, limit int) (*PathsResult, error) {
	from, to, a, err := r.prepare(ds, req)
	if err != nil {
		return nil, err
	}
	if !a.Enumerates() {
		return nil, werrors.New(werrors.ErrCodeInvalidAlgorithm, "%s does not enumerate paths (use bfs or dfs)", a)
	}
	limit = max(limit, 1)
	algo := string(a)
	key := r.Keyer.PathsKey(ds.Hash, algo, from, to, limit)

	res := &PathsResult{Algorithm: a, From: from, To: to}
	if !req.Refresh && r.lookup(ctx, key, "paths", &res.Paths) {
		res.Cached = true
		return res, nil
	}

	start := time.Now()
	observability.Search().OnSearchStart(ctx, algo, from, to)
	seq, err := search.Enumerate(ds.Graph, a, from, to)
	if err != nil {
		observability.Search().OnSearchComplete(ctx, algo, from, to, 0, time.Since(start), err)
		return nil, werrors.Wrap(werrors.Classify(err), err, "%s paths from %s to %s", algo, from, to)
	}
	res.Paths = []PathInfo{}
	for _, p := range search.Take(seq, limit) {
		if err := ctx.Err(); err != nil {
			return nil, werrors.Wrap(werrors.Classify(err), err, "%s paths from %s to %s", algo, from, to)
		}
		cost, _ := p.Cost(ds.Graph)
		res.Paths = append(res.Paths, PathInfo{Path: p, Hops: p.Hops(), Cost: cost})
	}
	observability.Search().OnSearchComplete(ctx, algo, from, to, len(res.Paths), time.Since(start), nil)

	r.Logger.Info("paths enumerated",
		"algorithm", algo,
		"from", from,
		"to", to,
		"count", len(res.Paths),
		"duration", time.Since(start))

	r.store(ctx, key, "paths", res.Paths)
	return res, nil
}

// Render draws the map with route highlighted. An empty route draws the
// bare map.
func (r *Runner) Render(ctx context.Context, ds *Dataset, route []string, format render.Format, title string) ([]byte, error) {
	if _, err := render.ParseFormat(string(format)); err != nil {
		return nil, werrors.Wrap(werrors.ErrCodeInvalidFormat, err, "render")
	}
	key := r.Keyer.RenderKey(ds.Hash, append([]string{title}, route...), string(format))
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	start := time.Now()
	observability.Search().OnRenderStart(ctx, string(format))
	dot := render.ToDOT(ds.Graph, render.Options{
		Route:     route,
		Positions: ds.Positions,
		Title:     title,
	})
	data, err := render.Render(ctx, dot, format)
	observability.Search().OnRenderComplete(ctx, string(format), len(data), time.Since(start), err)
	if err != nil {
		return nil, werrors.Wrap(werrors.ErrCodeInternal, err, "render %s", format)
	}

	r.Logger.Debug("rendered map", "format", format, "bytes", len(data), "duration", time.Since(start))
	if err := r.Cache.Set(ctx, key, data, r.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, nil
}

// Close releases the cache and history backends.
func (r *Runner) Close(ctx context.Context) error {
	cerr := r.Cache.Close()
	herr := r.History.Close(ctx)
	if cerr != nil {
		return cerr
	}
	return herr
}

// prepare normalizes the algorithm name, resolves both endpoints and
// checks that the dataset can serve the algorithm.
func (r *Runner) prepare(ds *Dataset, req Request) (from, to string, algo search.Algorithm, err error) {
	algo, err = search.ParseAlgorithm(string(req.Algorithm))
	if err != nil {
		return "", "", "", werrors.Wrap(werrors.ErrCodeInvalidAlgorithm, err, "choose one of %v", search.Algorithms())
	}
	if from, err = ds.Resolve(req.From); err != nil {
		return "", "", "", err
	}
	if to, err = ds.Resolve(req.To); err != nil {
		return "", "", "", err
	}
	if algo.NeedsHeuristic() && ds.Heuristic == nil {
		return "", "", "", werrors.New(werrors.ErrCodeMissingHeuristic, "%s needs a heuristic table; set data.heuristic", algo)
	}
	return from, to, algo, nil
}

// lookup decodes a cached value into v and reports whether it was a hit.
// Undecodable entries count as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string, v any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err == nil && hit && json.Unmarshal(data, v) == nil {
		observability.Cache().OnCacheHit(ctx, keyType)
		return true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return false
}

// store caches v as JSON. Failures are logged, never returned.
func (r *Runner) store(ctx context.Context, key, keyType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Warn("cache encode failed", "type", keyType, "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// String renders a result on one line for logs and the terminal.
func (res *Result) String() string {
	return fmt.Sprintf("%s (%d hops, cost %g)", res.Path, res.Hops, res.Cost)
}
