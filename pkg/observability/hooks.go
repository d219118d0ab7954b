// Package observability lets applications watch route searches, cache
// traffic and API requests.
//
// Libraries emit events through the hooks returned by [Search], [Cache] and
// [HTTP]. Until an application registers its own, every event goes to a
// no-op implementation. [LogHooks] forwards events to a charmbracelet logger.
//
// Hooks are registered by commands, not by libraries, so the planner and
// server never import a metrics framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSearchHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Search().OnSearchStart(ctx, algorithm, from, to)
//	// ... search ...
//	observability.Search().OnSearchComplete(ctx, algorithm, from, to, hops, duration, err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from route planning.
type SearchHooks interface {
	OnSearchStart(ctx context.Context, algorithm, from, to string)
	// OnSearchComplete reports the hops of the path found, or the number of
	// paths for an enumeration.
	OnSearchComplete(ctx context.Context, algorithm, from, to string, hops int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// keyType is "route", "paths" or "render".
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request. route is the matched pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSearchHooks ignores every event.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, string, string, string) {}
func (NoopSearchHooks) OnSearchComplete(context.Context, string, string, string, int, time.Duration, error) {
}
func (NoopSearchHooks) OnRenderStart(context.Context, string)                               {}
func (NoopSearchHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// hookSet is an immutable snapshot of the registered hooks. Setters swap in
// a modified copy, so readers on hot paths never take a lock.
type hookSet struct {
	search SearchHooks
	cache  CacheHooks
	http   HTTPHooks
}

var (
	current atomic.Pointer[hookSet]
	setMu   sync.Mutex
)

func init() { Reset() }

func update(fn func(*hookSet)) {
	setMu.Lock()
	defer setMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetSearchHooks registers search hooks. A nil h is ignored.
func SetSearchHooks(h SearchHooks) {
	if h != nil {
		update(func(s *hookSet) { s.search = h })
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks { return current.Load().search }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores the no-op hooks.
func Reset() {
	setMu.Lock()
	defer setMu.Unlock()
	current.Store(&hookSet{
		search: NoopSearchHooks{},
		cache:  NoopCacheHooks{},
		http:   NoopHTTPHooks{},
	})
}
