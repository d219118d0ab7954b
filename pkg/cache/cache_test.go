package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if n, err := c.Clear(ctx); n != 0 || err != nil {
		t.Errorf("Clear() = %d, %v, want 0, nil", n, err)
	}
}

// exerciseCache runs the behaviour every backend must share.
func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "absent"); hit || err != nil {
		t.Fatalf("Get(absent) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "route", []byte(`["A","C","D"]`), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "route")
	if err != nil || !hit {
		t.Fatalf("Get(route) = hit %v, err %v", hit, err)
	}
	if !bytes.Equal(data, []byte(`["A","C","D"]`)) {
		t.Errorf("Get(route) = %s", data)
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatalf("Set(ttl=0) error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry with zero ttl should not expire")
	}

	if err := c.Delete(ctx, "route"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "route"); hit {
		t.Error("deleted entry still present")
	}
	if err := c.Delete(ctx, "route"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}

	_ = c.Set(ctx, "a", []byte("1"), 0)
	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseCache(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}
	if _, err := os.Stat(c.path("k")); !errors.Is(err, os.ErrNotExist) {
		t.Error("expired entry file should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v, want miss", hit, err)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("WAYPATH_TEST_REDIS")
	if addr == "" {
		t.Skip("WAYPATH_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisOptions{Addr: addr, Prefix: "waypath-test:" + t.Name() + ":"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	_, _ = c.Clear(ctx)
	exerciseCache(t, c)
}

func TestRedisCachePrefix(t *testing.T) {
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "")
	defer c.Close()
	if c.prefix != DefaultRedisPrefix {
		t.Errorf("prefix = %q, want %q", c.prefix, DefaultRedisPrefix)
	}
}

func TestClassifyRedis(t *testing.T) {
	if classifyRedis(nil) != nil {
		t.Error("classifyRedis(nil) should be nil")
	}
	if err := classifyRedis(context.Canceled); IsTransient(err) {
		t.Error("context cancellation should not be transient")
	}
	err := classifyRedis(errors.New("dial tcp: connection refused"))
	if !IsTransient(err) || !errors.Is(err, ErrUnavailable) {
		t.Errorf("classifyRedis(transport) = %v, want transient ErrUnavailable", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := k.RouteKey("ds1", "bfs", "A", "D")
	tests := []struct {
		name  string
		other string
	}{
		{"Dataset", k.RouteKey("ds2", "bfs", "A", "D")},
		{"Algorithm", k.RouteKey("ds1", "dfs", "A", "D")},
		{"Direction", k.RouteKey("ds1", "bfs", "D", "A")},
		{"Paths", k.PathsKey("ds1", "bfs", "A", "D", 1)},
		{"Render", k.RenderKey("ds1", []string{"A", "D"}, "svg")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.other == base {
				t.Errorf("key collision with base route key: %s", base)
			}
		})
	}

	if k.PathsKey("ds", "bfs", "A", "D", 3) == k.PathsKey("ds", "bfs", "A", "D", 4) {
		t.Error("limit should be part of PathsKey")
	}
	if k.RenderKey("ds", []string{"AB", "C"}, "svg") == k.RenderKey("ds", []string{"A", "BC"}, "svg") {
		t.Error("RenderKey should separate route nodes")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "map:portugal:")

	want := "map:portugal:" + inner.RouteKey("h", "astar", "A", "B")
	if got := scoped.RouteKey("h", "astar", "A", "B"); got != want {
		t.Errorf("RouteKey = %s, want %s", got, want)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got := nilInner.PathsKey("h", "dfs", "A", "B", 2); got != "p:"+inner.PathsKey("h", "dfs", "A", "B", 2) {
		t.Errorf("nil inner keyer should fall back to DefaultKeyer: %s", got)
	}
}

func TestTransientError(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) = non-nil, want nil")
	}
	err := Transient(ErrUnavailable)
	if !IsTransient(err) || !errors.Is(err, ErrUnavailable) {
		t.Errorf("Transient(ErrUnavailable) = %v, want transient wrapping ErrUnavailable", err)
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), ErrUnavailable.Error())
	}
	if IsTransient(fmt.Errorf("get: %w", errors.New("plain"))) {
		t.Error("plain error reported as transient")
	}
}

func TestBackoff(t *testing.T) {
	ctx := context.Background()
	b := newBackoff(3, time.Millisecond)
	plain := errors.New("plain")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent", 5, plain, 1, plain},
		{"recovers", 1, Transient(ErrUnavailable), 2, nil},
		{"exhausted", 5, Transient(ErrUnavailable), 3, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffDefaults(t *testing.T) {
	b := newBackoff(0, -1)
	if b.attempts != DefaultMaxAttempts || b.delay != DefaultRetryDelay {
		t.Errorf("newBackoff(0, -1) = %+v, want defaults", b)
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newBackoff(3, time.Hour).do(ctx, func() error {
		return Transient(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
