package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Keyer builds cache keys.
type Keyer interface {
	// RouteKey identifies a single computed route.
	RouteKey(datasetHash, algorithm, from, to string) string

	// PathsKey identifies the first limit paths of an enumeration.
	PathsKey(datasetHash, algorithm, from, to string, limit int) string

	// RenderKey identifies a rendered map for a route.
	RenderKey(datasetHash string, route []string, format string) string
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key builder.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RouteKey implements [Keyer].
func (DefaultKeyer) RouteKey(datasetHash, algorithm, from, to string) string {
	return hashKey("route", datasetHash, algorithm, from, to)
}

// PathsKey implements [Keyer].
func (DefaultKeyer) PathsKey(datasetHash, algorithm, from, to string, limit int) string {
	return hashKey("paths", datasetHash, algorithm, from, to, limit)
}

// RenderKey implements [Keyer].
func (DefaultKeyer) RenderKey(datasetHash string, route []string, format string) string {
	return hashKey("render", datasetHash, strings.Join(route, "\x00"), format)
}

// ScopedKeyer prefixes every key of an inner [Keyer], so that several maps
// or tenants can share one backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RouteKey implements [Keyer].
func (k *ScopedKeyer) RouteKey(datasetHash, algorithm, from, to string) string {
	return k.prefix + k.inner.RouteKey(datasetHash, algorithm, from, to)
}

// PathsKey implements [Keyer].
func (k *ScopedKeyer) PathsKey(datasetHash, algorithm, from, to string, limit int) string {
	return k.prefix + k.inner.PathsKey(datasetHash, algorithm, from, to, limit)
}

// RenderKey implements [Keyer].
func (k *ScopedKeyer) RenderKey(datasetHash string, route []string, format string) string {
	return k.prefix + k.inner.RenderKey(datasetHash, route, format)
}

// hashKey returns prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data as a 64-character hex
// string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
