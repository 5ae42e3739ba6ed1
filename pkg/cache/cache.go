// Package cache stores rendered figures keyed by a hash of their inputs.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared storage for several API instances
//   - [NullCache]: stores nothing, used with --no-cache
//
// Keys come from a [Keyer]. The default layout is
//
//	artifact:<sha256 of kind, options and table>:<format>
//
// and [NewScopedKeyer] prefixes every key, e.g. to share one Redis
// database between deployments.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered figures stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the value for key. hit is false when the key is absent
	// or expired; err is only set for backend failures.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of the figure rendered in format from
	// inputs whose hash is inputHash.
	ArtifactKey(inputHash, format string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<inputHash>:<format>".
func (DefaultKeyer) ArtifactKey(inputHash, format string) string {
	return "artifact:" + inputHash + ":" + format
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
//
//	keyer := cache.NewScopedKeyer(nil, "oceanplot:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer selects
// the default layout.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(inputHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, format)
}
