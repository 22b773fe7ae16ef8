// Package cache stores dependency dumps between runs.
//
// Backends:
//   - [FileCache]: one file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for fleets of hosts
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer], so hosts sharing one Redis can be kept
// apart with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// DependsKey returns the key for the dependency dump of one version
	// of a package.
	DependsKey(pkg, version string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DependsKey returns "depends:<pkg>@<version>".
func (DefaultKeyer) DependsKey(pkg, version string) string {
	return "depends:" + pkg + "@" + version
}
