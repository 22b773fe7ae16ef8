package apt

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aptgraph/pkg/cache"
	"github.com/matzehuels/aptgraph/pkg/observability"
)

const dependsKeyType = "depends"

// CachedSource caches dependency dumps of an underlying Source, keyed by
// package and installed version. Listing always goes to the underlying
// Source so the package set is never stale; when that Source is a
// [VersionedSource] the listed versions are remembered for the keys.
// Packages without a known version bypass the cache. Cache failures are
// logged and fall through to the Source.
type CachedSource struct {
	Source Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger

	mu       sync.RWMutex
	versions map[string]string
}

// NewCachedSource wraps src. A nil cache disables caching, a nil keyer uses
// [cache.NewDefaultKeyer].
func NewCachedSource(src Source, c cache.Cache, keyer cache.Keyer, ttl time.Duration, logger *log.Logger) *CachedSource {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CachedSource{Source: src, Cache: c, Keyer: keyer, TTL: ttl, Logger: logger}
}

// ListInstalled delegates to the underlying Source and records the
// versions it reports.
func (s *CachedSource) ListInstalled(ctx context.Context) ([]string, error) {
	vs, ok := s.Source.(VersionedSource)
	if !ok {
		return s.Source.ListInstalled(ctx)
	}

	pkgs, err := vs.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	versions := make(map[string]string, len(pkgs))
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
		if p.Version != "" {
			versions[p.Name] = p.Version
		}
	}

	s.mu.Lock()
	s.versions = versions
	s.mu.Unlock()
	return names, nil
}

func (s *CachedSource) version(pkg string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.versions[pkg]
	return v, ok
}

// Depends returns the cached dump for pkg, fetching and storing it on a miss.
// Failed fetches are not cached.
func (s *CachedSource) Depends(ctx context.Context, pkg string) (string, error) {
	version, ok := s.version(pkg)
	if !ok {
		return s.Source.Depends(ctx, pkg)
	}
	key := s.Keyer.DependsKey(pkg, version)
	hooks := observability.Cache()

	data, hit, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.Logger.Debug("cache read failed", "pkg", pkg, "err", err)
	}
	if hit {
		hooks.OnCacheHit(ctx, dependsKeyType)
		return string(data), nil
	}
	hooks.OnCacheMiss(ctx, dependsKeyType)

	dump, err := s.Source.Depends(ctx, pkg)
	if err != nil {
		return "", err
	}

	if err := s.Cache.Set(ctx, key, []byte(dump), s.TTL); err != nil {
		s.Logger.Debug("cache write failed", "pkg", pkg, "err", err)
	} else {
		hooks.OnCacheSet(ctx, dependsKeyType, len(dump))
	}
	return dump, nil
}

var _ Source = (*CachedSource)(nil)
