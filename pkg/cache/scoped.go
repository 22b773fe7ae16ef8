package cache

// ScopedKeyer wraps a Keyer with a prefix so that several hosts can share
// one cache backend without reading each other's dependency dumps.
//
// Example usage:
//
//	hostname, _ := os.Hostname()
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "host:"+hostname+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DependsKey generates a prefixed key for a dependency dump.
func (k *ScopedKeyer) DependsKey(pkg, version string) string {
	return k.prefix + k.inner.DependsKey(pkg, version)
}
