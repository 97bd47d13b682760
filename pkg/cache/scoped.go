package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The HTTP server scopes keys per API client:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "client:abc123:")
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(outlineHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(outlineHash, opts)
}

// OutlineKey generates a prefixed key for fetched outlines.
func (k *ScopedKeyer) OutlineKey(url string) string {
	return k.prefix + k.inner.OutlineKey(url)
}
