package cache

// ScopedKeyer wraps a Keyer with a prefix so separate tenants of a shared
// cache backend (one redis instance behind several staveline servers, for
// example) get isolated namespaces.
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

// ScoreKey generates a prefixed key for parsed score caching.
func (k *ScopedKeyer) ScoreKey(sourceHash string) string {
	return k.prefix + k.inner.ScoreKey(sourceHash)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(scoreHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(scoreHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
