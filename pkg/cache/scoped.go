package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments (or a test run) can share one Redis or Mongo backend:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (default keyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(bracketHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(bracketHash, opts)
}
