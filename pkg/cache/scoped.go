package cache

// ScopedKeyer prefixes every key produced by an inner Keyer, so several
// services (or several tenants of one service) can share a Redis database
// without colliding.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "stackchart:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer falls back to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GeometryKey generates a prefixed geometry key.
func (k *ScopedKeyer) GeometryKey(dataHash string, opts GeometryKeyOpts) string {
	return k.prefix + k.inner.GeometryKey(dataHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(geometryHash, opts)
}

// DefinitionKey generates a prefixed definition key.
func (k *ScopedKeyer) DefinitionKey(id string) string {
	return k.prefix + k.inner.DefinitionKey(id)
}
