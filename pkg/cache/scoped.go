package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful when one Redis instance backs several server deployments and each
// needs its own cache namespace.
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

// DocumentKey generates a prefixed key for document caching.
func (k *ScopedKeyer) DocumentKey(requestHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(requestHash, opts)
}

// PreviewKey generates a prefixed key for preview caching.
func (k *ScopedKeyer) PreviewKey(graphHash string, opts PreviewKeyOpts) string {
	return k.prefix + k.inner.PreviewKey(graphHash, opts)
}
