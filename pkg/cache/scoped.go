package cache

// ScopedKeyer prefixes every key of an inner Keyer. The CLI uses it for
// cache.scope so that staging and production can share a Redis instance:
//
//	keyer := NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) PageKey(url string) string {
	return k.prefix + k.inner.PageKey(url)
}

func (k *ScopedKeyer) SheetKey(songHash string, opts SheetKeyOpts) string {
	return k.prefix + k.inner.SheetKey(songHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(sheetHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sheetHash, opts)
}
