package cache

// Keyer derives cache keys for rendered artifacts.
type Keyer interface {
	// ArtifactKey identifies one rendering of one library.
	ArtifactKey(libraryHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Seed       uint64  `json:"seed"`
	Leaning    bool    `json:"leaning"`
	Background string  `json:"background"`
	Shelf      string  `json:"shelf"`
	Book       string  `json:"book"`
	Sort       string  `json:"sort"`
	Scale      float64 `json:"scale"`
	EmbedFont  bool    `json:"embed_font"`
	Title      string  `json:"title,omitempty"`
}

// DefaultKeyer hashes the options into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(libraryHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", libraryHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by release so
// artifacts written by one version are never served by another.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1.2.0:")
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
func (k *ScopedKeyer) ArtifactKey(libraryHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(libraryHash, opts)
}
