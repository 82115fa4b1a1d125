package cache

// Keyer builds cache keys.
type Keyer interface {
	// NetworkKey identifies a decoded network description.
	NetworkKey(descriptionHash string) string
	// ArtifactKey identifies one rendered artifact of a network.
	ArtifactKey(networkHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	View   string `json:"view"`
	Format string `json:"format"`
	// Style is a hash of every drawing option (geometry, palette, widths,
	// labels, figure size).
	Style string `json:"style"`
}

// DefaultKeyer produces "network:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// NetworkKey generates a key for a network description.
func (DefaultKeyer) NetworkKey(descriptionHash string) string {
	return "network:" + descriptionHash
}

// ArtifactKey generates a key for a rendered artifact.
func (DefaultKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", networkHash, opts)
}

// PrefixKeyer namespaces the keys of another keyer, so several servers can
// share one Redis database.
type PrefixKeyer struct {
	Keyer
	Prefix string
}

// WithPrefix wraps k (the default keyer when nil) with prefix. An empty
// prefix returns k unchanged.
func WithPrefix(k Keyer, prefix string) Keyer {
	if k == nil {
		k = NewDefaultKeyer()
	}
	if prefix == "" {
		return k
	}
	return PrefixKeyer{Keyer: k, Prefix: prefix}
}

func (k PrefixKeyer) NetworkKey(descriptionHash string) string {
	return k.Prefix + k.Keyer.NetworkKey(descriptionHash)
}

func (k PrefixKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Keyer.ArtifactKey(networkHash, opts)
}
