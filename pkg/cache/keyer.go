package cache

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	VizType  string  `json:"viz_type"`
	Title    string  `json:"title"`
	Style    string  `json:"style"`
	Scale    float64 `json:"scale,omitempty"`
	Compress bool    `json:"compress,omitempty"`
	Page     any     `json:"page,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey is the key of one rendered artifact of a bracket.
	ArtifactKey(bracketHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes the bracket hash together with the options.
func (DefaultKeyer) ArtifactKey(bracketHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", bracketHash, opts)
}
