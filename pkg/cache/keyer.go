package cache

import "github.com/matzehuels/slidegen/pkg/buildinfo"

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey identifies a rendered artifact of an outline.
	ArtifactKey(outlineHash string, opts ArtifactKeyOpts) string
	// OutlineKey identifies an outline fetched from url.
	OutlineKey(url string) string
}

// ArtifactKeyOpts are the inputs besides the outline that change an
// artifact's bytes.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	ThemeHash string `json:"theme"`
}

// DefaultKeyer hashes key inputs together with the build version, so an
// upgrade never serves artifacts rendered by an older release.
type DefaultKeyer struct {
	version string
}

// NewDefaultKeyer returns a keyer bound to the running build.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{version: buildinfo.Version}
}

func (k *DefaultKeyer) ArtifactKey(outlineHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", k.version, outlineHash, opts)
}

func (k *DefaultKeyer) OutlineKey(url string) string {
	return hashKey("outline", url)
}

var _ Keyer = (*DefaultKeyer)(nil)
