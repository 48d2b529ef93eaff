// Package assets provides the bundled CSS overlays referenced by generated
// presentations. Assets can be loaded from embedded files or from a custom
// directory.
package assets

import "errors"

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// BaseStyleName is the overlay stylesheet every presentation links.
const BaseStyleName = "rst2reveal"

// Loader loads a CSS style by name (without the .css extension).
// Implementations may load from embedded assets or the filesystem.
type Loader interface {
	LoadStyle(name string) (string, error)
}

// defaultLoader serves package-level lookups from the embedded files.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a bundled CSS file by name using the embedded loader.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}
