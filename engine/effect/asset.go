package effect

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrAssetNotFound is returned when a named effect asset cannot be loaded.
var ErrAssetNotFound = errors.New("effect: asset not found")

// Asset is an immutable effect reference produced by an AssetSource.
// The simulation treats it as opaque apart from its timeline properties.
type Asset struct {
	// Name is the identifier the asset was loaded under.
	Name string

	// Path is where the asset data lives, as recorded by the source. It is informational only.
	Path string

	// Duration is the length of the effect timeline in frames. Zero or less means the effect never finishes on its own.
	Duration int

	// Loop makes a playback wrap to the start of the timeline instead of finishing.
	Loop bool

	// Distortion marks effects that sample the distortion render target.
	Distortion bool
}

// AssetSource loads named effect assets.
type AssetSource interface {
	// Load returns the asset registered under name.
	//
	// Parameters:
	//   - name: the asset identifier
	//
	// Returns:
	//   - *Asset: the loaded asset
	//   - error: an error wrapping ErrAssetNotFound if the asset is unknown
	Load(name string) (*Asset, error)
}

// catalog is the implementation of the Catalog interface.
type catalog struct {
	mu     *sync.RWMutex
	assets map[string]*Asset
}

// Catalog is an in-memory AssetSource, typically filled from the effect section of the configuration file.
// Assets are replaced wholesale on Put; a loaded *Asset is never mutated afterwards.
type Catalog interface {
	AssetSource

	// Put adds or replaces an asset.
	//
	// Parameters:
	//   - a: the asset to store; its Name is the key
	Put(a Asset)

	// Delete removes an asset. Assets already loaded by callers stay valid.
	//
	// Parameters:
	//   - name: the asset identifier
	Delete(name string)

	// Names returns every asset name in sorted order.
	//
	// Returns:
	//   - []string: the sorted asset names
	Names() []string

	// Len returns the number of assets in the catalog.
	//
	// Returns:
	//   - int: the asset count
	Len() int
}

var _ Catalog = &catalog{}

// NewCatalog creates a new Catalog with the provided options.
//
// Parameters:
//   - options: functional options to configure the catalog
//
// Returns:
//   - Catalog: the newly created catalog
func NewCatalog(options ...CatalogBuilderOption) Catalog {
	c := &catalog{
		mu:     &sync.RWMutex{},
		assets: make(map[string]*Asset),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *catalog) Load(name string) (*Asset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.assets[name]
	if !ok {
		return nil, fmt.Errorf("load %q: %w", name, ErrAssetNotFound)
	}
	return a, nil
}

func (c *catalog) Put(a Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assets[a.Name] = &a
}

func (c *catalog) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.assets, name)
}

func (c *catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.assets))
	for name := range c.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.assets)
}
