package effect

// CatalogBuilderOption is a functional option for configuring a Catalog during construction.
type CatalogBuilderOption func(*catalog)

// WithAssets is an option builder that pre-fills the Catalog.
//
// Parameters:
//   - assets: the assets to store, keyed by Name
//
// Returns:
//   - CatalogBuilderOption: a function that applies the assets option to a catalog
func WithAssets(assets ...Asset) CatalogBuilderOption {
	return func(c *catalog) {
		for _, a := range assets {
			c.assets[a.Name] = &a
		}
	}
}
