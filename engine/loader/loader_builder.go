package loader

import "github.com/Carmen-Shannon/oxy-fx/engine/model"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithSkin selects the skin whose joints become the skeleton. The default picks the skin of the first skinned
// mesh; a document without skins imports every node as a bone.
//
// Parameters:
//   - index: the skin index in the document
//
// Returns:
//   - LoaderBuilderOption: a function that applies the skin option to a loader
func WithSkin(index int) LoaderBuilderOption {
	return func(l *loader) {
		l.skinIndex = index
	}
}

// WithRootMatrix places every loaded model in the world.
//
// Parameters:
//   - root: the model-to-world matrix (column-major)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the root matrix to a loader
func WithRootMatrix(root [16]float32) LoaderBuilderOption {
	return func(l *loader) {
		l.rootMatrix = &root
	}
}

// WithModel pre-populates the model cache.
//
// Parameters:
//   - key: the cache key for the model
//   - m: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that caches the model
func WithModel(key string, m model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = m
	}
}
