// Package loader imports host models from glTF 2.0 files. Only what effects bind to is imported: the bone
// hierarchy of a skin and the morph target names of the meshes.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/model"
)

// ErrUnsupportedFormat is returned for a file that is neither .gltf nor .glb.
var ErrUnsupportedFormat = errors.New("loader: unsupported model format")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	// skinIndex selects the skin used as the skeleton; -1 picks the skin of the first skinned mesh.
	skinIndex  int
	rootMatrix *[16]float32

	modelCache map[string]model.Model
}

// Loader imports and caches host models.
type Loader interface {
	// Load imports a .gltf or .glb file and caches the result by path.
	// If the model is already cached, the cached model is returned.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: ErrUnsupportedFormat for another extension, or a read or decode error
	Load(path string) (model.Model, error)

	// LoadReader imports a model from a reader and caches it by name. GLB data is detected from its magic number.
	//
	// Parameters:
	//   - name: the cache key and model name
	//   - r: the reader providing model data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: a read or decode error
	LoadReader(name string, r io.Reader) (model.Model, error)

	// Get retrieves a cached model by name.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Loader: the new loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		skinIndex:  -1,
		modelCache: make(map[string]model.Model),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if m := l.Get(path); m != nil {
		return m, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
	default:
		return nil, fmt.Errorf("load %s: %w", path, ErrUnsupportedFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	m, err := l.importModel(path, data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return l.store(path, m), nil
}

func (l *loader) LoadReader(name string, r io.Reader) (model.Model, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	m, err := l.importModel(name, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return l.store(name, m), nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cp := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		cp[k] = v
	}
	return cp
}

// store caches m unless a concurrent load of the same name won, in which case the cached model is returned.
func (l *loader) store(name string, m model.Model) model.Model {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.modelCache[name]; ok {
		return cached
	}
	l.modelCache[name] = m
	return m
}

func (l *loader) importModel(name string, data []byte) (model.Model, error) {
	var (
		doc *gltfDocument
		err error
	)
	if isGLB(data) {
		doc, err = parseGLB(data)
	} else {
		doc, err = parseGLTF(data)
	}
	if err != nil {
		return nil, err
	}

	skin := l.skinIndex
	if skin < 0 {
		skin = firstSkin(doc)
	}
	skeleton, err := extractSkeleton(doc, skin)
	if err != nil {
		return nil, err
	}

	options := []model.ModelBuilderOption{
		model.WithName(modelName(doc, name)),
		model.WithSkeleton(skeleton),
		model.WithMorphs(extractMorphs(doc)...),
	}
	if l.rootMatrix != nil {
		options = append(options, model.WithRootMatrix(*l.rootMatrix))
	}
	return model.NewModel(options...), nil
}

// firstSkin returns the skin of the first skinned mesh node, or -1.
func firstSkin(doc *gltfDocument) int {
	for _, node := range doc.Nodes {
		if node.Mesh != nil && node.Skin != nil {
			return *node.Skin
		}
	}
	if len(doc.Skins) > 0 {
		return 0
	}
	return -1
}

// extractMorphs collects the morph targets of every mesh in document order. Unnamed targets get a positional name.
// A name shared by several meshes yields one morph.
func extractMorphs(doc *gltfDocument) []model.Morph {
	nodeWeights := make(map[int][]float32)
	for _, node := range doc.Nodes {
		if node.Mesh != nil && len(node.Weights) > 0 {
			nodeWeights[*node.Mesh] = node.Weights
		}
	}

	var morphs []model.Morph
	seen := make(map[string]bool)
	for meshIdx, mesh := range doc.Meshes {
		count := len(mesh.Extras.TargetNames)
		for _, p := range mesh.Primitives {
			count = max(count, len(p.Targets))
		}

		weights := mesh.Weights
		if w, ok := nodeWeights[meshIdx]; ok {
			weights = w
		}

		for i := 0; i < count; i++ {
			name := fmt.Sprintf("%s_morph_%d", mesh.Name, i)
			if i < len(mesh.Extras.TargetNames) && mesh.Extras.TargetNames[i] != "" {
				name = mesh.Extras.TargetNames[i]
			}
			key := model.NormalizeName(name)
			if seen[key] {
				continue
			}
			seen[key] = true

			var w float32
			if i < len(weights) {
				w = weights[i]
			}
			morphs = append(morphs, model.Morph{Name: name, Weight: w})
		}
	}
	return morphs
}

// modelName picks the default scene name, then the file name without extension.
func modelName(doc *gltfDocument, fallback string) string {
	var sceneName string
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		sceneName = doc.Scenes[*doc.Scene].Name
	}
	base := filepath.Base(fallback)
	return common.Coalesce(sceneName, strings.TrimSuffix(base, filepath.Ext(base)))
}
