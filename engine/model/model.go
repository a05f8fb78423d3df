package model

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// model is the implementation of the Model interface.
type model struct {
	mu *sync.RWMutex

	name     string
	skeleton *Skeleton
	morphs   []Morph

	morphNameToIndex map[string]int
	rootMatrix       [16]float32

	// worldCache holds the bone world matrices; it is rebuilt lazily after any bone change.
	worldCache [][16]float32
	worldDirty bool
}

// Model defines the host-side view of an animated character model.
// A Model exposes named morph weights and bone world matrices, which is the read-only data
// effect bindings sample every frame. The host (or a test) drives it by writing morph weights
// and bone local transforms.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Skeleton retrieves the bone hierarchy for this model.
	// Returns nil for models without bones.
	//
	// Returns:
	//   - *Skeleton: the skeleton or nil
	Skeleton() *Skeleton

	// Morphs returns a copy of the model's morphs and their current weights.
	//
	// Returns:
	//   - []Morph: the morph table
	Morphs() []Morph

	// BoneIndex returns the index of a bone by name, or -1 if the model has no such bone.
	//
	// Parameters:
	//   - name: the bone name
	//
	// Returns:
	//   - int: the bone index, or -1 if not found
	BoneIndex(name string) int

	// MorphIndex returns the index of a morph by name, or -1 if the model has no such morph.
	//
	// Parameters:
	//   - name: the morph name
	//
	// Returns:
	//   - int: the morph index, or -1 if not found
	MorphIndex(name string) int

	// MorphWeight returns the current weight of the morph at index, or 0 for an out-of-range index.
	//
	// Parameters:
	//   - index: the morph index
	//
	// Returns:
	//   - float32: the morph weight
	MorphWeight(index int) float32

	// SetMorphWeight sets the weight of the morph at index. Out-of-range indices are ignored.
	//
	// Parameters:
	//   - index: the morph index
	//   - weight: the new weight
	SetMorphWeight(index int, weight float32)

	// SetMorphWeightByName sets the weight of a morph by name.
	//
	// Parameters:
	//   - name: the morph name
	//   - weight: the new weight
	//
	// Returns:
	//   - bool: false if the model has no morph with that name
	SetMorphWeightByName(name string, weight float32) bool

	// SetBoneTransform replaces the local transform of the bone at index.
	//
	// Parameters:
	//   - index: the bone index
	//   - t: the new local transform
	SetBoneTransform(index int, t Transform)

	// SetRootMatrix sets the placement of the whole model in the world.
	//
	// Parameters:
	//   - m: the root world matrix
	SetRootMatrix(m [16]float32)

	// BoneWorldMatrix returns the world matrix of the bone at index,
	// or the identity matrix for an out-of-range index.
	//
	// Parameters:
	//   - index: the bone index
	//
	// Returns:
	//   - [16]float32: the bone world matrix (column-major)
	BoneWorldMatrix(index int) [16]float32
}

var _ Model = &model{}

// NewModel creates a new Model with the provided options.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		mu:               &sync.RWMutex{},
		morphNameToIndex: make(map[string]int),
		rootMatrix:       common.IdentityMatrix(),
		worldDirty:       true,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Skeleton() *Skeleton {
	return m.skeleton
}

func (m *model) Morphs() []Morph {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Morph, len(m.morphs))
	copy(out, m.morphs)
	return out
}

func (m *model) BoneIndex(name string) int {
	if m.skeleton == nil {
		return -1
	}
	if i, ok := m.skeleton.BoneNameToIndex[NormalizeName(name)]; ok {
		return int(i)
	}
	return -1
}

func (m *model) MorphIndex(name string) int {
	if i, ok := m.morphNameToIndex[NormalizeName(name)]; ok {
		return i
	}
	return -1
}

func (m *model) MorphWeight(index int) float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if index < 0 || index >= len(m.morphs) {
		return 0
	}
	return m.morphs[index].Weight
}

func (m *model) SetMorphWeight(index int, weight float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.morphs) {
		return
	}
	m.morphs[index].Weight = weight
}

func (m *model) SetMorphWeightByName(name string, weight float32) bool {
	i := m.MorphIndex(name)
	if i < 0 {
		return false
	}
	m.SetMorphWeight(i, weight)
	return true
}

func (m *model) SetBoneTransform(index int, t Transform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.skeleton == nil || index < 0 || index >= len(m.skeleton.Bones) {
		return
	}
	m.skeleton.Bones[index].LocalTransform = t
	m.worldDirty = true
}

func (m *model) SetRootMatrix(root [16]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rootMatrix = root
	m.worldDirty = true
}

func (m *model) BoneWorldMatrix(index int) [16]float32 {
	m.mu.RLock()
	if !m.worldDirty {
		defer m.mu.RUnlock()
		return m.cachedWorld(index)
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.worldDirty {
		m.rebuildWorld()
	}
	return m.cachedWorld(index)
}

// cachedWorld reads a bone world matrix from the cache. Caller must hold m.mu.
func (m *model) cachedWorld(index int) [16]float32 {
	if index < 0 || index >= len(m.worldCache) {
		return common.IdentityMatrix()
	}
	return m.worldCache[index]
}

// rebuildWorld walks the skeleton parent-first and composes every bone's world matrix.
// Caller must hold the write lock.
func (m *model) rebuildWorld() {
	if m.skeleton == nil {
		m.worldCache = m.worldCache[:0]
		m.worldDirty = false
		return
	}
	if cap(m.worldCache) < len(m.skeleton.Bones) {
		m.worldCache = make([][16]float32, len(m.skeleton.Bones))
	}
	m.worldCache = m.worldCache[:len(m.skeleton.Bones)]

	for i, b := range m.skeleton.Bones {
		local := common.ComposeMatrix(b.LocalTransform.Translation, b.LocalTransform.Rotation, b.LocalTransform.Scale)
		parent := m.rootMatrix
		if b.ParentIndex >= 0 && int(b.ParentIndex) < i {
			parent = m.worldCache[b.ParentIndex]
		}
		m.worldCache[i] = common.MulMatrix(parent, local)
	}
	m.worldDirty = false
}
