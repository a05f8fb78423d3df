package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithSkeleton is an option builder that sets the bone hierarchy of the Model.
//
// Parameters:
//   - skeleton: the skeleton to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the skeleton option to a model
func WithSkeleton(skeleton *Skeleton) ModelBuilderOption {
	return func(m *model) {
		m.skeleton = skeleton
		m.worldDirty = true
	}
}

// WithMorphs is an option builder that sets the morph table of the Model.
// The first morph wins when two names normalize to the same key.
//
// Parameters:
//   - morphs: the morphs with their initial weights
//
// Returns:
//   - ModelBuilderOption: a function that applies the morphs option to a model
func WithMorphs(morphs ...Morph) ModelBuilderOption {
	return func(m *model) {
		m.morphs = append([]Morph(nil), morphs...)
		m.morphNameToIndex = make(map[string]int, len(morphs))
		for i, mo := range m.morphs {
			key := NormalizeName(mo.Name)
			if _, exists := m.morphNameToIndex[key]; !exists {
				m.morphNameToIndex[key] = i
			}
		}
	}
}

// WithRootMatrix is an option builder that places the whole Model in the world.
//
// Parameters:
//   - root: the root world matrix
//
// Returns:
//   - ModelBuilderOption: a function that applies the root matrix option to a model
func WithRootMatrix(root [16]float32) ModelBuilderOption {
	return func(m *model) {
		m.rootMatrix = root
		m.worldDirty = true
	}
}
