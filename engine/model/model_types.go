package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// --- Transform & Skeleton Types ---

// Transform represents a decomposed local transform of a bone.
type Transform struct {
	// Translation is the position offset.
	Translation [3]float32

	// Rotation is the orientation as a quaternion (x, y, z, w).
	Rotation [4]float32

	// Scale is the scale factor along each axis.
	Scale [3]float32
}

// IdentityTransform returns a Transform with no translation, no rotation and unit scale.
//
// Returns:
//   - Transform: the identity transform
func IdentityTransform() Transform {
	return Transform{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
}

// Bone represents a single bone in a skeleton hierarchy.
type Bone struct {
	// Name is the bone's identifier (the channel name effects bind to).
	Name string

	// ParentIndex is the index of the parent bone (-1 for root bones).
	ParentIndex int32

	// LocalTransform is the bone's transform relative to its parent.
	// Updated each frame by the host's animation playback.
	LocalTransform Transform
}

// Skeleton represents a bone hierarchy.
type Skeleton struct {
	// Bones is the array of all bones in the skeleton. Parents always precede their children.
	Bones []Bone

	// RootBoneIndices are indices of bones with no parent.
	RootBoneIndices []int32

	// BoneNameToIndex maps normalized bone names to their indices for quick lookup.
	BoneNameToIndex map[string]int32
}

// NewSkeleton builds a Skeleton from bones ordered parent-first and indexes their names.
//
// Parameters:
//   - bones: the bones, each parent appearing before its children
//
// Returns:
//   - *Skeleton: the indexed skeleton
func NewSkeleton(bones ...Bone) *Skeleton {
	s := &Skeleton{
		Bones:           bones,
		BoneNameToIndex: make(map[string]int32, len(bones)),
	}
	for i, b := range bones {
		if b.ParentIndex < 0 {
			s.RootBoneIndices = append(s.RootBoneIndices, int32(i))
		}
		if _, exists := s.BoneNameToIndex[NormalizeName(b.Name)]; !exists {
			s.BoneNameToIndex[NormalizeName(b.Name)] = int32(i)
		}
	}
	return s
}

// --- Morph Types ---

// Morph is a named scalar weight on the model, animated by the host in [0, 1].
type Morph struct {
	// Name is the morph identifier (the channel name effects bind to).
	Name string

	// Weight is the current morph weight.
	Weight float32
}

// NormalizeName folds a channel name into the form used for lookups.
// Names are NFKC-normalized so full-width and half-width spellings of the same
// name (common in hand-authored models) resolve to the same channel.
//
// Parameters:
//   - name: the raw channel name
//
// Returns:
//   - string: the normalized name
func NormalizeName(name string) string {
	return strings.TrimSpace(norm.NFKC.String(name))
}
