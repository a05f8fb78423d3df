package binding

import "github.com/Carmen-Shannon/oxy-fx/common"

// Snapshot is every channel value of one model, read once per frame.
// Trigger policies only ever see a snapshot, so all of them agree on the model state of a frame.
type Snapshot struct {
	// Slot is the model slot the values were read from.
	Slot int

	// Weights holds each morph weight, 0 for absent channels.
	Weights [MorphKindCount]float32
	// Present marks which morph channels the model exposes.
	Present [MorphKindCount]bool

	// Bones holds each bone world matrix, identity for absent channels.
	Bones [BoneKindCount][16]float32
	// BonePresent marks which bone channels the model exposes.
	BonePresent [BoneKindCount]bool
}

// Weight returns the weight of a morph channel.
func (s Snapshot) Weight(kind MorphKind) float32 {
	if kind < 0 || kind >= MorphKindCount {
		return 0
	}
	return s.Weights[kind]
}

// Has reports whether the morph channel was present.
func (s Snapshot) Has(kind MorphKind) bool {
	if kind < 0 || kind >= MorphKindCount {
		return false
	}
	return s.Present[kind]
}

// Matrix returns the world matrix of a bone channel, identity for an unknown kind.
func (s Snapshot) Matrix(kind BoneKind) [16]float32 {
	if kind < 0 || kind >= BoneKindCount {
		return common.IdentityMatrix()
	}
	return s.Bones[kind]
}

// Placement returns the local placement matrix of the effect: the play bone when the model has one,
// otherwise the center bone (identity when neither exists).
//
// Returns:
//   - [16]float32: the local placement matrix
func (s Snapshot) Placement() [16]float32 {
	if s.BonePresent[BonePlay] {
		return s.Bones[BonePlay]
	}
	return s.Bones[BoneCenter]
}
