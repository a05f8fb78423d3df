package binding

// ChannelSource is the host's read-only view of its loaded models.
// Every lookup is keyed by model slot; a channel the model does not expose is reported as NotFound
// and is never an error.
type ChannelSource interface {
	// MorphIndex resolves a morph name on the model in slot.
	//
	// Parameters:
	//   - slot: the model slot index
	//   - name: the morph name
	//
	// Returns:
	//   - int: the morph index, or NotFound
	MorphIndex(slot int, name string) int

	// BoneIndex resolves a bone name on the model in slot.
	//
	// Parameters:
	//   - slot: the model slot index
	//   - name: the bone name
	//
	// Returns:
	//   - int: the bone index, or NotFound
	BoneIndex(slot int, name string) int

	// MorphWeight reads the current weight of a resolved morph.
	//
	// Parameters:
	//   - slot: the model slot index
	//   - index: the resolved morph index
	//
	// Returns:
	//   - float32: the weight, nominally in [0, 1]
	MorphWeight(slot, index int) float32

	// BoneMatrix reads the current world matrix of a resolved bone.
	//
	// Parameters:
	//   - slot: the model slot index
	//   - index: the resolved bone index
	//
	// Returns:
	//   - [16]float32: the bone world matrix (column-major)
	BoneMatrix(slot, index int) [16]float32
}
