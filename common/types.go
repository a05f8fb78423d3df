// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Transform is the spatial placement of a playing effect.
// The world matrix of a playback handle is BaseMatrix * Matrix * scale, which mirrors how the host composes
// a bone's local placement inside its parent space.
type Transform struct {
	// Matrix is the local placement of the effect, usually a bone's world matrix.
	Matrix [16]float32
	// BaseMatrix is the space the local placement lives in. Identity means world space.
	BaseMatrix [16]float32
	// Scale is the per-axis scale applied before Matrix.
	Scale [3]float32
}

// NewTransform returns a Transform with identity matrices and unit scale.
//
// Returns:
//   - Transform: the identity transform
func NewTransform() Transform {
	return Transform{
		Matrix:     IdentityMatrix(),
		BaseMatrix: IdentityMatrix(),
		Scale:      [3]float32{1, 1, 1},
	}
}

// World composes the transform into a single column-major world matrix.
//
// Returns:
//   - [16]float32: BaseMatrix * Matrix * Scale
func (t Transform) World() [16]float32 {
	local := MulMatrix(t.Matrix, ScaleMatrix(t.Scale[0], t.Scale[1], t.Scale[2]))
	return MulMatrix(t.BaseMatrix, local)
}

// Viewport describes the back-buffer dimensions reported by a device reset.
type Viewport struct {
	// Width is the back-buffer width in pixels.
	Width int
	// Height is the back-buffer height in pixels.
	Height int
}

// Valid reports whether both dimensions are positive. A minimized window reports a zero-sized viewport.
//
// Returns:
//   - bool: true if the viewport can back a render target
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}
