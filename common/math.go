package common

import (
	"math"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// IdentityMatrix returns a new 4x4 identity matrix by value.
//
// Returns:
//   - [16]float32: the identity matrix in column-major order
func IdentityMatrix() [16]float32 {
	var m [16]float32
	Identity(m[:])
	return m
}

// IsIdentity reports whether m is exactly the identity matrix.
//
// Parameters:
//   - m: the matrix to test
//
// Returns:
//   - bool: true if every element matches the identity matrix
func IsIdentity(m [16]float32) bool {
	return m == IdentityMatrix()
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// MulMatrix returns a * b for two column-major matrices held by value.
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - [16]float32: the product a * b
func MulMatrix(a, b [16]float32) [16]float32 {
	var out [16]float32
	Mul4(out[:], a[:], b[:])
	return out
}

// ScaleMatrix returns a matrix that scales by x, y and z.
//
// Parameters:
//   - x, y, z: scale factors along each axis
//
// Returns:
//   - [16]float32: the scale matrix in column-major order
func ScaleMatrix(x, y, z float32) [16]float32 {
	m := IdentityMatrix()
	m[0], m[5], m[10] = x, y, z
	return m
}

// Translation extracts the translation column of a column-major matrix.
//
// Parameters:
//   - m: the source matrix
//
// Returns:
//   - [3]float32: the translation (x, y, z)
func Translation(m [16]float32) [3]float32 {
	return [3]float32{m[12], m[13], m[14]}
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}

// ComposeMatrix builds a column-major matrix from a translation, a rotation quaternion and a scale,
// in T * R * S order.
//
// Parameters:
//   - translation: the translation (x, y, z)
//   - rotation: the rotation quaternion (x, y, z, w); it is expected to be normalized
//   - scale: the scale factors (x, y, z)
//
// Returns:
//   - [16]float32: the composed matrix
func ComposeMatrix(translation [3]float32, rotation [4]float32, scale [3]float32) [16]float32 {
	x, y, z, w := rotation[0], rotation[1], rotation[2], rotation[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return [16]float32{
		(1 - 2*(yy+zz)) * scale[0], 2 * (xy + wz) * scale[0], 2 * (xz - wy) * scale[0], 0,
		2 * (xy - wz) * scale[1], (1 - 2*(xx+zz)) * scale[1], 2 * (yz + wx) * scale[1], 0,
		2 * (xz + wy) * scale[2], 2 * (yz - wx) * scale[2], (1 - 2*(xx+yy)) * scale[2], 0,
		translation[0], translation[1], translation[2], 1,
	}
}

// Perspective returns a perspective projection matrix for WebGPU clip space, where depth maps to [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - [16]float32: the projection matrix in column-major order
func Perspective(fovY, aspect, near, far float32) [16]float32 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	m := IdentityMatrix()
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1.0
	m[14] = (near * far) / (near - far)
	m[15] = 0.0
	return m
}

// LookAt returns a view matrix that transforms world coordinates into the space of a camera at eye looking at center.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - [16]float32: the view matrix in column-major order
func LookAt(eye, center, up [3]float32) [16]float32 {
	z := normalize3([3]float32{eye[0] - center[0], eye[1] - center[1], eye[2] - center[2]})
	x := normalize3([3]float32{
		up[1]*z[2] - up[2]*z[1],
		up[2]*z[0] - up[0]*z[2],
		up[0]*z[1] - up[1]*z[0],
	})
	y := [3]float32{
		z[1]*x[2] - z[2]*x[1],
		z[2]*x[0] - z[0]*x[2],
		z[0]*x[1] - z[1]*x[0],
	}

	return [16]float32{
		x[0], y[0], z[0], 0,
		x[1], y[1], z[1], 0,
		x[2], y[2], z[2], 0,
		-(x[0]*eye[0] + x[1]*eye[1] + x[2]*eye[2]),
		-(y[0]*eye[0] + y[1]*eye[1] + y[2]*eye[2]),
		-(z[0]*eye[0] + z[1]*eye[1] + z[2]*eye[2]),
		1,
	}
}

// normalize3 scales v to unit length. A zero vector is returned unchanged.
func normalize3(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
