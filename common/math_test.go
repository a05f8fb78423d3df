package common

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestMulMatrix_IdentityAndTranslation(t *testing.T) {
	tr := ComposeMatrix([3]float32{1, 2, 3}, [4]float32{0, 0, 0, 1}, [3]float32{1, 1, 1})

	if got := MulMatrix(IdentityMatrix(), tr); got != tr {
		t.Errorf("MulMatrix(I, T) = %v, want %v", got, tr)
	}
	got := Translation(MulMatrix(tr, tr))
	if want := [3]float32{2, 4, 6}; got != want {
		t.Errorf("Translation(T * T) = %v, want %v", got, want)
	}
}

func TestLookAt_MovesEyeToOrigin(t *testing.T) {
	eye := [3]float32{0, 0, 5}
	view := LookAt(eye, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})

	// The eye itself lands on the view-space origin.
	for i := 0; i < 3; i++ {
		v := view[i]*eye[0] + view[4+i]*eye[1] + view[8+i]*eye[2] + view[12+i]
		if !near(v, 0) {
			t.Errorf("view * eye [%d] = %v, want 0", i, v)
		}
	}
	// The target sits in front of the camera along -Z.
	if z := view[14]; !near(z, -5) {
		t.Errorf("view * target z = %v, want -5", z)
	}
}

func TestPerspective_DepthRange(t *testing.T) {
	p := Perspective(float32(math.Pi/2), 1, 1, 10)

	depth := func(z float32) float32 {
		clipZ := p[10]*z + p[14]
		clipW := p[11] * z
		return clipZ / clipW
	}
	if got := depth(-1); !near(got, 0) {
		t.Errorf("depth at near plane = %v, want 0", got)
	}
	if got := depth(-10); !near(got, 1) {
		t.Errorf("depth at far plane = %v, want 1", got)
	}
	if !near(p[0], 1) || !near(p[5], 1) {
		t.Errorf("Perspective(90deg) focal = %v, %v, want 1, 1", p[0], p[5])
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, want float32
	}{
		{-1, 0},
		{0.5, 0.5},
		{3, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, 0, 1); got != tt.want {
			t.Errorf("Clamp(%v, 0, 1) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
