package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestCamera_Position(t *testing.T) {
	tests := []struct {
		name                string
		radius, az, elev    float32
		wantX, wantY, wantZ float32
	}{
		{"front", 10, 0, 0, 0, 0, 10},
		{"side", 10, math.Pi / 2, 0, 10, 0, 0},
		{"above clamps below the pole", 10, 0, math.Pi, 0, 10 * float32(math.Cos(0.01)), 10 * float32(math.Sin(0.01))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(WithOrbit(tt.radius, tt.az, tt.elev))
			p := c.Position()
			if !near(p[0], tt.wantX) || !near(p[1], tt.wantY) || !near(p[2], tt.wantZ) {
				t.Errorf("Position() = %v, want [%v %v %v]", p, tt.wantX, tt.wantY, tt.wantZ)
			}
		})
	}
}

func TestCamera_ViewMovesTargetToOrigin(t *testing.T) {
	c := NewCamera(WithTarget(1, 2, 3), WithOrbit(5, 0.3, 0.2))
	v := c.View()
	tg := c.Target()

	// View * target lands on the negative Z axis at distance radius.
	x := v[0]*tg[0] + v[4]*tg[1] + v[8]*tg[2] + v[12]
	y := v[1]*tg[0] + v[5]*tg[1] + v[9]*tg[2] + v[13]
	z := v[2]*tg[0] + v[6]*tg[1] + v[10]*tg[2] + v[14]
	if !near(x, 0) || !near(y, 0) || !near(z, -5) {
		t.Errorf("View * target = [%v %v %v], want [0 0 -5]", x, y, z)
	}
}

func TestCamera_ZoomBounds(t *testing.T) {
	c := NewCamera(WithOrbit(10, 0, 0), WithRadiusBounds(2, 20))

	c.Zoom(100)
	if got := c.Radius(); got != 2 {
		t.Errorf("Radius() after zoom in = %v, want 2", got)
	}
	c.Zoom(-100)
	if got := c.Radius(); got != 20 {
		t.Errorf("Radius() after zoom out = %v, want 20", got)
	}
}

func TestCamera_SetAspect(t *testing.T) {
	c := NewCamera(WithPerspective(math.Pi/2, 1, 0.1, 100))
	before := c.Projection()

	c.SetAspect(2)
	after := c.Projection()
	if !near(after[0], before[0]/2) {
		t.Errorf("Projection()[0] = %v, want %v", after[0], before[0]/2)
	}

	c.SetAspect(0)
	if got := c.Projection(); got != after {
		t.Error("SetAspect(0) changed the projection")
	}
}
