package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	up     [3]float32
	target [3]float32

	// Spherical coordinates of the eye around the target.
	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	view       [16]float32
	projection [16]float32
}

// Camera is an orbit camera around a target point. It produces the view and projection matrices the host hands
// to the renderer every frame.
type Camera interface {
	// View returns the current view matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	View() [16]float32

	// Projection returns the current projection matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	Projection() [16]float32

	// Position returns the eye position.
	//
	// Returns:
	//   - [3]float32: the eye position in world space
	Position() [3]float32

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - [3]float32: the target in world space
	Target() [3]float32

	// SetTarget moves the point the camera orbits around.
	//
	// Parameters:
	//   - x, y, z: the new target in world space
	SetTarget(x, y, z float32)

	// SetAspect sets the aspect ratio (width / height). Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Orbit rotates the eye around the target. The elevation stays within the configured bounds.
	//
	// Parameters:
	//   - dAzimuth: horizontal rotation in radians
	//   - dElevation: vertical rotation in radians
	Orbit(dAzimuth, dElevation float32)

	// Zoom moves the eye towards (positive) or away from (negative) the target within the radius bounds.
	//
	// Parameters:
	//   - delta: the radius change
	Zoom(delta float32)

	// Radius returns the distance between eye and target.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera looking at the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:           &sync.Mutex{},
		up:           [3]float32{0, 1, 0},
		radius:       30,
		elevation:    float32(math.Pi / 12),
		minRadius:    1,
		maxRadius:    1000,
		minElevation: -float32(math.Pi/2) + 0.01,
		maxElevation: float32(math.Pi/2) - 0.01,
		fov:          float32(math.Pi / 4),
		aspect:       16.0 / 9.0,
		near:         0.1,
		far:          1000,
	}
	for _, opt := range options {
		opt(c)
	}
	c.radius = common.Clamp(c.radius, c.minRadius, c.maxRadius)
	c.elevation = common.Clamp(c.elevation, c.minElevation, c.maxElevation)
	c.updateMatrices()
	return c
}

func (c *cameraImpl) View() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *cameraImpl) Projection() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

func (c *cameraImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) SetTarget(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) Orbit(dAzimuth, dElevation float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.azimuth += dAzimuth
	c.elevation = common.Clamp(c.elevation+dElevation, c.minElevation, c.maxElevation)
	c.updateMatrices()
}

func (c *cameraImpl) Zoom(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.radius = common.Clamp(c.radius-delta, c.minRadius, c.maxRadius)
	c.updateMatrices()
}

func (c *cameraImpl) Radius() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.radius
}

// position computes the eye from the target and the spherical coordinates. Caller must hold the mutex.
func (c *cameraImpl) position() [3]float32 {
	cosElev := float32(math.Cos(float64(c.elevation)))
	sinElev := float32(math.Sin(float64(c.elevation)))
	cosAzim := float32(math.Cos(float64(c.azimuth)))
	sinAzim := float32(math.Sin(float64(c.azimuth)))

	return [3]float32{
		c.target[0] + c.radius*cosElev*sinAzim,
		c.target[1] + c.radius*sinElev,
		c.target[2] + c.radius*cosElev*cosAzim,
	}
}

// updateMatrices recalculates the view and projection matrices. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.view = common.LookAt(c.position(), c.target, c.up)
	c.projection = common.Perspective(c.fov, c.aspect, c.near, c.far)
}
