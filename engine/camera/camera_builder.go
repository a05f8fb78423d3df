package camera

// CameraBuilderOption is a functional option for NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithTarget sets the point the camera orbits around.
//
// Parameters:
//   - x, y, z: the target in world space
//
// Returns:
//   - CameraBuilderOption: a function that sets the target
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithOrbit sets the initial spherical position of the eye.
//
// Parameters:
//   - radius: distance from the target
//   - azimuth: horizontal angle in radians around the Y axis
//   - elevation: vertical angle in radians from the horizontal plane
//
// Returns:
//   - CameraBuilderOption: a function that sets the orbit
func WithOrbit(radius, azimuth, elevation float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.radius = radius
		c.azimuth = azimuth
		c.elevation = elevation
	}
}

// WithRadiusBounds limits how far Zoom may move the eye.
//
// Parameters:
//   - minRadius: the closest distance to the target
//   - maxRadius: the farthest distance from the target
//
// Returns:
//   - CameraBuilderOption: a function that sets the bounds
func WithRadiusBounds(minRadius, maxRadius float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minRadius = minRadius
		c.maxRadius = maxRadius
	}
}

// WithPerspective sets the projection parameters.
//
// Parameters:
//   - fov: vertical field of view in radians
//   - aspect: the aspect ratio (width / height)
//   - near, far: the clipping plane distances
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection
func WithPerspective(fov, aspect, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
		if aspect > 0 {
			c.aspect = aspect
		}
		c.near = near
		c.far = far
	}
}
