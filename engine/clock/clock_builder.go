package clock

// ClockBuilderOption is a functional option for configuring a Clock.
type ClockBuilderOption func(*clock)

// WithFrameRate sets the number of frames per host second.
// Values <= 0 are treated as the default (30).
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - ClockBuilderOption: option function to apply
func WithFrameRate(fps float64) ClockBuilderOption {
	return func(c *clock) {
		if fps <= 0 {
			fps = DefaultFrameRate
		}
		c.frameRate = fps
	}
}

// WithTimeSource sets the host time source read on every call.
// When not provided the clock uses a SystemTimeSource.
//
// Parameters:
//   - src: the host time source
//
// Returns:
//   - ClockBuilderOption: option function to apply
func WithTimeSource(src TimeSource) ClockBuilderOption {
	return func(c *clock) {
		c.source = src
	}
}
