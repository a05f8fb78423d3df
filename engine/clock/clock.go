package clock

import (
	"math"
	"sync"
	"time"
)

// DefaultFrameRate is the animation frame rate the host keys its channels at.
const DefaultFrameRate = 30.0

// TimeSource reports the host's current playback time.
// The value is expected to be non-decreasing, but hosts that seek backwards are tolerated.
type TimeSource interface {
	// Now returns the current host time in seconds.
	//
	// Returns:
	//   - float64: the host time in seconds
	Now() float64
}

// TimeSourceFunc adapts a plain function to the TimeSource interface.
type TimeSourceFunc func() float64

// Now calls f.
func (f TimeSourceFunc) Now() float64 {
	return f()
}

// SystemTimeSource reports the wall-clock seconds elapsed since it was created.
type SystemTimeSource struct {
	origin time.Time
}

// NewSystemTimeSource creates a SystemTimeSource anchored at the current time.
//
// Returns:
//   - *SystemTimeSource: the newly created time source
func NewSystemTimeSource() *SystemTimeSource {
	return &SystemTimeSource{origin: time.Now()}
}

// Now returns the monotonic seconds elapsed since the source was created.
func (s *SystemTimeSource) Now() float64 {
	return time.Since(s.origin).Seconds()
}

// clock is the implementation of the Clock interface.
type clock struct {
	mu *sync.Mutex

	source    TimeSource
	frameRate float64

	// consumed is the host time already handed out as whole frames.
	consumed float64
	// pending is the frame count the last Get reported and Update will consume.
	pending int
}

// Clock converts host time into whole elapsed frames.
//
// The fractional remainder of a frame is never discarded: Update only consumes the whole frames
// that Get reported, so rounding error cannot accumulate across calls and frames crossed between
// Get and Update are carried to the next Get.
type Clock interface {
	// Get returns the whole frames elapsed since the last Update.
	// A host clock that moved backwards yields 0, never a negative delta.
	//
	// Returns:
	//   - int: elapsed whole frames, always >= 0
	Get() int

	// Update consumes the whole frames reported by the last Get. It does not read the host clock.
	Update()

	// Advance reads the host clock once, consumes the whole frames elapsed and returns them.
	// It is equivalent to Get followed by Update.
	//
	// Returns:
	//   - int: the frames consumed, always >= 0
	Advance() int

	// Reset re-anchors the clock at the current host time, discarding any pending frames.
	// Use this after the host seeks its timeline.
	Reset()

	// FrameRate returns the configured frames per second.
	//
	// Returns:
	//   - float64: the frame rate
	FrameRate() float64
}

var _ Clock = &clock{}

// NewClock creates a new Clock anchored at the current host time.
//
// Parameters:
//   - options: functional options for frame rate and time source
//
// Returns:
//   - Clock: the newly created clock
func NewClock(options ...ClockBuilderOption) Clock {
	c := &clock{
		mu:        &sync.Mutex{},
		frameRate: DefaultFrameRate,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.source == nil {
		c.source = NewSystemTimeSource()
	}
	c.consumed = c.source.Now()
	return c
}

func (c *clock) Get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = c.elapsedFrames()
	return c.pending
}

func (c *clock) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consume(c.pending)
}

func (c *clock) Advance() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	frames := c.elapsedFrames()
	c.consume(frames)
	return frames
}

func (c *clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumed = c.source.Now()
	c.pending = 0
}

func (c *clock) FrameRate() float64 {
	return c.frameRate
}

// consume moves the anchor forward by frames whole frames and clears pending.
// Caller must hold c.mu.
func (c *clock) consume(frames int) {
	c.pending = 0
	if frames <= 0 {
		return
	}
	c.consumed += float64(frames) / c.frameRate
}

// elapsedFrames computes floor((now - consumed) * frameRate) clamped to zero.
// Caller must hold c.mu.
func (c *clock) elapsedFrames() int {
	frames := math.Floor((c.source.Now() - c.consumed) * c.frameRate)
	if frames <= 0 || math.IsNaN(frames) {
		return 0
	}
	return int(frames)
}
