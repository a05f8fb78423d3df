package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/clock"
	"github.com/Carmen-Shannon/oxy-fx/engine/config"
	"github.com/Carmen-Shannon/oxy-fx/engine/effect"
)

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithClock sets the frame clock. The default is a system clock at the default frame rate.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(c clock.Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithWindow sets the host window. Run then steps the engine from the window's message loop and the window's
// device events are forwarded to the registry.
//
// Parameters:
//   - w: the host window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithConfigWatcher applies configuration reloads to the asset catalog at the start of every step.
//
// Parameters:
//   - w: the configuration watcher
//   - catalog: the catalog the registry loads assets from
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfigWatcher(w *config.Watcher, catalog effect.Catalog) EngineBuilderOption {
	return func(e *engine) {
		e.watcher = w
		e.catalog = catalog
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second for a loop without a window.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithCamera sets the host camera. Its matrices are passed to the registry every step and its aspect ratio
// follows window resizes.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}
