package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithBackend replaces the backend selected by the backend type.
// It is meant for hosts that bring their own GPU integration.
//
// Parameters:
//   - b: the backend to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend option to a renderer
func WithBackend(b RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = b
	}
}

// WithViewport sets the initial back-buffer size when no surface is given.
//
// Parameters:
//   - width: the back-buffer width in pixels
//   - height: the back-buffer height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the viewport option to a renderer
func WithViewport(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.viewport.Width, r.viewport.Height = width, height
	}
}

// WithDistortion enables or disables the distortion render target. It is enabled by default.
//
// Parameters:
//   - enabled: false to never create the target
//
// Returns:
//   - RendererBuilderOption: a function that applies the distortion option to a renderer
func WithDistortion(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.useDistort = enabled
	}
}

// WithDrawHook sets the function the WGPU backend calls to rasterize the draw list into a render pass.
// Without a hook the WGPU backend only clears the back buffer.
//
// Parameters:
//   - hook: the rasterization callback
//
// Returns:
//   - RendererBuilderOption: a function that applies the draw hook option to a renderer
func WithDrawHook(hook DrawHook) RendererBuilderOption {
	return func(r *renderer) {
		r.drawHook = hook
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the main render pass.
// When not specified, the default is MSAA4x.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
