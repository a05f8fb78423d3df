package renderer

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeNull selects a headless backend that keeps every frame in memory and draws nothing.
	// It needs no window and no GPU.
	BackendTypeNull
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the GPU API seam of the Renderer.
// The Renderer owns the device state machine; a backend only creates, draws into and releases resources.
type RendererBackend interface {
	// ConfigureSurface (re)configures the presentation surface at a new back-buffer size.
	//
	// Parameters:
	//   - width: the back-buffer width in pixels
	//   - height: the back-buffer height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode selects how frames are delivered. ConfigureSurface must run afterwards for it to apply.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// CreateDistortionTarget creates the full-screen render target distortion effects sample from.
	//
	// Parameters:
	//   - width: the target width in pixels
	//   - height: the target height in pixels
	//
	// Returns:
	//   - error: an error if the target could not be created
	CreateDistortionTarget(width, height int) error

	// ReleaseDistortionTarget frees the distortion render target. It is safe to call when none exists.
	ReleaseDistortionTarget()

	// BeginFrame acquires the next back buffer.
	//
	// Returns:
	//   - error: an error if the back buffer could not be acquired
	BeginFrame() error

	// DrawFrame encodes the frame's draw list.
	//
	// Parameters:
	//   - frame: the camera and draw list of the frame
	DrawFrame(frame Frame)

	// EndFrame submits the encoded frame.
	EndFrame()

	// Present displays the submitted frame.
	Present()

	// Release frees every backend resource.
	Release()
}
