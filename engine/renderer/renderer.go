package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrDeviceLost is returned by BeginFrame while the graphics device is lost.
	ErrDeviceLost = errors.New("renderer: device lost")

	// ErrNoFrame is returned by EndFrame when no frame was begun.
	ErrNoFrame = errors.New("renderer: no frame in progress")
)

// Surface is the presentation target a WGPU renderer draws into. window.Window satisfies it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	viewport   common.Viewport
	lost       bool
	distortion bool
	useDistort bool

	view, projection [16]float32

	inFrame  bool
	commands []DrawCommand

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	drawHook             DrawHook
}

// Renderer receives the per-frame draw list of every playing effect and owns the device-side resources
// effects need, chiefly the full-screen distortion render target.
//
// The renderer tracks the graphics device state. While the device is lost, frames cannot begin and the
// distortion target does not exist; a reset recreates the target at the new back-buffer size.
// Camera matrices are host data passed through unchanged.
type Renderer interface {
	// SetCamera stores the host camera for the following frames.
	//
	// Parameters:
	//   - view: the host view matrix
	//   - projection: the host projection matrix
	SetCamera(view, projection [16]float32)

	// Camera returns the stored host camera.
	//
	// Returns:
	//   - [16]float32: the view matrix
	//   - [16]float32: the projection matrix
	Camera() (view, projection [16]float32)

	// BeginFrame acquires the back buffer and starts a new, empty draw list.
	//
	// Returns:
	//   - error: ErrDeviceLost while the device is lost, or a backend error
	BeginFrame() error

	// Submit appends a command to the current draw list. Commands submitted outside a frame are dropped.
	//
	// Parameters:
	//   - cmd: the draw command
	Submit(cmd DrawCommand)

	// DrawList returns a copy of the current draw list.
	//
	// Returns:
	//   - []DrawCommand: the commands submitted since BeginFrame
	DrawList() []DrawCommand

	// EndFrame encodes the draw list, submits it and presents the back buffer.
	//
	// Returns:
	//   - error: ErrNoFrame if no frame was begun
	EndFrame() error

	// Resize reconfigures the surface and the distortion target for a new back-buffer size
	// without a device loss.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// OnLostDevice releases every device-side resource. An in-progress frame is dropped.
	OnLostDevice()

	// OnResetDevice recreates device-side resources at the new back-buffer size.
	//
	// Parameters:
	//   - vp: the back-buffer size after the reset
	//
	// Returns:
	//   - error: an error if the viewport is empty or the distortion target could not be created
	OnResetDevice(vp common.Viewport) error

	// DeviceLost reports whether the device is currently lost.
	//
	// Returns:
	//   - bool: true between OnLostDevice and a successful OnResetDevice
	DeviceLost() bool

	// DistortionAvailable reports whether the distortion render target currently exists.
	//
	// Returns:
	//   - bool: true if distortion effects can sample the target
	DistortionAvailable() bool

	// Viewport returns the current back-buffer size.
	//
	// Returns:
	//   - common.Viewport: the back-buffer size
	Viewport() common.Viewport

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Release frees every backend resource. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend.
// BackendTypeWGPU requires a non-nil surface; BackendTypeNull ignores it and may be given nil.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - surface: the presentation surface, typically a window.Window
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new Renderer with the distortion target created at the surface size
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		view:        common.IdentityMatrix(),
		projection:  common.IdentityMatrix(),
		useDistort:  true,
	}

	// Options first so adapter flags are known before the backend requests a GPU.
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		switch backendType {
		case BackendTypeNull:
			r.backend = newNullRendererBackend()
		case BackendTypeWGPU:
			fallthrough
		default:
			if surface == nil {
				panic("renderer: NewRenderer requires a non-nil Surface for the WGPU backend")
			}
			msaa := MSAA4x
			if r.pendingMSAA != nil {
				msaa = *r.pendingMSAA
			}
			r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, msaa, r.drawHook)
		}
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if surface != nil {
		r.viewport = common.Viewport{Width: surface.Width(), Height: surface.Height()}
	}
	if r.viewport.Valid() {
		r.backend.ConfigureSurface(r.viewport.Width, r.viewport.Height)
		if err := r.createDistortion(); err != nil {
			log.Printf("[Renderer] %v", err)
		}
	}
	return r
}

func (r *renderer) SetCamera(view, projection [16]float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view, r.projection = view, projection
}

func (r *renderer) Camera() (view, projection [16]float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view, r.projection
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lost {
		return ErrDeviceLost
	}
	if r.inFrame {
		return fmt.Errorf("previous frame not yet ended")
	}
	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	r.inFrame = true
	r.commands = r.commands[:0]
	return nil
}

func (r *renderer) Submit(cmd DrawCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inFrame {
		return
	}
	r.commands = append(r.commands, cmd)
}

func (r *renderer) DrawList() []DrawCommand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DrawCommand(nil), r.commands...)
}

func (r *renderer) EndFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFrame {
		return ErrNoFrame
	}
	r.inFrame = false

	r.backend.DrawFrame(Frame{
		View:                r.view,
		Projection:          r.projection,
		Commands:            r.commands,
		DistortionAvailable: r.distortion,
	})
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.viewport = common.Viewport{Width: width, Height: height}
	if r.lost || !r.viewport.Valid() {
		return
	}
	r.backend.ConfigureSurface(width, height)
	r.releaseDistortion()
	if err := r.createDistortion(); err != nil {
		log.Printf("[Renderer] %v", err)
	}
}

func (r *renderer) OnLostDevice() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lost {
		return
	}
	r.lost = true
	r.inFrame = false
	r.commands = r.commands[:0]
	r.releaseDistortion()
	log.Printf("[Renderer] device lost, distortion target released")
}

func (r *renderer) OnResetDevice(vp common.Viewport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !vp.Valid() {
		return fmt.Errorf("reset with empty viewport %dx%d", vp.Width, vp.Height)
	}

	r.viewport = vp
	r.backend.ConfigureSurface(vp.Width, vp.Height)
	r.releaseDistortion()
	if err := r.createDistortion(); err != nil {
		return err
	}
	r.lost = false
	log.Printf("[Renderer] device reset at %dx%d", vp.Width, vp.Height)
	return nil
}

func (r *renderer) DeviceLost() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lost
}

func (r *renderer) DistortionAvailable() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.distortion
}

func (r *renderer) Viewport() common.Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.releaseDistortion()
	r.backend.Release()
}

// createDistortion creates the distortion target at the current viewport. Caller must hold r.mu.
func (r *renderer) createDistortion() error {
	if !r.useDistort {
		return nil
	}
	if err := r.backend.CreateDistortionTarget(r.viewport.Width, r.viewport.Height); err != nil {
		return fmt.Errorf("failed to create distortion target: %w", err)
	}
	r.distortion = true
	return nil
}

// releaseDistortion releases the distortion target if it exists. Caller must hold r.mu.
func (r *renderer) releaseDistortion() {
	if !r.distortion {
		return
	}
	r.backend.ReleaseDistortionTarget()
	r.distortion = false
}
