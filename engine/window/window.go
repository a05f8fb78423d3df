package window

import (
	"fmt"
	"log"
	"runtime"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides the host window, its keyboard input and the device events derived from it.
//
// A window that is minimized, or whose framebuffer shrinks to zero, can no longer back a render target; the window
// reports that as a device loss. When a usable framebuffer returns, the window reports a device reset carrying
// the new viewport. Plain resizes while the device is usable are reported through the resize callback.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized while the device is usable.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetDeviceLostCallback sets the function called when the window stops being able to back a render target.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetDeviceLostCallback(callback func())

	// SetDeviceResetCallback sets the function called when a lost window can back a render target again.
	//
	// Parameters:
	//   - callback: function receiving the new viewport
	SetDeviceResetCallback(callback func(vp common.Viewport))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// DeviceLost reports whether the window currently cannot back a render target.
	//
	// Returns:
	//   - bool: true between a device loss and the following reset
	DeviceLost() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	// min/max bound interactive resizing.
	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	// lost is true between a device loss and the following reset.
	lost bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate      func()
	onResize      func(width, height int)
	onDeviceLost  func()
	onDeviceReset func(vp common.Viewport)
	onKeyDown     func(keyCode uint32)
	onKeyUp       func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-fx",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetDeviceLostCallback(callback func()) {
	w.onDeviceLost = callback
}

func (w *engineWindow) SetDeviceResetCallback(callback func(vp common.Viewport)) {
	w.onDeviceReset = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) DeviceLost() bool {
	return w.lost
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// framebufferChanged records a new framebuffer size and derives the device event it implies.
func (w *engineWindow) framebufferChanged(width, height int) {
	w.width = width
	w.height = height

	vp := common.Viewport{Width: width, Height: height}
	switch {
	case !vp.Valid():
		w.deviceLost()
	case w.lost:
		w.deviceReset(vp)
	case w.onResize != nil:
		w.onResize(width, height)
	}
}

// iconifyChanged handles minimize and restore. A restore only resets the device once the framebuffer is usable;
// otherwise the following framebuffer event performs the reset.
func (w *engineWindow) iconifyChanged(iconified bool, width, height int) {
	if iconified {
		w.deviceLost()
		return
	}
	w.width = width
	w.height = height
	if vp := (common.Viewport{Width: width, Height: height}); w.lost && vp.Valid() {
		w.deviceReset(vp)
	}
}

func (w *engineWindow) deviceLost() {
	if w.lost {
		return
	}
	w.lost = true
	log.Printf("[Window] device lost")
	if w.onDeviceLost != nil {
		w.onDeviceLost()
	}
}

func (w *engineWindow) deviceReset(vp common.Viewport) {
	w.lost = false
	log.Printf("[Window] device reset at %dx%d", vp.Width, vp.Height)
	if w.onDeviceReset != nil {
		w.onDeviceReset(vp)
	}
}
