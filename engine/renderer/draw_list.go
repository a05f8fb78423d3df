package renderer

import "github.com/Carmen-Shannon/oxy-fx/engine/effect"

// DrawCommand asks the renderer to draw one playback this frame.
type DrawCommand struct {
	// Slot is the model slot that owns the playback.
	Slot int
	// Handle identifies the playback inside the effect manager.
	Handle effect.Handle
	// Effect is the name of the effect asset being played.
	Effect string
	// Time is the playback position on the effect timeline, in frames.
	Time float32
	// World is the world matrix of the playback (column-major).
	World [16]float32
	// Distortion marks playbacks that sample the distortion render target.
	Distortion bool
}

// Frame is everything submitted for one frame: the host camera and the draw list.
// Camera matrices are passed through from the host unchanged.
type Frame struct {
	// View is the host view matrix.
	View [16]float32
	// Projection is the host projection matrix.
	Projection [16]float32
	// Commands is the draw list in submission order.
	Commands []DrawCommand
	// DistortionAvailable reports whether the distortion render target exists this frame.
	DistortionAvailable bool
}

// HasDistortion reports whether any command in the frame samples the distortion target.
func (f Frame) HasDistortion() bool {
	for _, c := range f.Commands {
		if c.Distortion {
			return true
		}
	}
	return false
}
