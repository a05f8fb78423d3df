package effect

import "github.com/Carmen-Shannon/oxy-fx/common"

// Handle identifies one running playback inside a Manager.
// Handles are never reused by the Manager that issued them, so a stale handle can never alias a newer playback.
type Handle int32

// InvalidHandle is returned when a playback could not be started.
const InvalidHandle Handle = -1

// Valid reports whether h could refer to a playback.
func (h Handle) Valid() bool {
	return h >= 0
}

// Playback is a read-only view of one running playback, taken for drawing.
type Playback struct {
	// Handle identifies the playback.
	Handle Handle
	// Asset is the effect being played.
	Asset *Asset
	// Time is the position on the effect timeline, in frames.
	Time float32
	// Transform is the placement last set on the playback.
	Transform common.Transform
}

// World returns the world matrix of the playback.
//
// Returns:
//   - [16]float32: the composed world matrix
func (p Playback) World() [16]float32 {
	return p.Transform.World()
}
