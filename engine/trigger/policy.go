package trigger

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-fx/engine/binding"
	"github.com/Carmen-Shannon/oxy-fx/engine/effect"
)

// Kind selects which trigger behaviour a Policy runs.
type Kind int

const (
	// KindEdge starts a playback on every rising crossing of the trigger channel.
	KindEdge Kind = iota
	// KindAutoPlay keeps exactly one playback running for the life of the policy.
	KindAutoPlay
	// KindFrame positions a single playback on the effect timeline from the frame channel.
	KindFrame

	// KindCount is the number of policy kinds.
	KindCount
)

// Kinds lists every policy kind in the order an effect instance drives them.
var Kinds = [KindCount]Kind{KindEdge, KindAutoPlay, KindFrame}

func (k Kind) String() string {
	switch k {
	case KindEdge:
		return "edge"
	case KindAutoPlay:
		return "auto play"
	case KindFrame:
		return "frame"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Frame is everything a policy sees during one update.
type Frame struct {
	// Manager runs the playbacks the policy owns.
	Manager effect.Manager
	// Asset is the effect the policy plays.
	Asset *effect.Asset
	// Snapshot is the channel state of the model for this frame.
	Snapshot binding.Snapshot
}

// HandleFunc is called for every handle a policy owns after its update.
// advance is false for handles whose timeline position the policy sets itself.
type HandleFunc func(h effect.Handle, advance bool)

// Policy decides when playbacks start and stop from a channel snapshot.
//
// A Policy is a closed tagged variant: its Kind selects the behaviour and the fields used by the other kinds
// stay at their zero values. Policies do not coordinate with each other.
type Policy struct {
	kind    Kind
	opts    options
	handles []effect.Handle

	// edge
	triggered bool

	// frame
	position float32
}

// NewPolicy creates a Policy of the given kind.
//
// Parameters:
//   - kind: the trigger behaviour
//   - opts: functional options to configure thresholds and mapping
//
// Returns:
//   - *Policy: the newly created policy, owning no handles
func NewPolicy(kind Kind, opts ...Option) *Policy {
	if kind < 0 || kind >= KindCount {
		panic(fmt.Sprintf("trigger: unknown policy kind %d", int(kind)))
	}
	p := &Policy{
		kind: kind,
		opts: defaultOptions(),
	}
	for _, opt := range opts {
		opt(&p.opts)
	}
	return p
}

// Kind returns the behaviour of the policy.
func (p *Policy) Kind() Kind {
	return p.kind
}

// Update runs one step of the policy against a frame snapshot, starting and stopping playbacks as needed.
//
// Parameters:
//   - f: the frame state
func (p *Policy) Update(f Frame) {
	if f.Manager == nil {
		return
	}
	p.Prune(f.Manager)

	switch p.kind {
	case KindEdge:
		p.updateEdge(f)
	case KindAutoPlay:
		p.updateAutoPlay(f)
	case KindFrame:
		p.updateFrame(f)
	}
}

// UpdateHandles visits every owned handle.
//
// Parameters:
//   - fn: called once per owned handle
func (p *Policy) UpdateHandles(fn HandleFunc) {
	advance := p.kind != KindFrame
	for _, h := range p.handles {
		fn(h, advance)
	}
}

// Draw visits every owned handle for drawing.
//
// Parameters:
//   - fn: called once per owned handle
func (p *Policy) Draw(fn func(effect.Handle)) {
	for _, h := range p.handles {
		fn(h)
	}
}

// Handles returns a copy of the owned handles.
func (p *Policy) Handles() []effect.Handle {
	return append([]effect.Handle(nil), p.handles...)
}

// Count returns the number of owned handles.
func (p *Policy) Count() int {
	return len(p.handles)
}

// Position returns the timeline position of a frame-driven policy, in frames.
func (p *Policy) Position() float32 {
	return p.position
}

// Release stops every owned handle and returns the policy to its initial state.
//
// Parameters:
//   - m: the manager that owns the playbacks
func (p *Policy) Release(m effect.Manager) {
	if m != nil {
		for _, h := range p.handles {
			m.Stop(h)
		}
	}
	p.handles = p.handles[:0]
	p.triggered = false
	p.position = 0
}

// Prune drops handles the manager no longer reports alive, such as non-looping playbacks that
// finished while their handles were advanced.
//
// Parameters:
//   - m: the manager that owns the playbacks
func (p *Policy) Prune(m effect.Manager) {
	if m == nil {
		return
	}
	live := p.handles[:0]
	for _, h := range p.handles {
		if m.Exists(h) {
			live = append(live, h)
		}
	}
	p.handles = live
}

func (p *Policy) play(f Frame) effect.Handle {
	h := f.Manager.Play(f.Asset)
	if h.Valid() {
		p.handles = append(p.handles, h)
	}
	return h
}

func (p *Policy) above(s binding.Snapshot, kind binding.MorphKind) bool {
	return s.Weight(kind) > p.opts.threshold
}

func (p *Policy) updateEdge(f Frame) {
	on := p.above(f.Snapshot, binding.MorphTrigger)
	if on && !p.triggered {
		p.play(f)
	}
	p.triggered = on

	if p.above(f.Snapshot, binding.MorphTriggerErase) {
		for _, h := range p.handles {
			f.Manager.Stop(h)
		}
		p.handles = p.handles[:0]
	}
}

func (p *Policy) updateAutoPlay(f Frame) {
	if len(p.handles) > 0 {
		return
	}
	if p.opts.autoPlayGate && !p.above(f.Snapshot, binding.MorphAutoPlay) {
		return
	}
	p.play(f)
}

func (p *Policy) updateFrame(f Frame) {
	if !f.Snapshot.Has(binding.MorphFrame) {
		p.Release(f.Manager)
		return
	}

	target := f.Snapshot.Weight(binding.MorphFrame) * p.opts.frameScale
	if target < 0 || math.IsNaN(float64(target)) {
		target = 0
	}

	duration := float32(0)
	if f.Asset != nil {
		duration = float32(f.Asset.Duration)
	}
	if duration > 0 && target >= duration {
		if p.above(f.Snapshot, binding.MorphLoop) {
			target = float32(math.Mod(float64(target), float64(duration)))
		} else {
			p.Release(f.Manager)
			return
		}
	}

	if len(p.handles) > 0 && target >= p.position {
		f.Manager.UpdateHandle(p.handles[0], target-p.position)
		p.position = target
		return
	}

	// Backwards scrub or no live handle: restart from the beginning and seek.
	p.Release(f.Manager)
	if h := p.play(f); h.Valid() {
		f.Manager.UpdateHandle(h, target)
		p.position = target
	}
}

// Speed returns the playback speed set by the scale channels: 1 + scaleUp - scaleDown.
// The result is not clamped; see ClampSpeed.
//
// Parameters:
//   - scaleUp: the scale-up channel weight
//   - scaleDown: the scale-down channel weight
//
// Returns:
//   - float32: the playback speed multiplier
func Speed(scaleUp, scaleDown float32) float32 {
	return 1 + scaleUp - scaleDown
}

// ClampSpeed limits a playback speed to [0, limit]. NaN becomes 0.
//
// Parameters:
//   - speed: the raw speed
//   - limit: the largest allowed speed
//
// Returns:
//   - float32: the clamped speed
func ClampSpeed(speed, limit float32) float32 {
	if math.IsNaN(float64(speed)) || speed < 0 {
		return 0
	}
	if speed > limit {
		return limit
	}
	return speed
}

// SnapshotSpeed reads the speed channels of a snapshot.
//
// Parameters:
//   - s: the channel snapshot
//
// Returns:
//   - float32: the unclamped playback speed
func SnapshotSpeed(s binding.Snapshot) float32 {
	return Speed(s.Weight(binding.MorphScaleUp), s.Weight(binding.MorphScaleDown))
}
