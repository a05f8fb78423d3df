package instance

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/binding"
	"github.com/Carmen-Shannon/oxy-fx/engine/effect"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/trigger"
)

// DefaultMaxSpeed is the largest playback speed an instance passes to the manager.
const DefaultMaxSpeed float32 = 4

// instance is the implementation of the Instance interface.
type instance struct {
	manager effect.Manager
	asset   *effect.Asset
	binding binding.Binding

	transform common.Transform
	scale     [3]float32
	maxSpeed  float32

	enabled    [trigger.KindCount]bool
	policyOpts []trigger.Option
	policies   [trigger.KindCount]*trigger.Policy

	last binding.Snapshot
}

// Instance is one effect asset bound to one model slot.
//
// Every update reads the model's channels once, places the effect from the play (or center) and base bones,
// and runs the edge, auto-play and frame policies in that order against the same snapshot. The policies do not
// coordinate: an asset whose model drives several of them at once plays several layers.
type Instance interface {
	// Update advances the instance by the frames elapsed since the last update.
	//
	// Parameters:
	//   - slot: the model slot being updated; must be the slot of the binding
	//   - deltaFrames: the whole frames elapsed on the host clock
	Update(slot, deltaFrames int)

	// Step advances the instance from a snapshot taken beforehand with Binding().Snapshot.
	// Update is Step with a fresh snapshot; Step lets a caller sample many bindings in parallel first.
	//
	// Parameters:
	//   - snap: the channel snapshot of the instance's model for this frame
	//   - deltaFrames: the whole frames elapsed on the host clock
	Step(snap binding.Snapshot, deltaFrames int)

	// Draw submits one draw command per live playback.
	//
	// Parameters:
	//   - slot: the model slot being drawn
	//   - r: the renderer receiving the commands
	Draw(slot int, r renderer.Renderer)

	// OnLostDevice is called when the graphics device is lost. Simulation state is not touched.
	OnLostDevice()

	// OnResetDevice is called after the graphics device is reset. Simulation state is not touched.
	OnResetDevice()

	// Release stops every playback the instance owns.
	Release()

	// Asset returns the effect asset the instance plays.
	//
	// Returns:
	//   - *effect.Asset: the asset
	Asset() *effect.Asset

	// Binding returns the channel binding of the instance.
	//
	// Returns:
	//   - binding.Binding: the binding
	Binding() binding.Binding

	// Transform returns the placement computed by the last update.
	//
	// Returns:
	//   - common.Transform: the placement applied to every playback
	Transform() common.Transform

	// Policy returns the policy of a kind, or nil if it is disabled.
	//
	// Parameters:
	//   - kind: the policy kind
	//
	// Returns:
	//   - *trigger.Policy: the policy
	Policy(kind trigger.Kind) *trigger.Policy

	// Handles returns every playback owned by the instance, policy by policy.
	//
	// Returns:
	//   - []effect.Handle: the owned handles
	Handles() []effect.Handle

	// HandleCount returns the number of playbacks owned by the instance.
	//
	// Returns:
	//   - int: the owned handle count
	HandleCount() int

	// Speed returns the clamped playback speed of the last update.
	//
	// Returns:
	//   - float32: the speed multiplier in [0, max speed]
	Speed() float32
}

var _ Instance = &instance{}

// NewInstance creates an Instance playing asset for the model behind b.
//
// Parameters:
//   - manager: the shared effect manager (must not be nil)
//   - asset: the effect to play (must not be nil)
//   - b: the channel binding of the model (must not be nil)
//   - options: functional options to configure the instance
//
// Returns:
//   - Instance: the newly created instance, owning no playbacks
func NewInstance(manager effect.Manager, asset *effect.Asset, b binding.Binding, options ...InstanceBuilderOption) Instance {
	if manager == nil {
		panic("instance: NewInstance requires a non-nil effect.Manager")
	}
	if asset == nil {
		panic("instance: NewInstance requires a non-nil *effect.Asset")
	}
	if b == nil {
		panic("instance: NewInstance requires a non-nil binding.Binding")
	}

	in := &instance{
		manager:   manager,
		asset:     asset,
		binding:   b,
		transform: common.NewTransform(),
		scale:     [3]float32{1, 1, 1},
		maxSpeed:  DefaultMaxSpeed,
	}
	for _, k := range trigger.Kinds {
		in.enabled[k] = true
	}
	for _, opt := range options {
		opt(in)
	}

	for _, k := range trigger.Kinds {
		if in.enabled[k] {
			in.policies[k] = trigger.NewPolicy(k, in.policyOpts...)
		}
	}
	in.transform.Scale = in.scale
	return in
}

func (in *instance) Update(slot, deltaFrames int) {
	in.Step(in.binding.Snapshot(slot), deltaFrames)
}

func (in *instance) Step(snap binding.Snapshot, deltaFrames int) {
	in.last = snap

	in.transform = common.Transform{
		Matrix:     snap.Placement(),
		BaseMatrix: snap.Matrix(binding.BoneBase),
		Scale:      in.scale,
	}

	speed := in.Speed()
	delta := float32(max(deltaFrames, 0)) * speed

	frame := trigger.Frame{
		Manager:  in.manager,
		Asset:    in.asset,
		Snapshot: snap,
	}
	apply := func(h effect.Handle, advance bool) {
		in.manager.SetMatrix(h, in.transform.Matrix)
		in.manager.SetBaseMatrix(h, in.transform.BaseMatrix)
		in.manager.SetScale(h, in.transform.Scale)
		if advance {
			in.manager.UpdateHandle(h, delta)
		}
	}

	for _, p := range in.policies {
		if p == nil {
			continue
		}
		p.Update(frame)
		p.UpdateHandles(apply)
		p.Prune(in.manager)
	}
}

func (in *instance) Draw(slot int, r renderer.Renderer) {
	if r == nil {
		return
	}
	submit := func(h effect.Handle) {
		pb, ok := in.manager.Playback(h)
		if !ok {
			return
		}
		r.Submit(renderer.DrawCommand{
			Slot:       slot,
			Handle:     h,
			Effect:     in.asset.Name,
			Time:       pb.Time,
			World:      pb.World(),
			Distortion: in.asset.Distortion,
		})
	}
	for _, p := range in.policies {
		if p != nil {
			p.Draw(submit)
		}
	}
}

func (in *instance) OnLostDevice() {}

func (in *instance) OnResetDevice() {}

func (in *instance) Release() {
	for _, p := range in.policies {
		if p != nil {
			p.Release(in.manager)
		}
	}
}

func (in *instance) Asset() *effect.Asset {
	return in.asset
}

func (in *instance) Binding() binding.Binding {
	return in.binding
}

func (in *instance) Transform() common.Transform {
	return in.transform
}

func (in *instance) Policy(kind trigger.Kind) *trigger.Policy {
	if kind < 0 || kind >= trigger.KindCount {
		return nil
	}
	return in.policies[kind]
}

func (in *instance) Handles() []effect.Handle {
	var handles []effect.Handle
	for _, p := range in.policies {
		if p != nil {
			handles = append(handles, p.Handles()...)
		}
	}
	return handles
}

func (in *instance) HandleCount() int {
	n := 0
	for _, p := range in.policies {
		if p != nil {
			n += p.Count()
		}
	}
	return n
}

func (in *instance) Speed() float32 {
	return trigger.ClampSpeed(trigger.SnapshotSpeed(in.last), in.maxSpeed)
}
