package instance

import "github.com/Carmen-Shannon/oxy-fx/engine/trigger"

// InstanceBuilderOption is a functional option for configuring an Instance during construction.
type InstanceBuilderOption func(*instance)

// WithPolicies selects which trigger policies the instance runs. All three run by default.
// Running more than one lets a model drive the same asset through several channels at once,
// and every policy's playbacks are drawn.
//
// Parameters:
//   - kinds: the policy kinds to enable
//
// Returns:
//   - InstanceBuilderOption: a function that applies the policies option to an instance
func WithPolicies(kinds ...trigger.Kind) InstanceBuilderOption {
	return func(in *instance) {
		in.enabled = [trigger.KindCount]bool{}
		for _, k := range kinds {
			if k >= 0 && k < trigger.KindCount {
				in.enabled[k] = true
			}
		}
	}
}

// WithScale sets the per-axis scale applied to every playback.
//
// Parameters:
//   - x, y, z: scale factors along each axis
//
// Returns:
//   - InstanceBuilderOption: a function that applies the scale option to an instance
func WithScale(x, y, z float32) InstanceBuilderOption {
	return func(in *instance) {
		in.scale = [3]float32{x, y, z}
	}
}

// WithMaxSpeed sets the largest playback speed the scale channels can reach. Non-positive values keep the default.
//
// Parameters:
//   - speed: the speed limit
//
// Returns:
//   - InstanceBuilderOption: a function that applies the max speed option to an instance
func WithMaxSpeed(speed float32) InstanceBuilderOption {
	return func(in *instance) {
		if speed > 0 {
			in.maxSpeed = speed
		}
	}
}

// WithPolicyOptions passes options to every trigger policy of the instance.
//
// Parameters:
//   - opts: the trigger options
//
// Returns:
//   - InstanceBuilderOption: a function that applies the policy options to an instance
func WithPolicyOptions(opts ...trigger.Option) InstanceBuilderOption {
	return func(in *instance) {
		in.policyOpts = append(in.policyOpts, opts...)
	}
}
