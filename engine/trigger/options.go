package trigger

const (
	// DefaultThreshold is the channel weight a channel must exceed to count as on.
	DefaultThreshold float32 = 0.5

	// DefaultFrameScale maps a frame channel weight of 1 to this many frames.
	DefaultFrameScale float32 = 100
)

type options struct {
	threshold    float32
	frameScale   float32
	autoPlayGate bool
}

func defaultOptions() options {
	return options{
		threshold:  DefaultThreshold,
		frameScale: DefaultFrameScale,
	}
}

// Option is a functional option for configuring a Policy.
type Option func(*options)

// WithThreshold sets the weight a channel must exceed to count as on.
//
// Parameters:
//   - threshold: the on threshold
//
// Returns:
//   - Option: a function that applies the threshold option
func WithThreshold(threshold float32) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithFrameScale sets how many frames a frame channel weight of 1 maps to.
// Non-positive values keep the default.
//
// Parameters:
//   - scale: frames per unit of frame weight
//
// Returns:
//   - Option: a function that applies the frame scale option
func WithFrameScale(scale float32) Option {
	return func(o *options) {
		if scale > 0 {
			o.frameScale = scale
		}
	}
}

// WithAutoPlayGate makes an auto-play policy wait for the auto play channel before starting.
// Once playing it keeps playing regardless of the channel.
//
// Parameters:
//   - gated: true to wait for the channel
//
// Returns:
//   - Option: a function that applies the gate option
func WithAutoPlayGate(gated bool) Option {
	return func(o *options) {
		o.autoPlayGate = gated
	}
}
