package binding

// NotFound is the resolved index of a channel the model does not expose.
const NotFound = -1

// MorphKind identifies one of the well-known scalar channels an effect reacts to.
type MorphKind int

const (
	// MorphTrigger starts a new playback on each rising edge.
	MorphTrigger MorphKind = iota
	// MorphAutoPlay gates the auto-play policy when it runs in channel-gated mode.
	MorphAutoPlay
	// MorphFrame positions the frame-driven playback on the effect timeline.
	MorphFrame
	// MorphLoop makes the frame-driven position wrap at the end of the effect.
	MorphLoop
	// MorphTriggerErase stops every edge-triggered playback while above threshold.
	MorphTriggerErase
	// MorphScaleUp speeds playback up.
	MorphScaleUp
	// MorphScaleDown slows playback down.
	MorphScaleDown

	// MorphKindCount is the number of morph kinds.
	MorphKindCount
)

// BoneKind identifies one of the well-known transform channels an effect is placed by.
type BoneKind int

const (
	// BonePlay places the effect when present, taking precedence over BoneCenter.
	BonePlay BoneKind = iota
	// BoneCenter places the effect.
	BoneCenter
	// BoneBase is the space the effect placement lives in.
	BoneBase

	// BoneKindCount is the number of bone kinds.
	BoneKindCount
)

// Spellings of every channel: index 0 is the default (English) name, index 1 the localized (Japanese) name.
var (
	morphNames = [MorphKindCount][2]string{
		MorphTrigger:      {"trigger", "トリガー"},
		MorphAutoPlay:     {"auto play", "オート再生"},
		MorphFrame:        {"frame", "フレーム"},
		MorphLoop:         {"loop", "ループ"},
		MorphTriggerErase: {"trigger erase", "トリガー削除"},
		MorphScaleUp:      {"scale up", "拡大"},
		MorphScaleDown:    {"scale down", "縮小"},
	}

	boneNames = [BoneKindCount][2]string{
		BonePlay:   {"play", "再生"},
		BoneCenter: {"center", "センター"},
		BoneBase:   {"base", "ベース"},
	}
)

// String returns the default spelling of the morph channel.
func (k MorphKind) String() string {
	if k < 0 || k >= MorphKindCount {
		return "unknown"
	}
	return morphNames[k][0]
}

// Names returns both spellings of the morph channel, default first.
//
// Returns:
//   - [2]string: the default and localized names
func (k MorphKind) Names() [2]string {
	if k < 0 || k >= MorphKindCount {
		return [2]string{}
	}
	return morphNames[k]
}

// String returns the default spelling of the bone channel.
func (k BoneKind) String() string {
	if k < 0 || k >= BoneKindCount {
		return "unknown"
	}
	return boneNames[k][0]
}

// Names returns both spellings of the bone channel, default first.
//
// Returns:
//   - [2]string: the default and localized names
func (k BoneKind) Names() [2]string {
	if k < 0 || k >= BoneKindCount {
		return [2]string{}
	}
	return boneNames[k]
}
