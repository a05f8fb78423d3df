package binding

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"golang.org/x/text/language"
)

// supportedLocales lists the spellings of the channel table in column order.
var supportedLocales = []language.Tag{language.English, language.Japanese}

var localeMatcher = language.NewMatcher(supportedLocales)

// binding is the implementation of the Binding interface.
type binding struct {
	source ChannelSource
	slot   int
	locale language.Tag

	morphID [MorphKindCount]int
	boneID  [BoneKindCount]int
}

// Binding is the per-model table resolving well-known channel names to host indices.
//
// Names are resolved exactly once, at construction. Either spelling of a channel (default or localized)
// is accepted; the configured locale only decides which one is tried first. A channel the model does not
// expose resolves to NotFound and reads back as a zero-effect default: weight 0, identity matrix.
//
// Every accessor takes the slot it is being queried for. Querying with a slot other than the one the
// binding was resolved against is a programming defect: builds tagged oxyfx_debug panic, other builds
// return the defaults.
type Binding interface {
	// Slot returns the model slot the binding was resolved against.
	//
	// Returns:
	//   - int: the slot index
	Slot() int

	// Locale returns the locale whose spelling was tried first.
	//
	// Returns:
	//   - language.Tag: the preferred locale
	Locale() language.Tag

	// MorphIndex returns the resolved host index of a morph channel.
	//
	// Parameters:
	//   - kind: the morph channel
	//
	// Returns:
	//   - int: the host index, or NotFound
	MorphIndex(kind MorphKind) int

	// BoneIndex returns the resolved host index of a bone channel.
	//
	// Parameters:
	//   - kind: the bone channel
	//
	// Returns:
	//   - int: the host index, or NotFound
	BoneIndex(kind BoneKind) int

	// Has reports whether the model exposes a morph channel.
	//
	// Parameters:
	//   - kind: the morph channel
	//
	// Returns:
	//   - bool: true if the channel resolved
	Has(kind MorphKind) bool

	// HasBone reports whether the model exposes a bone channel.
	//
	// Parameters:
	//   - kind: the bone channel
	//
	// Returns:
	//   - bool: true if the channel resolved
	HasBone(kind BoneKind) bool

	// Weight reads the current weight of a morph channel.
	//
	// Parameters:
	//   - slot: the slot being queried, which must match Slot()
	//   - kind: the morph channel
	//
	// Returns:
	//   - float32: the weight, or 0 if the channel is absent
	Weight(slot int, kind MorphKind) float32

	// Matrix reads the current world matrix of a bone channel.
	//
	// Parameters:
	//   - slot: the slot being queried, which must match Slot()
	//   - kind: the bone channel
	//
	// Returns:
	//   - [16]float32: the bone world matrix, or identity if the channel is absent
	Matrix(slot int, kind BoneKind) [16]float32

	// Snapshot reads every channel once.
	//
	// Parameters:
	//   - slot: the slot being queried, which must match Slot()
	//
	// Returns:
	//   - Snapshot: the channel values for this frame
	Snapshot(slot int) Snapshot
}

var _ Binding = &binding{}

// NewBinding resolves every well-known channel of the model in slot.
//
// Parameters:
//   - src: the host channel source (must not be nil)
//   - slot: the model slot index
//   - options: functional options to configure resolution
//
// Returns:
//   - Binding: the resolved binding
func NewBinding(src ChannelSource, slot int, options ...BindingBuilderOption) Binding {
	if src == nil {
		panic("binding: NewBinding requires a non-nil ChannelSource")
	}

	b := &binding{
		source: src,
		slot:   slot,
		locale: language.English,
	}
	for _, opt := range options {
		opt(b)
	}

	order := spellingOrder(b.locale)
	for k := MorphKind(0); k < MorphKindCount; k++ {
		b.morphID[k] = resolve(order, morphNames[k], func(name string) int { return src.MorphIndex(slot, name) })
	}
	for k := BoneKind(0); k < BoneKindCount; k++ {
		b.boneID[k] = resolve(order, boneNames[k], func(name string) int { return src.BoneIndex(slot, name) })
	}

	return b
}

func (b *binding) Slot() int {
	return b.slot
}

func (b *binding) Locale() language.Tag {
	return b.locale
}

func (b *binding) MorphIndex(kind MorphKind) int {
	if kind < 0 || kind >= MorphKindCount {
		return NotFound
	}
	return b.morphID[kind]
}

func (b *binding) BoneIndex(kind BoneKind) int {
	if kind < 0 || kind >= BoneKindCount {
		return NotFound
	}
	return b.boneID[kind]
}

func (b *binding) Has(kind MorphKind) bool {
	return b.MorphIndex(kind) != NotFound
}

func (b *binding) HasBone(kind BoneKind) bool {
	return b.BoneIndex(kind) != NotFound
}

func (b *binding) Weight(slot int, kind MorphKind) float32 {
	if !b.checkSlot(slot) {
		return 0
	}
	id := b.MorphIndex(kind)
	if id == NotFound {
		return 0
	}
	return b.source.MorphWeight(b.slot, id)
}

func (b *binding) Matrix(slot int, kind BoneKind) [16]float32 {
	if !b.checkSlot(slot) {
		return common.IdentityMatrix()
	}
	id := b.BoneIndex(kind)
	if id == NotFound {
		return common.IdentityMatrix()
	}
	return b.source.BoneMatrix(b.slot, id)
}

func (b *binding) Snapshot(slot int) Snapshot {
	s := Snapshot{Slot: b.slot}
	for k := MorphKind(0); k < MorphKindCount; k++ {
		s.Present[k] = b.Has(k)
		s.Weights[k] = b.Weight(slot, k)
	}
	for k := BoneKind(0); k < BoneKindCount; k++ {
		s.BonePresent[k] = b.HasBone(k)
		s.Bones[k] = b.Matrix(slot, k)
	}
	return s
}

// checkSlot reports whether slot matches the slot the binding was resolved against.
// A mismatch panics when built with the oxyfx_debug tag.
func (b *binding) checkSlot(slot int) bool {
	if slot == b.slot {
		return true
	}
	if debugChecks {
		panic(fmt.Sprintf("binding: queried with slot %d, resolved against slot %d", slot, b.slot))
	}
	return false
}

// spellingOrder returns the channel table columns in the order they should be tried for locale.
func spellingOrder(locale language.Tag) [2]int {
	_, idx, confidence := localeMatcher.Match(locale)
	if confidence == language.No || idx == 0 {
		return [2]int{0, 1}
	}
	return [2]int{1, 0}
}

// resolve tries each spelling of a channel in order and returns the first index found.
func resolve(order [2]int, names [2]string, lookup func(string) int) int {
	for _, col := range order {
		if id := lookup(names[col]); id >= 0 {
			return id
		}
	}
	return NotFound
}
