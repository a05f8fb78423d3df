package binding

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/model"
	"golang.org/x/text/language"
)

func newHost(t *testing.T, morphs []string, bones []string) (*model.Host, model.Model, int) {
	t.Helper()

	ms := make([]model.Morph, len(morphs))
	for i, name := range morphs {
		ms[i] = model.Morph{Name: name}
	}
	bs := make([]model.Bone, len(bones))
	for i, name := range bones {
		tr := model.IdentityTransform()
		tr.Translation = [3]float32{float32(i + 1), 0, 0}
		bs[i] = model.Bone{Name: name, ParentIndex: -1, LocalTransform: tr}
	}

	m := model.NewModel(
		model.WithName("effect.pmx"),
		model.WithSkeleton(model.NewSkeleton(bs...)),
		model.WithMorphs(ms...),
	)
	h := model.NewHost()
	slot := h.Add(m)
	return h, m, slot
}

func TestBinding_AbsentChannelsReadDefaults(t *testing.T) {
	h, _, slot := newHost(t, nil, nil)
	b := NewBinding(h, slot)

	for k := MorphKind(0); k < MorphKindCount; k++ {
		if b.Has(k) {
			t.Errorf("Has(%v) = true, want false", k)
		}
		if got := b.Weight(slot, k); got != 0 {
			t.Errorf("Weight(%v) = %v, want 0", k, got)
		}
	}
	for k := BoneKind(0); k < BoneKindCount; k++ {
		if b.HasBone(k) {
			t.Errorf("HasBone(%v) = true, want false", k)
		}
		if got := b.Matrix(slot, k); !common.IsIdentity(got) {
			t.Errorf("Matrix(%v) = %v, want identity", k, got)
		}
	}
}

func TestBinding_EitherSpellingResolves(t *testing.T) {
	tests := []struct {
		name  string
		morph string
		kind  MorphKind
	}{
		{"default trigger", "trigger", MorphTrigger},
		{"localized trigger", "トリガー", MorphTrigger},
		{"default loop", "loop", MorphLoop},
		{"localized loop", "ループ", MorphLoop},
		{"localized scale down", "縮小", MorphScaleDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, slot := newHost(t, []string{tt.morph}, nil)
			m.SetMorphWeight(0, 0.8)
			b := NewBinding(h, slot)

			if got := b.MorphIndex(tt.kind); got != 0 {
				t.Errorf("MorphIndex(%v) = %d, want 0", tt.kind, got)
			}
			if got := b.Weight(slot, tt.kind); got != 0.8 {
				t.Errorf("Weight(%v) = %v, want 0.8", tt.kind, got)
			}
		})
	}
}

func TestBinding_LocalePreference(t *testing.T) {
	h, _, slot := newHost(t, []string{"trigger", "トリガー"}, []string{"センター", "center"})

	tests := []struct {
		name      string
		locale    language.Tag
		wantMorph int
		wantBone  int
	}{
		{"english prefers default names", language.English, 0, 1},
		{"japanese prefers localized names", language.Japanese, 1, 0},
		{"unmatched locale prefers default names", language.Make("sw"), 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBinding(h, slot, WithLocale(tt.locale))
			if got := b.MorphIndex(MorphTrigger); got != tt.wantMorph {
				t.Errorf("MorphIndex(trigger) = %d, want %d", got, tt.wantMorph)
			}
			if got := b.BoneIndex(BoneCenter); got != tt.wantBone {
				t.Errorf("BoneIndex(center) = %d, want %d", got, tt.wantBone)
			}
		})
	}
}

func TestBinding_SlotMismatchReadsDefaults(t *testing.T) {
	if debugChecks {
		t.Skip("slot mismatch panics in debug builds")
	}

	h, m, slot := newHost(t, []string{"frame"}, []string{"center"})
	m.SetMorphWeight(0, 0.5)
	b := NewBinding(h, slot)

	if got := b.Weight(slot+1, MorphFrame); got != 0 {
		t.Errorf("Weight(other slot) = %v, want 0", got)
	}
	if got := b.Matrix(slot+1, BoneCenter); !common.IsIdentity(got) {
		t.Errorf("Matrix(other slot) = %v, want identity", got)
	}
	if got := b.Weight(slot, MorphFrame); got != 0.5 {
		t.Errorf("Weight(own slot) = %v, want 0.5", got)
	}
}

func TestBinding_Snapshot(t *testing.T) {
	h, m, slot := newHost(t, []string{"trigger", "frame"}, []string{"center", "再生"})
	m.SetMorphWeight(0, 1)
	m.SetMorphWeight(1, 0.25)
	b := NewBinding(h, slot)

	s := b.Snapshot(slot)
	if s.Slot != slot {
		t.Errorf("Snapshot.Slot = %d, want %d", s.Slot, slot)
	}
	if got := s.Weight(MorphTrigger); got != 1 {
		t.Errorf("Weight(trigger) = %v, want 1", got)
	}
	if got := s.Weight(MorphFrame); got != 0.25 {
		t.Errorf("Weight(frame) = %v, want 0.25", got)
	}
	if s.Has(MorphLoop) {
		t.Errorf("Has(loop) = true, want false")
	}
	if !s.BonePresent[BonePlay] || !s.BonePresent[BoneCenter] || s.BonePresent[BoneBase] {
		t.Errorf("BonePresent = %v, want [true true false]", s.BonePresent)
	}

	// The play bone is the second root bone, translated by 2 on x.
	if got := common.Translation(s.Placement()); got != [3]float32{2, 0, 0} {
		t.Errorf("Placement translation = %v, want [2 0 0]", got)
	}
	if !common.IsIdentity(s.Matrix(BoneBase)) {
		t.Errorf("Matrix(base) = %v, want identity", s.Matrix(BoneBase))
	}
}

func TestSnapshot_PlacementFallsBackToCenter(t *testing.T) {
	h, _, slot := newHost(t, nil, []string{"center"})
	s := NewBinding(h, slot).Snapshot(slot)

	if got := common.Translation(s.Placement()); got != [3]float32{1, 0, 0} {
		t.Errorf("Placement translation = %v, want [1 0 0]", got)
	}
}

func TestSnapshot_UnknownKindsReadDefaults(t *testing.T) {
	var s Snapshot
	s.Weights[MorphTrigger] = 1
	s.Present[MorphTrigger] = true

	for _, kind := range []BoneKind{-1, BoneKindCount, BoneKindCount + 3} {
		if got := s.Matrix(kind); got != common.IdentityMatrix() {
			t.Errorf("Matrix(%d) = %v, want identity", kind, got)
		}
	}
	for _, kind := range []MorphKind{-1, MorphKindCount} {
		if got := s.Weight(kind); got != 0 {
			t.Errorf("Weight(%d) = %v, want 0", kind, got)
		}
		if s.Has(kind) {
			t.Errorf("Has(%d) = true, want false", kind)
		}
	}
}
