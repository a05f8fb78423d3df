package trigger

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/engine/binding"
	"github.com/Carmen-Shannon/oxy-fx/engine/effect"
)

func snapshot(weights map[binding.MorphKind]float32) binding.Snapshot {
	var s binding.Snapshot
	for k, w := range weights {
		s.Weights[k] = w
		s.Present[k] = true
	}
	return s
}

func newFrame(m effect.Manager, asset *effect.Asset, weights map[binding.MorphKind]float32) Frame {
	return Frame{Manager: m, Asset: asset, Snapshot: snapshot(weights)}
}

func TestEdge_OneStartPerRisingEdge(t *testing.T) {
	samples := []float32{0, 1, 1, 0.2, 0.9, 0.5, 0.51, 0.51, 0}
	wantStarts := []int{0, 1, 1, 1, 2, 2, 3, 3, 3}

	m := effect.NewManager()
	asset := &effect.Asset{Name: "spark"}
	p := NewPolicy(KindEdge)

	for i, w := range samples {
		p.Update(newFrame(m, asset, map[binding.MorphKind]float32{binding.MorphTrigger: w}))
		if got := p.Count(); got != wantStarts[i] {
			t.Errorf("sample %d (w=%v): Count() = %d, want %d", i, w, got, wantStarts[i])
		}
	}
}

func TestEdge_EraseClearsWithinUpdate(t *testing.T) {
	m := effect.NewManager()
	asset := &effect.Asset{Name: "spark"}
	p := NewPolicy(KindEdge)

	for _, w := range []float32{1, 0, 1, 0, 1} {
		p.Update(newFrame(m, asset, map[binding.MorphKind]float32{binding.MorphTrigger: w}))
	}
	if got := p.Count(); got != 3 {
		t.Fatalf("Count() before erase = %d, want 3", got)
	}
	owned := p.Handles()

	p.Update(newFrame(m, asset, map[binding.MorphKind]float32{binding.MorphTrigger: 1, binding.MorphTriggerErase: 1}))
	if got := p.Count(); got != 0 {
		t.Errorf("Count() after erase = %d, want 0", got)
	}
	for _, h := range owned {
		if m.Exists(h) {
			t.Errorf("handle %d still alive after erase", h)
		}
	}
}

func TestEdge_PrunesFinishedHandles(t *testing.T) {
	m := effect.NewManager()
	asset := &effect.Asset{Name: "spark", Duration: 5}
	p := NewPolicy(KindEdge)

	p.Update(newFrame(m, asset, map[binding.MorphKind]float32{binding.MorphTrigger: 1}))
	p.UpdateHandles(func(h effect.Handle, advance bool) {
		if !advance {
			t.Errorf("edge handle %d reported advance=false", h)
		}
		m.UpdateHandle(h, 10)
	})

	p.Update(newFrame(m, asset, map[binding.MorphKind]float32{binding.MorphTrigger: 1}))
	if got := p.Count(); got != 0 {
		t.Errorf("Count() after finish = %d, want 0", got)
	}
}

func TestAutoPlay_ExactlyOne(t *testing.T) {
	m := effect.NewManager()
	asset := &effect.Asset{Name: "aura", Duration: 3}
	p := NewPolicy(KindAutoPlay)

	for i := 0; i < 10; i++ {
		p.Update(newFrame(m, asset, nil))
		if got := p.Count(); got != 1 {
			t.Fatalf("update %d: Count() = %d, want 1", i, got)
		}
		p.UpdateHandles(func(h effect.Handle, _ bool) {
			m.UpdateHandle(h, 1)
		})
	}
	if got := m.Count(); got != 1 {
		t.Errorf("manager Count() = %d, want 1", got)
	}
}

func TestAutoPlay_ReplaysStoppedHandle(t *testing.T) {
	m := effect.NewManager()
	asset := &effect.Asset{Name: "aura"}
	p := NewPolicy(KindAutoPlay)

	p.Update(newFrame(m, asset, nil))
	first := p.Handles()[0]
	m.Stop(first)

	p.Update(newFrame(m, asset, nil))
	if got := p.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	if got := p.Handles()[0]; got == first {
		t.Errorf("handle = %d, want a new handle", got)
	}
}

func TestAutoPlay_Gate(t *testing.T) {
	m := effect.NewManager()
	asset := &effect.Asset{Name: "aura"}
	p := NewPolicy(KindAutoPlay, WithAutoPlayGate(true))

	p.Update(newFrame(m, asset, map[binding.MorphKind]float32{binding.MorphAutoPlay: 0}))
	if got := p.Count(); got != 0 {
		t.Errorf("Count() while gated = %d, want 0", got)
	}
	p.Update(newFrame(m, asset, map[binding.MorphKind]float32{binding.MorphAutoPlay: 1}))
	p.Update(newFrame(m, asset, map[binding.MorphKind]float32{binding.MorphAutoPlay: 0}))
	if got := p.Count(); got != 1 {
		t.Errorf("Count() after gate opened then closed = %d, want 1", got)
	}
}

func TestFrame_Position(t *testing.T) {
	asset := &effect.Asset{Name: "scrub", Duration: 60}

	tests := []struct {
		name      string
		frames    []float32
		loop      float32
		wantCount int
		wantTime  float32
	}{
		{"forward", []float32{0.1, 0.3}, 0, 1, 30},
		{"backward restarts", []float32{0.5, 0.2}, 0, 1, 20},
		{"wraps with loop", []float32{0.2, 0.75}, 1, 1, 15},
		{"parks past end without loop", []float32{0.2, 0.75}, 0, 0, 0},
		{"exact end parks", []float32{0.6}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := effect.NewManager()
			p := NewPolicy(KindFrame)
			for _, w := range tt.frames {
				p.Update(newFrame(m, asset, map[binding.MorphKind]float32{
					binding.MorphFrame: w,
					binding.MorphLoop:  tt.loop,
				}))
			}
			if got := p.Count(); got != tt.wantCount {
				t.Fatalf("Count() = %d, want %d", got, tt.wantCount)
			}
			if tt.wantCount == 0 {
				return
			}
			h := p.Handles()[0]
			if got := m.Time(h); math.Abs(float64(got-tt.wantTime)) > 1e-3 {
				t.Errorf("Time() = %v, want %v", got, tt.wantTime)
			}
			p.UpdateHandles(func(_ effect.Handle, advance bool) {
				if advance {
					t.Errorf("frame handle reported advance=true")
				}
			})
		})
	}
}

func TestFrame_InactiveWithoutChannel(t *testing.T) {
	m := effect.NewManager()
	p := NewPolicy(KindFrame)

	p.Update(newFrame(m, &effect.Asset{Name: "scrub"}, map[binding.MorphKind]float32{binding.MorphTrigger: 1}))
	if got := p.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
}

func TestSpeed(t *testing.T) {
	tests := []struct {
		name      string
		up, down  float32
		want      float32
		wantClamp float32
	}{
		{"scale up", 0.3, 0, 1.3, 1.3},
		{"scale down", 0, 0.4, 0.6, 0.6},
		{"balanced", 1, 1, 1, 1},
		{"negative clamps to zero", 0, 2, -1, 0},
		{"clamps to max", 5, 0, 6, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Speed(tt.up, tt.down)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("Speed(%v, %v) = %v, want %v", tt.up, tt.down, got, tt.want)
			}
			if c := ClampSpeed(got, 4); math.Abs(float64(c-tt.wantClamp)) > 1e-6 {
				t.Errorf("ClampSpeed(%v, 4) = %v, want %v", got, c, tt.wantClamp)
			}
		})
	}
}

func TestPolicy_Release(t *testing.T) {
	m := effect.NewManager()
	asset := &effect.Asset{Name: "spark"}
	p := NewPolicy(KindEdge)

	p.Update(newFrame(m, asset, map[binding.MorphKind]float32{binding.MorphTrigger: 1}))
	p.Release(m)
	if p.Count() != 0 || m.Count() != 0 {
		t.Errorf("after Release: policy Count() = %d, manager Count() = %d, want 0 and 0", p.Count(), m.Count())
	}
}

func TestPolicy_PruneAfterAdvance(t *testing.T) {
	m := effect.NewManager()
	asset := &effect.Asset{Name: "spark", Duration: 5}
	p := NewPolicy(KindAutoPlay)

	p.Update(newFrame(m, asset, nil))
	p.UpdateHandles(func(h effect.Handle, _ bool) {
		m.UpdateHandle(h, 10)
	})
	p.Prune(m)

	if got := p.Count(); got != 0 {
		t.Errorf("Count() after Prune = %d, want 0", got)
	}
	p.Prune(nil)
}
