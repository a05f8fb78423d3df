package effect

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

func TestCatalog_Load(t *testing.T) {
	c := NewCatalog(WithAssets(
		Asset{Name: "spark", Duration: 60},
		Asset{Name: "aura", Duration: 120, Loop: true},
	))

	a, err := c.Load("aura")
	if err != nil {
		t.Fatalf("Load(aura) error = %v", err)
	}
	if a.Duration != 120 || !a.Loop {
		t.Errorf("Load(aura) = %+v, want duration 120 looping", a)
	}

	if _, err := c.Load("missing"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrAssetNotFound", err)
	}

	c.Put(Asset{Name: "smoke"})
	c.Delete("spark")
	if got := c.Names(); len(got) != 2 || got[0] != "aura" || got[1] != "smoke" {
		t.Errorf("Names() = %v, want [aura smoke]", got)
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if a.Name != "aura" {
		t.Errorf("loaded asset changed to %q after catalog mutation", a.Name)
	}
}

func TestManager_PlayAndStop(t *testing.T) {
	m := NewManager()
	asset := &Asset{Name: "spark", Duration: 10}

	h1 := m.Play(asset)
	h2 := m.Play(asset)
	if !h1.Valid() || !h2.Valid() || h1 == h2 {
		t.Fatalf("Play() = %d, %d, want two distinct valid handles", h1, h2)
	}
	if got := m.Play(nil); got != InvalidHandle {
		t.Errorf("Play(nil) = %d, want InvalidHandle", got)
	}

	m.Stop(h1)
	if m.Exists(h1) {
		t.Errorf("Exists(%d) after Stop = true, want false", h1)
	}
	if got := m.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}

	h3 := m.Play(asset)
	if h3 == h1 {
		t.Errorf("Play() reused stopped handle %d", h1)
	}

	m.StopAll()
	if got := m.Count(); got != 0 {
		t.Errorf("Count() after StopAll = %d, want 0", got)
	}
}

func TestManager_UpdateHandle(t *testing.T) {
	tests := []struct {
		name       string
		asset      Asset
		steps      []float32
		wantExists bool
		wantTime   float32
	}{
		{"advances", Asset{Duration: 10}, []float32{2, 3}, true, 5},
		{"finishes at duration", Asset{Duration: 10}, []float32{4, 6}, false, 0},
		{"loops at duration", Asset{Duration: 10, Loop: true}, []float32{4, 8}, true, 2},
		{"endless without duration", Asset{}, []float32{1000}, true, 1000},
		{"ignores negative delta", Asset{Duration: 10}, []float32{3, -2}, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			h := m.Play(&tt.asset)
			for _, d := range tt.steps {
				m.UpdateHandle(h, d)
			}
			if got := m.Exists(h); got != tt.wantExists {
				t.Fatalf("Exists() = %v, want %v", got, tt.wantExists)
			}
			if got := m.Time(h); got != tt.wantTime {
				t.Errorf("Time() = %v, want %v", got, tt.wantTime)
			}
		})
	}
}

func TestManager_Transform(t *testing.T) {
	m := NewManager()
	h := m.Play(&Asset{Name: "aura"})

	local := common.IdentityMatrix()
	local[12] = 1
	base := common.IdentityMatrix()
	base[13] = 2
	m.SetMatrix(h, local)
	m.SetBaseMatrix(h, base)
	m.SetScale(h, [3]float32{2, 2, 2})

	p, ok := m.Playback(h)
	if !ok {
		t.Fatalf("Playback(%d) not found", h)
	}
	if got := common.Translation(p.World()); got != [3]float32{1, 2, 0} {
		t.Errorf("World translation = %v, want [1 2 0]", got)
	}
	if got := p.World()[0]; got != 2 {
		t.Errorf("World scale x = %v, want 2", got)
	}

	m.Stop(h)
	m.SetMatrix(h, local)
	if _, ok := m.Playback(h); ok {
		t.Errorf("Playback(%d) after Stop found, want missing", h)
	}
}

func TestManager_Capacity(t *testing.T) {
	m := NewManager(WithMaxPlaybacks(2))
	asset := &Asset{Name: "spark"}

	m.Play(asset)
	h := m.Play(asset)
	if got := m.Play(asset); got != InvalidHandle {
		t.Errorf("Play() at capacity = %d, want InvalidHandle", got)
	}

	m.Stop(h)
	if got := m.Play(asset); !got.Valid() {
		t.Errorf("Play() after Stop = %d, want valid handle", got)
	}
	if got := m.Handles(); len(got) != 2 || got[0] > got[1] {
		t.Errorf("Handles() = %v, want two ascending handles", got)
	}
}
