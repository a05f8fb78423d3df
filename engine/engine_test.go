package engine

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/clock"
	"github.com/Carmen-Shannon/oxy-fx/engine/config"
	"github.com/Carmen-Shannon/oxy-fx/engine/effect"
	"github.com/Carmen-Shannon/oxy-fx/engine/model"
	"github.com/Carmen-Shannon/oxy-fx/engine/registry"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
)

type fakeWindow struct {
	update func()
	resize func(width, height int)
	lost   func()
	reset  func(vp common.Viewport)
	frames int
}

func (w *fakeWindow) SetUpdateCallback(cb func())                        { w.update = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int))       { w.resize = cb }
func (w *fakeWindow) SetDeviceLostCallback(cb func())                    { w.lost = cb }
func (w *fakeWindow) SetDeviceResetCallback(cb func(vp common.Viewport)) { w.reset = cb }

func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.frames; i++ {
		w.update()
	}
}

type fixture struct {
	now     float64
	catalog effect.Catalog
	reg     registry.Registry
	slot    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		catalog: effect.NewCatalog(effect.WithAssets(
			effect.Asset{Name: "aura", Duration: 1000, Loop: true},
			effect.Asset{Name: "spark", Duration: 1000, Loop: true},
		)),
	}
	host := model.NewHost()
	f.slot = host.Add(model.NewModel(model.WithName("a.pmx")))
	r := renderer.NewRenderer(renderer.BackendTypeNull, nil, renderer.WithViewport(320, 240))
	f.reg = registry.NewRegistry(f.catalog, host, r)
	t.Cleanup(f.reg.Close)
	return f
}

func (f *fixture) engine(options ...EngineBuilderOption) Engine {
	c := clock.NewClock(clock.WithFrameRate(30), clock.WithTimeSource(clock.TimeSourceFunc(func() float64 { return f.now })))
	return NewEngine(f.reg, append([]EngineBuilderOption{WithClock(c)}, options...)...)
}

func (f *fixture) handleTime(t *testing.T, name string) float32 {
	t.Helper()
	id, ok := f.reg.ID(name)
	if !ok {
		t.Fatalf("ID(%s) missing", name)
	}
	in, _ := f.reg.Get(id)
	hs := in.Handles()
	if len(hs) != 1 {
		t.Fatalf("%s owns %d handles, want 1", name, len(hs))
	}
	return f.reg.Manager().Time(hs[0])
}

func TestEngine_StepAdvancesByClockFrames(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	if _, err := f.reg.Register("aura", f.slot); err != nil {
		t.Fatal(err)
	}

	var ticks []int
	e.SetTickCallback(func(deltaFrames int) { ticks = append(ticks, deltaFrames) })

	f.now = 1.0
	if err := e.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got := f.handleTime(t, "aura"); got != 30 {
		t.Errorf("Time() = %v, want 30", got)
	}

	// No clock movement keeps the playback in place.
	if err := e.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got := f.handleTime(t, "aura"); got != 30 {
		t.Errorf("Time() after idle step = %v, want 30", got)
	}

	f.now = 1.5
	_ = e.Step()
	if got := f.handleTime(t, "aura"); got != 45 {
		t.Errorf("Time() = %v, want 45", got)
	}

	if want := []int{30, 0, 15}; len(ticks) != len(want) || ticks[0] != want[0] || ticks[1] != want[1] || ticks[2] != want[2] {
		t.Errorf("tick deltas = %v, want %v", ticks, want)
	}
}

func TestEngine_WindowDeviceEvents(t *testing.T) {
	f := newFixture(t)
	w := &fakeWindow{}
	f.engine(WithWindow(w))

	w.resize(640, 480)
	if got := f.reg.Renderer().Viewport(); got != (common.Viewport{Width: 640, Height: 480}) {
		t.Errorf("Viewport() after resize = %+v, want 640x480", got)
	}

	w.lost()
	if got := f.reg.State(); got != registry.StateLost {
		t.Fatalf("State() after lost = %v, want lost", got)
	}

	w.reset(common.Viewport{Width: 800, Height: 600})
	if got := f.reg.State(); got != registry.StateActive {
		t.Errorf("State() after reset = %v, want active", got)
	}
	if got := f.reg.Renderer().Viewport(); got != (common.Viewport{Width: 800, Height: 600}) {
		t.Errorf("Viewport() after reset = %+v, want 800x600", got)
	}
}

func TestEngine_RunWithWindow(t *testing.T) {
	f := newFixture(t)
	w := &fakeWindow{frames: 3}
	e := f.engine(WithWindow(w))
	if _, err := f.reg.Register("aura", f.slot); err != nil {
		t.Fatal(err)
	}

	var steps int
	e.SetTickCallback(func(int) {
		steps++
		f.now += 0.1
	})
	e.Run()

	if steps != 3 {
		t.Errorf("steps = %d, want 3", steps)
	}
}

func TestEngine_RunHeadlessQuit(t *testing.T) {
	f := newFixture(t)
	e := f.engine()

	var steps int
	e.SetTickCallback(func(int) {
		steps++
		if steps == 5 {
			e.Quit()
		}
	})
	e.Run()
	e.Quit()

	if steps != 5 {
		t.Errorf("steps = %d, want 5", steps)
	}
}

func TestEngine_ApplyConfig(t *testing.T) {
	f := newFixture(t)
	e := f.engine(WithConfigWatcher(nil, f.catalog)).(*engine)
	if _, err := f.reg.Register("aura", f.slot); err != nil {
		t.Fatal(err)
	}
	if _, err := f.reg.Register("spark", f.slot); err != nil {
		t.Fatal(err)
	}

	f.now = 1.0
	_ = e.Step()

	cfg := config.Default()
	cfg.Effects = []config.EffectConfig{{Name: "aura", Duration: 500, Loop: true}}
	e.applyConfig(cfg)

	if _, ok := f.reg.ID("spark"); ok {
		t.Error("spark still registered after it left the configuration")
	}
	id, ok := f.reg.ID("aura")
	if !ok {
		t.Fatal("aura missing after reload")
	}
	in, _ := f.reg.Get(id)
	if got := in.Asset().Duration; got != 500 {
		t.Errorf("aura duration = %d, want 500", got)
	}
	if got := f.reg.TotalHandles(); got != 0 {
		t.Errorf("TotalHandles() after reload = %d, want 0 until the next update", got)
	}
}

func TestEngine_CameraFollowsWindow(t *testing.T) {
	f := newFixture(t)
	w := &fakeWindow{}
	cam := camera.NewCamera()
	e := f.engine(WithWindow(w), WithCamera(cam))

	w.resize(400, 400)
	if got := cam.Projection(); got[0] != got[5] {
		t.Errorf("Projection() x/y scale = %v/%v, want equal for a square window", got[0], got[5])
	}

	if err := e.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	view, projection := f.reg.Renderer().Camera()
	if view != cam.View() || projection != cam.Projection() {
		t.Error("renderer camera differs from the engine camera after Step")
	}
}

func TestEngine_StepReadsHostClockOnce(t *testing.T) {
	f := newFixture(t)
	now := 0.0
	// Every read of the host moves it half a frame forward.
	c := clock.NewClock(clock.WithFrameRate(30), clock.WithTimeSource(clock.TimeSourceFunc(func() float64 {
		now += 0.5 / 30.0
		return now
	})))
	e := NewEngine(f.reg, WithClock(c))
	start := now

	delivered := 0
	e.SetTickCallback(func(deltaFrames int) { delivered += deltaFrames })
	for i := 0; i < 100; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}

	elapsed := int((now-start)*30 + 0.5)
	if delivered < elapsed-1 || delivered > elapsed {
		t.Errorf("frames delivered = %d, host elapsed = %d", delivered, elapsed)
	}
}
