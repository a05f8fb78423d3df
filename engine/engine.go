package engine

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/clock"
	"github.com/Carmen-Shannon/oxy-fx/engine/config"
	"github.com/Carmen-Shannon/oxy-fx/engine/effect"
	"github.com/Carmen-Shannon/oxy-fx/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fx/engine/registry"
)

// Window is the part of the host window the engine drives. window.Window satisfies it.
type Window interface {
	SetUpdateCallback(callback func())
	SetResizeCallback(callback func(width, height int))
	SetDeviceLostCallback(callback func())
	SetDeviceResetCallback(callback func(vp common.Viewport))
	ProcessMessages()
}

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	registry registry.Registry
	clock    clock.Clock
	window   Window
	camera   camera.Camera

	catalog effect.Catalog
	watcher *config.Watcher

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback     func(deltaFrames int)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	quitChannel chan struct{}
	quitOnce    sync.Once
}

// Engine runs the effect host loop: it reads elapsed frames from the clock, advances every registered effect,
// draws one frame and forwards window device events to the registry.
type Engine interface {
	// Registry returns the effect registry driven by the engine.
	//
	// Returns:
	//   - registry.Registry: the registry
	Registry() registry.Registry

	// Camera returns the host camera, or nil if none was configured.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Clock returns the frame clock.
	//
	// Returns:
	//   - clock.Clock: the clock
	Clock() clock.Clock

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called each frame before effects are advanced.
	// Use it to move the host's channels, e.g. to animate morph weights.
	//
	// Parameters:
	//   - callback: function receiving the whole frames elapsed since the previous step
	SetTickCallback(callback func(deltaFrames int))

	// SetRenderFrameLimit sets an optional frame rate cap for a loop without a window.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Step runs one host frame: configuration reloads, the tick callback, the camera upload, UpdateAll and DrawAll.
	//
	// Returns:
	//   - error: the draw error, if any
	Step() error

	// Run steps the engine until the window closes or Quit is called. Without a window Run loops on the
	// calling goroutine.
	Run()

	// Quit stops Run. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine around a registry.
//
// Parameters:
//   - reg: the effect registry to drive
//   - options: functional options for the clock, window, profiling and configuration reloads
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(reg registry.Registry, options ...EngineBuilderOption) Engine {
	if reg == nil {
		panic("engine: NewEngine requires a non-nil registry.Registry")
	}

	e := &engine{
		mu:          &sync.Mutex{},
		registry:    reg,
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.clock == nil {
		e.clock = clock.NewClock()
	}
	e.profiler = profiler.NewProfiler(reg)

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			reg.Renderer().Resize(width, height)
			e.updateAspect(width, height)
		})
		e.window.SetDeviceLostCallback(reg.OnLostDevice)
		e.window.SetDeviceResetCallback(func(vp common.Viewport) {
			if err := reg.OnResetDevice(vp); err != nil {
				log.Printf("[Engine] device reset failed: %v", err)
				return
			}
			e.updateAspect(vp.Width, vp.Height)
		})
	}
	return e
}

func (e *engine) Registry() registry.Registry {
	return e.registry
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Clock() clock.Clock {
	return e.clock
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaFrames int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Step() error {
	e.applyConfigChanges()

	delta := e.clock.Advance()

	e.mu.Lock()
	tick := e.tickCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	if tick != nil {
		tick(delta)
	}
	if e.camera != nil {
		e.registry.SetCamera(e.camera.View(), e.camera.Projection())
	}
	e.registry.UpdateAll(delta)
	err := e.registry.DrawAll()

	if profiling {
		e.profiler.Tick()
	}
	return err
}

func (e *engine) Run() {
	if e.window != nil {
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				return
			default:
			}
			if err := e.Step(); err != nil {
				log.Printf("[Engine] draw failed: %v", err)
			}
		})
		e.window.ProcessMessages()
		return
	}

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		start := time.Now()
		if err := e.Step(); err != nil {
			log.Printf("[Engine] draw failed: %v", err)
		}

		e.mu.Lock()
		limit := e.renderFrameLimit
		e.mu.Unlock()
		if limit > 0 {
			if remaining := limit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) updateAspect(width, height int) {
	if e.camera != nil && height > 0 {
		e.camera.SetAspect(float32(width) / float32(height))
	}
}

// applyConfigChanges drains pending configuration reloads without blocking. Registered effects whose asset
// changed are reloaded; effects whose asset disappeared are removed.
func (e *engine) applyConfigChanges() {
	if e.watcher == nil || e.catalog == nil {
		return
	}

	for {
		select {
		case cfg, ok := <-e.watcher.Changes:
			if !ok {
				e.watcher = nil
				return
			}
			e.applyConfig(cfg)
		case err, ok := <-e.watcher.Errors:
			if ok {
				log.Printf("[Engine] config reload failed: %v", err)
			}
		default:
			return
		}
	}
}

func (e *engine) applyConfig(cfg config.Config) {
	for _, name := range cfg.ApplyEffects(e.catalog) {
		id, ok := e.registry.ID(name)
		if !ok {
			continue
		}
		err := e.registry.Reload(name)
		switch {
		case err == nil:
			log.Printf("[Engine] reloaded effect %q", name)
		case errors.Is(err, effect.ErrAssetNotFound):
			log.Printf("[Engine] effect %q removed from configuration", name)
			e.registry.Remove(id)
		default:
			log.Printf("[Engine] reload %q failed: %v", name, err)
		}
	}
}
