package registry

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/binding"
	"github.com/Carmen-Shannon/oxy-fx/engine/effect"
	"github.com/Carmen-Shannon/oxy-fx/engine/instance"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
)

// ErrUnknownEffect is returned when an operation names an effect that is not registered.
var ErrUnknownEffect = errors.New("registry: unknown effect")

// ErrClosed is returned when an effect is registered or reloaded after Close.
var ErrClosed = errors.New("registry: closed")

// State is the graphics device state seen by the registry.
type State int

const (
	// StateActive means the device is usable and frames are drawn.
	StateActive State = iota
	// StateLost means the device is lost; simulation continues but nothing is drawn.
	StateLost
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateLost:
		return "lost"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// entry is one registered effect.
type entry struct {
	id   int
	name string
	slot int
	inst instance.Instance
}

// registry is the implementation of the Registry interface.
type registry struct {
	mu *sync.Mutex

	assets   effect.AssetSource
	channels binding.ChannelSource
	r        renderer.Renderer
	manager  effect.Manager

	state State

	names   map[string]int
	entries map[int]*entry
	nextID  int

	managerOpts  []effect.ManagerBuilderOption
	bindingOpts  []binding.BindingBuilderOption
	instanceOpts []instance.InstanceBuilderOption

	workers int
	pool    worker.DynamicWorkerPool
	closed  bool
}

// Registry owns every effect instance of the process together with the shared effect manager and the renderer.
//
// Effects are registered under a string name once and addressed by integer id afterwards. The registry also
// tracks the graphics device: while the device is lost, simulation keeps running but nothing is drawn, and the
// renderer's device-side resources are recreated on reset without touching any playback.
type Registry interface {
	// Register resolves the id of an effect, creating it on first use.
	// The effect asset is loaded from the asset source and bound to the model in slot.
	// Registering a known name again returns its id; if the slot changed, the effect is rebound to the new slot
	// and its playbacks restart.
	//
	// Parameters:
	//   - name: the effect name, also the asset name
	//   - slot: the model slot whose channels drive the effect
	//
	// Returns:
	//   - int: the effect id
	//   - error: an error wrapping effect.ErrAssetNotFound if the asset cannot be loaded, or ErrClosed after Close; no entry is created
	Register(name string, slot int) (int, error)

	// ID returns the id of a registered effect.
	//
	// Parameters:
	//   - name: the effect name
	//
	// Returns:
	//   - int: the effect id
	//   - bool: false if the name is not registered
	ID(name string) (int, bool)

	// Get returns the instance behind an id.
	//
	// Parameters:
	//   - id: the effect id
	//
	// Returns:
	//   - instance.Instance: the effect instance
	//   - bool: false if the id is not registered
	Get(id int) (instance.Instance, bool)

	// Slot returns the model slot an effect is bound to.
	//
	// Parameters:
	//   - id: the effect id
	//
	// Returns:
	//   - int: the model slot
	//   - bool: false if the id is not registered
	Slot(id int) (int, bool)

	// Remove stops every playback of an effect and forgets it. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the effect id
	Remove(id int)

	// Reload reloads the asset of a registered effect and restarts its playbacks with it.
	//
	// Parameters:
	//   - name: the effect name
	//
	// Returns:
	//   - error: ErrUnknownEffect if the name is not registered, ErrClosed after Close, or an asset load error
	Reload(name string) error

	// IDs returns every registered id in ascending order.
	//
	// Returns:
	//   - []int: the registered ids
	IDs() []int

	// Len returns the number of registered effects.
	//
	// Returns:
	//   - int: the effect count
	Len() int

	// HandleCount returns the number of playbacks owned by an effect.
	//
	// Parameters:
	//   - id: the effect id
	//
	// Returns:
	//   - int: the owned playback count
	//   - bool: false if the id is not registered
	HandleCount(id int) (int, bool)

	// TotalHandles returns the number of live playbacks across every effect.
	//
	// Returns:
	//   - int: the live playback count of the shared manager
	TotalHandles() int

	// UpdateAll advances every effect by the frames elapsed on the host clock.
	//
	// Parameters:
	//   - deltaFrames: the whole frames elapsed
	UpdateAll(deltaFrames int)

	// DrawAll draws one frame containing every live playback. It does nothing while the device is lost.
	//
	// Returns:
	//   - error: an error if the renderer could not draw the frame
	DrawAll() error

	// SetCamera passes the host camera to the renderer unchanged.
	//
	// Parameters:
	//   - view: the host view matrix
	//   - projection: the host projection matrix
	SetCamera(view, projection [16]float32)

	// OnLostDevice releases device-side resources and stops drawing until OnResetDevice.
	OnLostDevice()

	// OnResetDevice recreates device-side resources at the new back-buffer size and resumes drawing.
	//
	// Parameters:
	//   - vp: the back-buffer size after the reset
	//
	// Returns:
	//   - error: an error if the renderer could not be reset; the registry stays lost
	OnResetDevice(vp common.Viewport) error

	// State returns the device state.
	//
	// Returns:
	//   - State: StateActive or StateLost
	State() State

	// Manager returns the shared effect manager.
	//
	// Returns:
	//   - effect.Manager: the manager
	Manager() effect.Manager

	// Renderer returns the renderer.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Close stops every playback and releases the manager, the renderer and the worker pool.
	Close()
}

var _ Registry = &registry{}

// NewRegistry creates a new Registry. It creates the shared effect manager and takes ownership of r.
//
// Parameters:
//   - assets: the effect asset source (must not be nil)
//   - channels: the model channel source (must not be nil)
//   - r: the renderer (must not be nil)
//   - options: functional options to configure the registry
//
// Returns:
//   - Registry: the newly created registry, in StateActive
func NewRegistry(assets effect.AssetSource, channels binding.ChannelSource, r renderer.Renderer, options ...RegistryBuilderOption) Registry {
	if assets == nil {
		panic("registry: NewRegistry requires a non-nil effect.AssetSource")
	}
	if channels == nil {
		panic("registry: NewRegistry requires a non-nil binding.ChannelSource")
	}
	if r == nil {
		panic("registry: NewRegistry requires a non-nil renderer.Renderer")
	}

	reg := &registry{
		mu:       &sync.Mutex{},
		assets:   assets,
		channels: channels,
		r:        r,
		names:    make(map[string]int),
		entries:  make(map[int]*entry),
	}
	for _, opt := range options {
		opt(reg)
	}

	reg.manager = effect.NewManager(reg.managerOpts...)
	if reg.workers > 1 {
		reg.pool = worker.NewDynamicWorkerPool(reg.workers, 256, 1*time.Second)
	}
	if r.DeviceLost() {
		reg.state = StateLost
	}
	return reg
}

func (reg *registry) Register(name string, slot int) (int, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.closed {
		return -1, fmt.Errorf("failed to register effect %q: %w", name, ErrClosed)
	}

	if id, ok := reg.names[name]; ok {
		e := reg.entries[id]
		if e.slot != slot {
			e.inst.Release()
			e.inst = reg.newInstance(e.inst.Asset(), slot)
			e.slot = slot
			log.Printf("[Registry] effect %q (id %d) rebound to slot %d", name, id, slot)
		}
		return id, nil
	}

	asset, err := reg.assets.Load(name)
	if err != nil {
		return -1, fmt.Errorf("failed to register effect %q: %w", name, err)
	}
	if asset == nil {
		return -1, fmt.Errorf("failed to register effect %q: %w", name, effect.ErrAssetNotFound)
	}

	id := reg.nextID
	reg.nextID++
	reg.names[name] = id
	reg.entries[id] = &entry{
		id:   id,
		name: name,
		slot: slot,
		inst: reg.newInstance(asset, slot),
	}
	return id, nil
}

func (reg *registry) ID(name string) (int, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	id, ok := reg.names[name]
	return id, ok
}

func (reg *registry) Get(id int) (instance.Instance, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	e, ok := reg.entries[id]
	if !ok {
		return nil, false
	}
	return e.inst, true
}

func (reg *registry) Slot(id int) (int, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	e, ok := reg.entries[id]
	if !ok {
		return -1, false
	}
	return e.slot, true
}

func (reg *registry) Remove(id int) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e, ok := reg.entries[id]
	if !ok {
		return
	}
	e.inst.Release()
	delete(reg.entries, id)
	delete(reg.names, e.name)
}

func (reg *registry) Reload(name string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.closed {
		return fmt.Errorf("failed to reload effect %q: %w", name, ErrClosed)
	}

	id, ok := reg.names[name]
	if !ok {
		return fmt.Errorf("reload %q: %w", name, ErrUnknownEffect)
	}
	asset, err := reg.assets.Load(name)
	if err != nil {
		return fmt.Errorf("failed to reload effect %q: %w", name, err)
	}
	if asset == nil {
		return fmt.Errorf("failed to reload effect %q: %w", name, effect.ErrAssetNotFound)
	}

	e := reg.entries[id]
	e.inst.Release()
	e.inst = reg.newInstance(asset, e.slot)
	log.Printf("[Registry] effect %q (id %d) reloaded", name, id)
	return nil
}

func (reg *registry) IDs() []int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.sortedIDs()
}

func (reg *registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.entries)
}

func (reg *registry) HandleCount(id int) (int, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	e, ok := reg.entries[id]
	if !ok {
		return 0, false
	}
	return e.inst.HandleCount(), true
}

func (reg *registry) TotalHandles() int {
	return reg.manager.Count()
}

func (reg *registry) UpdateAll(deltaFrames int) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	entries := reg.sortedEntries()
	if reg.pool == nil || len(entries) < 2 {
		for _, e := range entries {
			e.inst.Update(e.slot, deltaFrames)
		}
		return
	}

	// Channel reads run on the pool; every manager mutation stays on this goroutine.
	snaps := make([]binding.Snapshot, len(entries))
	var wg sync.WaitGroup
	wg.Add(len(entries))
	for i, e := range entries {
		reg.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				snaps[i] = e.inst.Binding().Snapshot(e.slot)
				return nil, nil
			},
		})
	}
	wg.Wait()

	for i, e := range entries {
		e.inst.Step(snaps[i], deltaFrames)
	}
}

func (reg *registry) DrawAll() error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.state == StateLost || reg.closed {
		return nil
	}

	if err := reg.r.BeginFrame(); err != nil {
		if errors.Is(err, renderer.ErrDeviceLost) {
			return nil
		}
		return err
	}
	for _, e := range reg.sortedEntries() {
		e.inst.Draw(e.slot, reg.r)
	}
	return reg.r.EndFrame()
}

func (reg *registry) SetCamera(view, projection [16]float32) {
	reg.r.SetCamera(view, projection)
}

func (reg *registry) OnLostDevice() {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.state == StateLost {
		return
	}
	reg.state = StateLost
	reg.r.OnLostDevice()
	for _, e := range reg.entries {
		e.inst.OnLostDevice()
	}
	log.Printf("[Registry] device lost, %d effects suspended", len(reg.entries))
}

func (reg *registry) OnResetDevice(vp common.Viewport) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if err := reg.r.OnResetDevice(vp); err != nil {
		return fmt.Errorf("failed to reset device: %w", err)
	}
	reg.state = StateActive
	for _, e := range reg.entries {
		e.inst.OnResetDevice()
	}
	return nil
}

func (reg *registry) State() State {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.state
}

func (reg *registry) Manager() effect.Manager {
	return reg.manager
}

func (reg *registry) Renderer() renderer.Renderer {
	return reg.r
}

func (reg *registry) Close() {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.closed {
		return
	}
	reg.closed = true

	for _, e := range reg.entries {
		e.inst.Release()
	}
	clear(reg.entries)
	clear(reg.names)
	reg.manager.Release()
	reg.r.Release()
	if reg.pool != nil {
		reg.pool.Stop()
	}
}

// newInstance binds asset to the model in slot. Caller must hold reg.mu.
func (reg *registry) newInstance(asset *effect.Asset, slot int) instance.Instance {
	b := binding.NewBinding(reg.channels, slot, reg.bindingOpts...)
	return instance.NewInstance(reg.manager, asset, b, reg.instanceOpts...)
}

// sortedIDs returns the registered ids in ascending order. Caller must hold reg.mu.
func (reg *registry) sortedIDs() []int {
	ids := make([]int, 0, len(reg.entries))
	for id := range reg.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// sortedEntries returns the entries in ascending id order. Caller must hold reg.mu.
func (reg *registry) sortedEntries() []*entry {
	ids := reg.sortedIDs()
	entries := make([]*entry, len(ids))
	for i, id := range ids {
		entries[i] = reg.entries[id]
	}
	return entries
}
