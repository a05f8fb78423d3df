package effect

import (
	"log"
	"math"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// DefaultMaxPlaybacks is the playback capacity of a Manager built without WithMaxPlaybacks.
const DefaultMaxPlaybacks = 2048

// playback is the simulation state of one running effect.
type playback struct {
	asset     *Asset
	time      float32
	transform common.Transform
}

// manager is the implementation of the Manager interface.
type manager struct {
	mu           *sync.Mutex
	playbacks    map[Handle]*playback
	next         Handle
	maxPlaybacks int
}

// Manager is the effect simulation shared by every effect instance.
//
// Each playback runs on its own timeline measured in frames. A playback of a non-looping asset with a positive
// duration finishes, and its handle stops existing, once its time reaches the duration; looping playbacks wrap.
// Every method is safe for concurrent use: all mutation happens behind a single lock.
// Calls with a handle that no longer exists are no-ops.
type Manager interface {
	// Play starts a new playback of asset at timeline position 0 with an identity transform.
	//
	// Parameters:
	//   - asset: the effect to play
	//
	// Returns:
	//   - Handle: the new playback, or InvalidHandle if asset is nil or the manager is at capacity
	Play(asset *Asset) Handle

	// Exists reports whether a playback is still alive.
	//
	// Parameters:
	//   - h: the playback handle
	//
	// Returns:
	//   - bool: true if the playback has neither finished nor been stopped
	Exists(h Handle) bool

	// Stop ends a playback immediately.
	//
	// Parameters:
	//   - h: the playback handle
	Stop(h Handle)

	// StopAll ends every playback.
	StopAll()

	// SetMatrix sets the local placement of a playback.
	//
	// Parameters:
	//   - h: the playback handle
	//   - m: the local placement matrix
	SetMatrix(h Handle, m [16]float32)

	// SetBaseMatrix sets the space the local placement of a playback lives in.
	//
	// Parameters:
	//   - h: the playback handle
	//   - m: the base matrix
	SetBaseMatrix(h Handle, m [16]float32)

	// SetScale sets the per-axis scale of a playback.
	//
	// Parameters:
	//   - h: the playback handle
	//   - s: the scale factors
	SetScale(h Handle, s [3]float32)

	// UpdateHandle advances a playback along its timeline.
	// Negative or non-finite deltas are treated as 0.
	//
	// Parameters:
	//   - h: the playback handle
	//   - deltaFrames: the number of frames to advance, already scaled by playback speed
	UpdateHandle(h Handle, deltaFrames float32)

	// Time returns the timeline position of a playback.
	//
	// Parameters:
	//   - h: the playback handle
	//
	// Returns:
	//   - float32: the position in frames, or 0 if the playback does not exist
	Time(h Handle) float32

	// Playback returns a read-only view of a playback.
	//
	// Parameters:
	//   - h: the playback handle
	//
	// Returns:
	//   - Playback: the view
	//   - bool: false if the playback does not exist
	Playback(h Handle) (Playback, bool)

	// Count returns the number of live playbacks.
	//
	// Returns:
	//   - int: the live playback count
	Count() int

	// Handles returns every live playback handle in ascending order.
	//
	// Returns:
	//   - []Handle: the live handles
	Handles() []Handle

	// Release stops every playback. The manager stays usable.
	Release()
}

var _ Manager = &manager{}

// NewManager creates a new Manager with the provided options.
//
// Parameters:
//   - options: functional options to configure the manager
//
// Returns:
//   - Manager: the newly created manager
func NewManager(options ...ManagerBuilderOption) Manager {
	m := &manager{
		mu:           &sync.Mutex{},
		playbacks:    make(map[Handle]*playback),
		maxPlaybacks: DefaultMaxPlaybacks,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *manager) Play(asset *Asset) Handle {
	if asset == nil {
		return InvalidHandle
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxPlaybacks > 0 && len(m.playbacks) >= m.maxPlaybacks {
		log.Printf("[Effect] playback capacity %d reached, not playing %q", m.maxPlaybacks, asset.Name)
		return InvalidHandle
	}
	if m.next == math.MaxInt32 {
		log.Printf("[Effect] handle space exhausted, not playing %q", asset.Name)
		return InvalidHandle
	}

	h := m.next
	m.next++
	m.playbacks[h] = &playback{
		asset:     asset,
		transform: common.NewTransform(),
	}
	return h
}

func (m *manager) Exists(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.playbacks[h]
	return ok
}

func (m *manager) Stop(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.playbacks, h)
}

func (m *manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.playbacks)
}

func (m *manager) SetMatrix(h Handle, mat [16]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.playbacks[h]; ok {
		p.transform.Matrix = mat
	}
}

func (m *manager) SetBaseMatrix(h Handle, mat [16]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.playbacks[h]; ok {
		p.transform.BaseMatrix = mat
	}
}

func (m *manager) SetScale(h Handle, s [3]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.playbacks[h]; ok {
		p.transform.Scale = s
	}
}

func (m *manager) UpdateHandle(h Handle, deltaFrames float32) {
	if deltaFrames <= 0 || math.IsNaN(float64(deltaFrames)) || math.IsInf(float64(deltaFrames), 0) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.playbacks[h]
	if !ok {
		return
	}
	p.time += deltaFrames

	duration := float32(p.asset.Duration)
	if duration <= 0 || p.time < duration {
		return
	}
	if p.asset.Loop {
		p.time = float32(math.Mod(float64(p.time), float64(duration)))
		return
	}
	delete(m.playbacks, h)
}

func (m *manager) Time(h Handle) float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.playbacks[h]; ok {
		return p.time
	}
	return 0
}

func (m *manager) Playback(h Handle) (Playback, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.playbacks[h]
	if !ok {
		return Playback{}, false
	}
	return Playback{
		Handle:    h,
		Asset:     p.asset,
		Time:      p.time,
		Transform: p.transform,
	}, true
}

func (m *manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.playbacks)
}

func (m *manager) Handles() []Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	handles := make([]Handle, 0, len(m.playbacks))
	for h := range m.playbacks {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles
}

func (m *manager) Release() {
	m.StopAll()
}
