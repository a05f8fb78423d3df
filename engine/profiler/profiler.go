// Package profiler periodically logs frame rate, live effect counts and memory statistics.
package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// EffectStats reports the live effect population. The effect registry satisfies it.
type EffectStats interface {
	// Len returns the number of registered effects.
	Len() int
	// TotalHandles returns the number of live playbacks across every effect.
	TotalHandles() int
}

// Sample is one logged measurement window.
type Sample struct {
	// FPS is the number of ticks per second over the window.
	FPS float64
	// Effects is the registered effect count at the end of the window.
	Effects int
	// Handles is the live playback count at the end of the window.
	Handles int
	// HeapMB is the live heap size.
	HeapMB float64
	// AllocRateMB is the heap allocation rate in MB per second over the window.
	AllocRateMB float64
	// GCCount is the total number of completed collections.
	GCCount uint32
	// LastPauseUs and MaxPauseUs are the most recent and the longest GC pause in the window.
	LastPauseUs, MaxPauseUs uint64
	// SysMB is the memory obtained from the OS.
	SysMB float64
}

func (s Sample) String() string {
	return fmt.Sprintf("FPS: %.2f | Effects: %d | Handles: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FPS, s.Effects, s.Handles, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
}

// Profiler tracks frame rate, effect population and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	stats          EffectStats
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Sample
}

// ProfilerOption is a functional option for NewProfiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are logged. Non-positive values are ignored.
//
// Parameters:
//   - d: the logging interval
//
// Returns:
//   - ProfilerOption: a function that applies the interval option
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithNow replaces the wall clock used to measure intervals.
//
// Parameters:
//   - now: returns the current time
//
// Returns:
//   - ProfilerOption: a function that applies the clock option
func WithNow(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - stats: the effect population to report, may be nil
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(stats EffectStats, options ...ProfilerOption) *Profiler {
	p := &Profiler{
		stats:          stats,
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame.
// Logs a Sample when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	s := Sample{FPS: float64(p.frameCount) / elapsed.Seconds()}
	if p.stats != nil {
		s.Effects = p.stats.Len()
		s.Handles = p.stats.TotalHandles()
	}

	runtime.ReadMemStats(&p.memStats)
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	s.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	s.GCCount = p.memStats.NumGC
	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	log.Printf("[Profiler] %s", s)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return true
}

// Last returns the most recently logged sample.
//
// Returns:
//   - Sample: the last sample, zero before the first log
func (p *Profiler) Last() Sample {
	return p.last
}
