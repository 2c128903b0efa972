package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// VirtualClock is game time: real frame deltas scaled to zero while paused
// Delta-driven so simulation and the fixed-step accumulator stop during pause
type VirtualClock struct {
	mu sync.RWMutex

	isPaused atomic.Bool

	elapsed     time.Duration // Virtual time since start
	delta       time.Duration // Virtual delta of the last Advance
	totalPaused time.Duration // Real time swallowed while paused
	maxDelta    time.Duration // Clamp for a single real delta, 0 = none
}

// NewVirtualClock creates a running clock, maxDelta clamps a single frame delta
func NewVirtualClock(maxDelta time.Duration) *VirtualClock {
	return &VirtualClock{maxDelta: maxDelta}
}

// Advance consumes one real frame delta and returns the virtual delta
func (vc *VirtualClock) Advance(real time.Duration) time.Duration {
	if real < 0 {
		real = 0
	}
	if vc.maxDelta > 0 && real > vc.maxDelta {
		real = vc.maxDelta
	}

	vc.mu.Lock()
	defer vc.mu.Unlock()

	if vc.isPaused.Load() {
		vc.totalPaused += real
		vc.delta = 0
		return 0
	}
	vc.elapsed += real
	vc.delta = real
	return real
}

// Pause stops game time advancement
func (vc *VirtualClock) Pause() {
	vc.isPaused.Store(true)
}

// Resume continues game time advancement
func (vc *VirtualClock) Resume() {
	vc.isPaused.Store(false)
}

// IsPaused returns current pause state
func (vc *VirtualClock) IsPaused() bool {
	return vc.isPaused.Load()
}

// Elapsed returns total virtual time
func (vc *VirtualClock) Elapsed() time.Duration {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.elapsed
}

// Delta returns the virtual delta of the last frame
func (vc *VirtualClock) Delta() time.Duration {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.delta
}

// TotalPauseDuration returns cumulative real time spent paused
func (vc *VirtualClock) TotalPauseDuration() time.Duration {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.totalPaused
}

// Reset zeroes virtual time and resumes
func (vc *VirtualClock) Reset() {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.elapsed = 0
	vc.delta = 0
	vc.totalPaused = 0
	vc.isPaused.Store(false)
}
