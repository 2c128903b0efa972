package engine

import (
	"sync/atomic"
	"time"
)

// TimeProvider is a source of real time
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually driven clock for tests and replays
// Safe for use from the frame goroutine and asset loaders concurrently
type MockTimeProvider struct {
	epoch  time.Time
	offset atomic.Int64 // Nanoseconds since epoch
}

// NewMockTimeProvider creates a mock clock reading start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{epoch: start}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	return m.epoch.Add(time.Duration(m.offset.Load()))
}

// SetTime jumps to t, which may precede the current reading
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.offset.Store(int64(t.Sub(m.epoch)))
}

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.offset.Add(int64(d))
}

// FrameTimer measures real time between consecutive frames
type FrameTimer struct {
	provider TimeProvider
	last     time.Time
	started  bool
}

// NewFrameTimer creates a timer reading from provider
func NewFrameTimer(provider TimeProvider) *FrameTimer {
	return &FrameTimer{provider: provider}
}

// Tick returns real time since the previous Tick, zero on the first call
func (ft *FrameTimer) Tick() time.Duration {
	now := ft.provider.Now()
	if !ft.started {
		ft.started = true
		ft.last = now
		return 0
	}
	d := now.Sub(ft.last)
	ft.last = now
	if d < 0 {
		return 0
	}
	return d
}
